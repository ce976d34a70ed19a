package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/core/domain"
)

type stubAuditRepo struct {
	mu       sync.Mutex
	inserted []domain.AccessAuditEntry
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AccessAuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func TestAuditDispatcher_WritesAllEntriesBeforeClose(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewAuditDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	for _, sid := range []string{"a", "b", "c", "a", "b"} {
		d.Record(domain.AccessAuditEntry{SessionID: sid, Path: "/dashboard/usuarios"})
	}
	d.Close()

	if len(repo.inserted) != 5 {
		t.Fatalf("expected 5 entries written, got %d", len(repo.inserted))
	}
}

func TestAuditDispatcher_PreservesPerSessionOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	paths := []string{"/dashboard/usuarios", "/dashboard", "/dashboard/logistica"}
	for _, p := range paths {
		d.Record(domain.AccessAuditEntry{SessionID: "same", Path: p})
	}
	d.Close()

	if len(repo.inserted) != len(paths) {
		t.Fatalf("expected %d entries, got %d", len(paths), len(repo.inserted))
	}
	for i, p := range paths {
		if repo.inserted[i].Path != p {
			t.Errorf("entry %d: expected %s, got %s", i, p, repo.inserted[i].Path)
		}
	}
}

func TestAuditDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()

	d.Record(domain.AccessAuditEntry{SessionID: "x", Path: "/dashboard"})
	d.Close()

	if len(repo.inserted) != 0 {
		t.Fatalf("expected no entries after close, got %d", len(repo.inserted))
	}
}

func TestAuditDispatcher_InsertErrorsAreNonFatal(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo unavailable")}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.AccessAuditEntry{SessionID: "x", Path: "/dashboard"})
	d.Close()
}

func TestAuditDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewAuditDispatcher(8, &stubAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("session-123")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("session-123"); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
