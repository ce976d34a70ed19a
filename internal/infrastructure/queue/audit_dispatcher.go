package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// AuditDispatcher hands audit entries to a fixed set of workers so that the gate
// never waits on the audit store. Entries of one session always land on the same
// worker and keep their order.
type AuditDispatcher struct {
	workers []chan domain.AccessAuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewAuditDispatcher creates a dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AccessAuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessAuditEntry, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. ctx is passed to every insert.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry. When the worker's buffer is full, or the dispatcher
// is closed, the entry is dropped and logged.
func (d *AuditDispatcher) Record(entry domain.AccessAuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("path", entry.Path).Msg("audit dispatcher closed, entry dropped")
		return
	}

	select {
	case d.workers[d.shardIndex(entry.SessionID)] <- entry:
	default:
		d.log.Warn().
			Str("session_id", entry.SessionID).
			Str("path", entry.Path).
			Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits until queued entries are written.
func (d *AuditDispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *AuditDispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessAuditEntry) {
	defer d.wg.Done()
	for entry := range ch {
		if err := d.repo.Insert(ctx, &entry); err != nil {
			d.log.Warn().Err(err).
				Str("session_id", entry.SessionID).
				Str("path", entry.Path).
				Int("worker_id", id).
				Msg("failed to write audit entry")
		}
	}
}
