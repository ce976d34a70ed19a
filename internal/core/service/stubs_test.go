package service

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUpstream struct {
	loginFn       func(email, password string) (*ports.Tokens, error)
	currentUserFn func(token string) (*domain.Identity, error)
	currentCtxFn  func(ctx context.Context, token string) (*domain.Identity, error)
	listFn        func(token, path string, query url.Values) (json.RawMessage, error)
	currentCalls  atomic.Int32
}

func (u *stubUpstream) Login(_ context.Context, email, password string) (*ports.Tokens, error) {
	return u.loginFn(email, password)
}

func (u *stubUpstream) CurrentUser(ctx context.Context, token string) (*domain.Identity, error) {
	u.currentCalls.Add(1)
	if u.currentCtxFn != nil {
		return u.currentCtxFn(ctx, token)
	}
	return u.currentUserFn(token)
}

func (u *stubUpstream) List(_ context.Context, token, path string, query url.Values) (json.RawMessage, error) {
	return u.listFn(token, path, query)
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	ttls     map[string]time.Duration
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: make(map[string]*domain.Session),
		ttls:     make(map[string]time.Duration),
	}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.ID] = &clone
	s.ttls[session.ID] = ttl
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type stubIdentityCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Identity
	getErr  error
	setErr  error
	sets    int
}

func newStubIdentityCache() *stubIdentityCache {
	return &stubIdentityCache{entries: make(map[string]*domain.Identity)}
}

func (c *stubIdentityCache) Get(_ context.Context, sessionID string) (*domain.Identity, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[sessionID], nil
}

func (c *stubIdentityCache) Set(_ context.Context, sessionID string, identity *domain.Identity, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[sessionID] = identity
	return nil
}

func (c *stubIdentityCache) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
	return nil
}

func salesIdentity() *domain.Identity {
	return &domain.Identity{
		ID:     7,
		Email:  "vendas@example.com",
		Groups: []domain.GroupRef{{ID: 2, Name: domain.RoleSalesPerson}},
	}
}
