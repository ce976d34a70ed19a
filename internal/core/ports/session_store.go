package ports

import (
	"context"
	"time"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// SessionStore persists server-side sessions.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Find returns domain.ErrSessionNotFound when the session is unknown or expired.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// IdentityCache holds recently resolved identities keyed by session id.
// A miss is reported as (nil, nil).
type IdentityCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Set(ctx context.Context, sessionID string, identity *domain.Identity, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
