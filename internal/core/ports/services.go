package ports

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// SessionService owns the session lifecycle.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(token string) (*domain.SessionClaims, error)
}

// IdentityResolver turns a session id into the identity behind it.
type IdentityResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Identity, error)
}

// Overview is the dashboard landing payload.
type Overview struct {
	Identity *domain.Identity
	Home     string
	Menu     []domain.Section
}

// DashboardService serves dashboard data for an already admitted identity.
type DashboardService interface {
	Overview(identity *domain.Identity) Overview
	Section(ctx context.Context, sessionID string, identity *domain.Identity, key string, query url.Values) (json.RawMessage, error)
}
