package handler

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

type stubSessionService struct {
	loginFn   func(ctx context.Context, email, password string) (string, *domain.Session, error)
	loggedOut []string
	logoutErr error
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return s.logoutErr
}

func (s *stubSessionService) Authenticate(string) (*domain.SessionClaims, error) {
	return nil, domain.ErrUnauthenticated
}

type stubResolver struct {
	identity *domain.Identity
	err      error
}

func (r *stubResolver) Resolve(context.Context, string) (*domain.Identity, error) {
	return r.identity, r.err
}

type stubDashboard struct {
	sectionFn func(ctx context.Context, sessionID string, identity *domain.Identity, key string, query url.Values) (json.RawMessage, error)
}

func (d *stubDashboard) Overview(identity *domain.Identity) ports.Overview {
	p := access.DefaultPolicy()
	return ports.Overview{
		Identity: identity,
		Home:     p.HomePage(identity.Roles(), identity.IsAdmin),
		Menu:     p.Menu(identity.Roles(), identity.IsAdmin, domain.Sections),
	}
}

func (d *stubDashboard) Section(ctx context.Context, sessionID string, identity *domain.Identity, key string, query url.Values) (json.RawMessage, error) {
	return d.sectionFn(ctx, sessionID, identity, key, query)
}

func deliveryIdentity() *domain.Identity {
	return &domain.Identity{
		ID:     12,
		Email:  "bia@example.com",
		Groups: []domain.GroupRef{{ID: 3, Name: domain.RoleDeliveryPerson}},
	}
}
