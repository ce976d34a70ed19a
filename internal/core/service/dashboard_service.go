package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// DashboardService reads section data from the upstream API on behalf of a session.
type DashboardService struct {
	policy   *access.Policy
	upstream ports.UpstreamAPI
	store    ports.SessionStore
	sections []domain.Section
	log      zerolog.Logger
}

func NewDashboardService(policy *access.Policy, upstream ports.UpstreamAPI, store ports.SessionStore, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		policy:   policy,
		upstream: upstream,
		store:    store,
		sections: domain.Sections,
		log:      log,
	}
}

// Overview builds the landing payload: who the user is, where home is and the
// sections they may open.
func (s *DashboardService) Overview(identity *domain.Identity) ports.Overview {
	roles := identity.Roles()
	return ports.Overview{
		Identity: identity,
		Home:     s.policy.HomePage(roles, identity.IsAdmin),
		Menu:     s.policy.Menu(roles, identity.IsAdmin, s.sections),
	}
}

// Section fetches the upstream collection behind a dashboard section.
func (s *DashboardService) Section(ctx context.Context, sessionID string, identity *domain.Identity, key string, query url.Values) (json.RawMessage, error) {
	section, ok := domain.SectionByKey(key)
	if !ok {
		return nil, domain.ErrSectionNotFound
	}
	if !s.policy.CanAccess(identity.Roles(), identity.IsAdmin, section.Path) {
		return nil, domain.ErrForbidden
	}

	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", key, err)
	}

	body, err := s.upstream.List(ctx, session.AccessToken, section.Upstream, query)
	if err != nil {
		s.log.Error().Err(err).Str("section", key).Int64("user_id", identity.ID).Msg("upstream list failed")
		return nil, fmt.Errorf("section %s: %w", key, err)
	}
	return body, nil
}
