package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

const (
	defaultIdentityTTL = time.Minute
	// fetchTimeout bounds a shared fetch, which no single caller can cancel.
	fetchTimeout = 10 * time.Second
)

// IdentityResolver resolves the identity behind a session. Concurrent
// resolutions for one session share a single upstream call.
type IdentityResolver struct {
	upstream ports.UpstreamAPI
	store    ports.SessionStore
	cache    ports.IdentityCache
	ttl      time.Duration
	log      zerolog.Logger
	group    singleflight.Group
}

func NewIdentityResolver(
	upstream ports.UpstreamAPI,
	store ports.SessionStore,
	cache ports.IdentityCache,
	ttl time.Duration,
	log zerolog.Logger,
) *IdentityResolver {
	if ttl <= 0 {
		ttl = defaultIdentityTTL
	}
	return &IdentityResolver{upstream: upstream, store: store, cache: cache, ttl: ttl, log: log}
}

// Resolve returns the identity for sessionID. Unknown sessions and tokens the
// upstream rejects yield domain.ErrUnauthenticated.
func (r *IdentityResolver) Resolve(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}

	cached, err := r.cache.Get(ctx, sessionID)
	if err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("identity cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	ch := r.group.DoChan(sessionID, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return r.fetch(fctx, sessionID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Identity), nil
	}
}

// Invalidate drops the cached identity for sessionID.
func (r *IdentityResolver) Invalidate(ctx context.Context, sessionID string) error {
	r.group.Forget(sessionID)
	return r.cache.Delete(ctx, sessionID)
}

func (r *IdentityResolver) fetch(ctx context.Context, sessionID string) (*domain.Identity, error) {
	session, err := r.store.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("resolve identity: %w", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	identity, err := r.upstream.CurrentUser(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	if err := r.cache.Set(ctx, sessionID, identity, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("identity cache write failed")
	}

	r.log.Debug().
		Str("session_id", sessionID).
		Int64("user_id", identity.ID).
		Bool("is_admin", identity.IsAdmin).
		Msg("identity resolved")
	return identity, nil
}
