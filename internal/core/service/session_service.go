package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// SessionService implements login, logout and session cookie verification.
type SessionService struct {
	upstream ports.UpstreamAPI
	store    ports.SessionStore
	cache    ports.IdentityCache
	secret   []byte
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionService(
	upstream ports.UpstreamAPI,
	store ports.SessionStore,
	cache ports.IdentityCache,
	secret string,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{
		upstream: upstream,
		store:    store,
		cache:    cache,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Login authenticates against the upstream API and opens a session. It returns
// the signed session token to place in the cookie.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	session := &domain.Session{
		ID:          uuid.NewString(),
		Email:       email,
		AccessToken: tokens.Access,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.sign(session)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign session: %w", err)
	}

	s.log.Info().Str("session_id", session.ID).Str("email", email).Msg("session opened")
	return token, session, nil
}

// Logout ends the session. Logging out an unknown session is not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to drop cached identity")
	}
	s.log.Info().Str("session_id", sessionID).Msg("session closed")
	return nil
}

// Authenticate verifies a session token and returns its claims.
func (s *SessionService) Authenticate(token string) (*domain.SessionClaims, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.SessionClaims{
		SessionID: claims.ID,
		Email:     claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// TTL is how long a session and its cookie stay valid.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) sign(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.Email,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.CreatedAt.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
