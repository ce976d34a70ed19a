package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodsales/dashboard/internal/core/domain"
)

const (
	SessionCookie = "dashboard_session"

	ContextSessionID = "session_id"
	ContextEmail     = "email"
	ContextIdentity  = "identity"
)

// SessionAuthenticator verifies session tokens.
type SessionAuthenticator interface {
	Authenticate(token string) (*domain.SessionClaims, error)
}

// Session reads the session token from the cookie, or from a bearer
// Authorization header, and injects its claims into the context. Requests with
// a missing or invalid token pass through anonymously; Gate decides what to do
// with them.
func Session(auth SessionAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return next(c)
			}

			claims, err := auth.Authenticate(token)
			if err != nil {
				return next(c)
			}

			c.Set(ContextSessionID, claims.SessionID)
			c.Set(ContextEmail, claims.Email)
			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionID returns the session id injected by Session, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextSessionID).(string)
	return sid
}

// Identity returns the identity admitted by Gate, or nil.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(ContextIdentity).(*domain.Identity)
	return id
}
