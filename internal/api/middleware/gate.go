package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/api/metrics"
	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// echoNavigator adapts an echo.Context to access.Navigator.
type echoNavigator struct {
	c   echo.Context
	err error
}

func (n *echoNavigator) CurrentPath() string {
	return n.c.Request().URL.Path
}

func (n *echoNavigator) Redirect(path string) {
	code := http.StatusFound
	if m := n.c.Request().Method; m != http.MethodGet && m != http.MethodHead {
		code = http.StatusSeeOther
	}
	n.err = n.c.Redirect(code, path)
}

// Gate runs one access-gate cycle per request: resolve the session identity,
// evaluate the policy for the request path, and either let the request through
// or redirect it. Resolution failures count as unauthenticated.
func Gate(policy *access.Policy, resolver ports.IdentityResolver, audit ports.AuditRecorder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nav := &echoNavigator{c: c}
			g := access.NewGate(policy, nav)

			ticket := g.BeginResolution()
			identity, err := resolve(c, resolver, log)
			g.Settle(ticket, identity, err)

			out := g.Evaluate()
			metrics.GateDecisionsTotal.WithLabelValues(outcomeLabel(out.Kind), out.Reason).Inc()

			switch out.Kind {
			case access.Render:
				c.Set(ContextIdentity, g.Identity())
				return next(c)

			case access.Redirected:
				record(c, audit, g.Identity(), domain.OutcomeRedirect, out)
				log.Debug().
					Str("path", nav.CurrentPath()).
					Str("target", out.Target).
					Str("reason", out.Reason).
					Msg("gate redirect")
				return nav.err

			case access.Forbidden:
				record(c, audit, g.Identity(), domain.OutcomeForbidden, out)
				return domain.ErrForbidden

			case access.Latched:
				// A fresh gate has issued no redirect yet.
				return echo.NewHTTPError(http.StatusConflict, "redirect already issued")

			default:
				// Placeholder: Settle above always completes the resolution.
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session not resolved")
			}
		}
	}
}

func resolve(c echo.Context, resolver ports.IdentityResolver, log zerolog.Logger) (*domain.Identity, error) {
	sid := SessionID(c)
	if sid == "" {
		return nil, domain.ErrUnauthenticated
	}

	start := time.Now()
	identity, err := resolver.Resolve(c.Request().Context(), sid)
	result := "ok"
	if err != nil {
		result = "error"
		if !errors.Is(err, domain.ErrUnauthenticated) {
			log.Warn().Err(err).Str("session_id", sid).Msg("identity resolution failed, treating session as unauthenticated")
		}
	}
	metrics.IdentityResolutionDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return identity, err
}

func record(c echo.Context, audit ports.AuditRecorder, identity *domain.Identity, outcome domain.AccessOutcome, out access.Outcome) {
	if audit == nil {
		return
	}
	entry := domain.AccessAuditEntry{
		SessionID:  SessionID(c),
		Path:       c.Request().URL.Path,
		Outcome:    outcome,
		Target:     out.Target,
		Reason:     out.Reason,
		OccurredAt: time.Now().UTC(),
	}
	if identity != nil {
		entry.UserID = identity.ID
		entry.Email = identity.Email
	}
	audit.Record(entry)
}

func outcomeLabel(k access.OutcomeKind) string {
	switch k {
	case access.Render:
		return "render"
	case access.Redirected:
		return "redirect"
	case access.Latched:
		return "latched"
	case access.Forbidden:
		return "forbidden"
	default:
		return "placeholder"
	}
}
