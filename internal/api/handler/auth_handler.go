package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/api/metrics"
	"github.com/foodsales/dashboard/internal/api/middleware"
	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// CookieConfig controls the session cookie written on login.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	sessions  ports.SessionService
	resolver  ports.IdentityResolver
	dashboard ports.DashboardService
	cookie    CookieConfig
	log       zerolog.Logger
}

func NewAuthHandler(
	sessions ports.SessionService,
	resolver ports.IdentityResolver,
	dashboard ports.DashboardService,
	cookie CookieConfig,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		resolver:  resolver,
		dashboard: dashboard,
		cookie:    cookie,
		log:       log,
	}
}

// LoginForm describes the login form.
//
// @Summary      Describe the login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginFormResponse
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, loginFormResponse{
		Action: domain.LoginPath,
		Method: http.MethodPost,
		Fields: []loginFormField{
			{Name: "email", Type: "email", Required: true},
			{Name: "password", Type: "password", Required: true},
		},
	})
}

// Login opens a session and returns the user's landing page.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	token, session, err := h.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	identity, err := h.resolver.Resolve(ctx, session.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		if lerr := h.sessions.Logout(ctx, session.ID); lerr != nil {
			h.log.Warn().Err(lerr).Str("session_id", session.ID).Msg("failed to close unresolved session")
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))

	overview := h.dashboard.Overview(identity)
	h.log.Debug().
		Str("session_id", session.ID).
		Int64("user_id", identity.ID).
		Str("home", overview.Home).
		Msg("login resolved")

	return c.JSON(http.StatusOK, loginResponse{Home: overview.Home, Identity: identity})
}

// Logout closes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	h.setCookie(c, "", -1)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setCookie(c echo.Context, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
