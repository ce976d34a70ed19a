package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/foodsales/dashboard/docs"
	"github.com/foodsales/dashboard/internal/api/handler"
	"github.com/foodsales/dashboard/internal/api/middleware"
	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

// Sessions is what the router needs from the session service.
type Sessions interface {
	ports.SessionService
	TTL() time.Duration
}

// Deps are the collaborators the router wires into handlers and middleware.
type Deps struct {
	Policy    *access.Policy
	Sessions  Sessions
	Resolver  ports.IdentityResolver
	Dashboard ports.DashboardService
	Audit     ports.AuditRecorder
	Health    map[string]handler.HealthCheck

	CookieSecure   bool
	LoginRateLimit float64
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("dashboard"))
	e.Use(middleware.Session(d.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Resolver, d.Dashboard, handler.CookieConfig{
		Secure: d.CookieSecure,
		TTL:    d.Sessions.TTL(),
	}, d.Logger)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Auth routes ---
	e.GET(domain.LoginPath, authHandler.LoginForm)
	e.POST(domain.LoginPath, authHandler.Login, loginLimiter(d.LoginRateLimit))
	e.POST("/logout", authHandler.Logout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, domain.DashboardRoot)
	})

	// --- Dashboard (gated) ---
	dash := e.Group(domain.DashboardRoot, middleware.Gate(d.Policy, d.Resolver, d.Audit, d.Logger))
	dash.GET("", dashboardHandler.Overview)
	dash.GET("/:section", dashboardHandler.Section)

	// --- Ops ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func loginLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(perSecond) * 2,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
