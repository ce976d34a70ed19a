package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodsales/dashboard/internal/api/middleware"
	"github.com/foodsales/dashboard/internal/core/domain"
)

func gatedContext(path string, rec *httptest.ResponseRecorder) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
	c.Set(middleware.ContextSessionID, "sess-9")
	c.Set(middleware.ContextIdentity, deliveryIdentity())
	return c
}

func TestDashboardHandler_Overview(t *testing.T) {
	rec := httptest.NewRecorder()
	c := gatedContext("/dashboard", rec)

	if err := NewDashboardHandler(&stubDashboard{}).Overview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp overviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Home != "/dashboard/logistica" {
		t.Fatalf("unexpected home %q", resp.Home)
	}
	if len(resp.Menu) != 1 || resp.Menu[0].Key != "logistica" {
		t.Fatalf("unexpected menu: %+v", resp.Menu)
	}
}

func TestDashboardHandler_Overview_OutsideGate(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())

	err := NewDashboardHandler(&stubDashboard{}).Overview(c)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestDashboardHandler_Section_PassesThrough(t *testing.T) {
	dash := &stubDashboard{
		sectionFn: func(_ context.Context, sid string, identity *domain.Identity, key string, query url.Values) (json.RawMessage, error) {
			if sid != "sess-9" || identity.ID != 12 || key != "logistica" || query.Get("page") != "2" {
				t.Fatalf("unexpected args: %s %d %s %v", sid, identity.ID, key, query)
			}
			return json.RawMessage(`{"count":1,"results":[{"id":4}]}`), nil
		},
	}
	rec := httptest.NewRecorder()
	c := gatedContext("/dashboard/logistica?page=2", rec)
	c.SetParamNames("section")
	c.SetParamValues("logistica")

	if err := NewDashboardHandler(dash).Section(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"count":1,"results":[{"id":4}]}` {
		t.Fatalf("body not passed through: %s", got)
	}
}

func TestDashboardHandler_Section_Error(t *testing.T) {
	dash := &stubDashboard{
		sectionFn: func(context.Context, string, *domain.Identity, string, url.Values) (json.RawMessage, error) {
			return nil, domain.ErrSectionNotFound
		},
	}
	c := gatedContext("/dashboard/unknown", httptest.NewRecorder())
	c.SetParamNames("section")
	c.SetParamValues("unknown")

	if err := NewDashboardHandler(dash).Section(c); err != domain.ErrSectionNotFound {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}
