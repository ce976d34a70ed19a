package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/domain"
)

func TestDashboardService_Overview(t *testing.T) {
	svc := NewDashboardService(access.DefaultPolicy(), &stubUpstream{}, newStubSessionStore(), zerolog.Nop())

	ov := svc.Overview(salesIdentity())

	if ov.Home != "/dashboard/pedidos" {
		t.Errorf("expected home /dashboard/pedidos, got %s", ov.Home)
	}
	if len(ov.Menu) != 3 {
		t.Fatalf("expected 3 menu entries, got %d", len(ov.Menu))
	}
	if ov.Menu[0].Key != "pedidos" {
		t.Errorf("expected pedidos first, got %s", ov.Menu[0].Key)
	}
}

func TestDashboardService_Section_Success(t *testing.T) {
	up := &stubUpstream{listFn: func(token, path string, query url.Values) (json.RawMessage, error) {
		if token != "tok" || path != "/orders/" || query.Get("page") != "2" {
			t.Fatalf("unexpected args: %s %s %v", token, path, query)
		}
		return json.RawMessage(`{"results":[]}`), nil
	}}
	svc := NewDashboardService(access.DefaultPolicy(), up, seededStore("sid", "tok"), zerolog.Nop())

	body, err := svc.Section(context.Background(), "sid", salesIdentity(), "pedidos", url.Values{"page": {"2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"results":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestDashboardService_Section_UnknownKey(t *testing.T) {
	svc := NewDashboardService(access.DefaultPolicy(), &stubUpstream{}, seededStore("sid", "tok"), zerolog.Nop())

	if _, err := svc.Section(context.Background(), "sid", salesIdentity(), "estoque", nil); !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestDashboardService_Section_Forbidden(t *testing.T) {
	svc := NewDashboardService(access.DefaultPolicy(), &stubUpstream{}, seededStore("sid", "tok"), zerolog.Nop())

	if _, err := svc.Section(context.Background(), "sid", salesIdentity(), "usuarios", nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDashboardService_Section_UpstreamError(t *testing.T) {
	up := &stubUpstream{listFn: func(string, string, url.Values) (json.RawMessage, error) {
		return nil, domain.ErrUpstream
	}}
	svc := NewDashboardService(access.DefaultPolicy(), up, seededStore("sid", "tok"), zerolog.Nop())

	if _, err := svc.Section(context.Background(), "sid", salesIdentity(), "clientes", nil); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
