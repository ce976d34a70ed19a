package ports

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// Tokens are the credentials the upstream API hands out on login.
type Tokens struct {
	Access  string
	Refresh string
}

// UpstreamAPI is the remote REST API the dashboard sits in front of.
type UpstreamAPI interface {
	Login(ctx context.Context, email, password string) (*Tokens, error)
	// CurrentUser returns domain.ErrUnauthenticated when the token is rejected.
	CurrentUser(ctx context.Context, accessToken string) (*domain.Identity, error)
	// List fetches a collection and returns the body untouched.
	List(ctx context.Context, accessToken, path string, query url.Values) (json.RawMessage, error)
}
