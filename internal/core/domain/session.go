package domain

import "time"

// Session is the server-side record behind a session cookie. It lives from login
// until logout or expiry.
type Session struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionClaims are the verified contents of a session cookie.
type SessionClaims struct {
	SessionID string
	Email     string
	ExpiresAt time.Time
}
