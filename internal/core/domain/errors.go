package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrSectionNotFound    = errors.New("section not found")
	ErrUpstream           = errors.New("upstream api error")
)
