package handler

import "github.com/foodsales/dashboard/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginFormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type loginFormResponse struct {
	Action string           `json:"action"`
	Method string           `json:"method"`
	Fields []loginFormField `json:"fields"`
}

type loginResponse struct {
	Home     string           `json:"home"`
	Identity *domain.Identity `json:"identity"`
}

type overviewResponse struct {
	Identity *domain.Identity `json:"identity"`
	Home     string           `json:"home"`
	Menu     []domain.Section `json:"menu"`
}
