package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodsales/dashboard/internal/core/ports"
)

// DashboardHandler serves the gated dashboard routes.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview handles GET /dashboard.
//
// @Summary      Current identity, landing page and menu
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  overviewResponse
// @Failure      302  {string}  string  "redirect to /login"
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	_, identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	o := h.service.Overview(identity)
	return c.JSON(http.StatusOK, overviewResponse{
		Identity: o.Identity,
		Home:     o.Home,
		Menu:     o.Menu,
	})
}

// Section handles GET /dashboard/:section and passes the upstream list through.
//
// @Summary      List a dashboard section
// @Tags         dashboard
// @Produce      json
// @Param        section  path      string  true  "Section key"  Enums(pedidos, clientes, produtos, logistica, usuarios)
// @Success      200      {object}  object
// @Failure      302      {string}  string  "redirect to the user's home"
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /dashboard/{section} [get]
func (h *DashboardHandler) Section(c echo.Context) error {
	sid, identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	body, err := h.service.Section(c.Request().Context(), sid, identity, c.Param("section"), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
