// Package access decides which dashboard pages a session may view and where to
// send it when it may not.
package access

import (
	"strings"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// RoutePermissionTable maps a role to the path prefixes it may open.
type RoutePermissionTable map[domain.RoleName][]string

// HomeRouteTable maps a role to its landing page.
type HomeRouteTable map[domain.RoleName]string

// DefaultPermissions is the production route table. Admin has no entry: the
// is_admin flag grants every path.
var DefaultPermissions = RoutePermissionTable{
	domain.RoleSalesPerson: {
		"/dashboard/pedidos",
		"/dashboard/clientes",
		"/dashboard/produtos",
	},
	domain.RoleDeliveryPerson: {
		"/dashboard/logistica",
	},
}

var DefaultHomes = HomeRouteTable{
	domain.RoleAdmin:          domain.DashboardRoot,
	domain.RoleSalesPerson:    "/dashboard/pedidos",
	domain.RoleDeliveryPerson: "/dashboard/logistica",
}

// homePriority is the order in which roles claim the landing page when a user
// holds more than one.
var homePriority = []domain.RoleName{
	domain.RoleSalesPerson,
	domain.RoleDeliveryPerson,
}

// Policy is a pure function of its tables and the caller's identity data.
type Policy struct {
	permissions RoutePermissionTable
	homes       HomeRouteTable
	fallback    string
}

// NewPolicy builds a Policy. Nil tables fall back to the defaults.
func NewPolicy(permissions RoutePermissionTable, homes HomeRouteTable) *Policy {
	if permissions == nil {
		permissions = DefaultPermissions
	}
	if homes == nil {
		homes = DefaultHomes
	}
	return &Policy{permissions: permissions, homes: homes, fallback: domain.DashboardRoot}
}

// DefaultPolicy returns a Policy over the production tables.
func DefaultPolicy() *Policy {
	return NewPolicy(nil, nil)
}

// CanAccess reports whether a user with the given groups may open path.
// Unknown role names contribute nothing.
func (p *Policy) CanAccess(groups []domain.RoleName, isAdmin bool, path string) bool {
	if isAdmin {
		return true
	}
	for _, role := range groups {
		for _, prefix := range p.permissions[role] {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}
	return false
}

// HomePage returns the landing path for the given groups. Users with no
// recognised role land on the dashboard root.
func (p *Policy) HomePage(groups []domain.RoleName, isAdmin bool) string {
	if isAdmin {
		if home, ok := p.homes[domain.RoleAdmin]; ok {
			return home
		}
		return p.fallback
	}
	for _, role := range homePriority {
		if !hasRole(groups, role) {
			continue
		}
		if home, ok := p.homes[role]; ok {
			return home
		}
	}
	return p.fallback
}

// Menu filters sections down to the ones the user may open, keeping their order.
func (p *Policy) Menu(groups []domain.RoleName, isAdmin bool, sections []domain.Section) []domain.Section {
	menu := make([]domain.Section, 0, len(sections))
	for _, s := range sections {
		if p.CanAccess(groups, isAdmin, s.Path) {
			menu = append(menu, s)
		}
	}
	return menu
}

func hasRole(groups []domain.RoleName, role domain.RoleName) bool {
	for _, g := range groups {
		if g == role {
			return true
		}
	}
	return false
}
