package domain

import "slices"

// RoleName is the name of a group the upstream API assigns to a user.
type RoleName string

const (
	RoleAdmin          RoleName = "admin"
	RoleSalesPerson    RoleName = "sales_person"
	RoleDeliveryPerson RoleName = "delivery_person"
)

// Known reports whether r belongs to the closed set of roles the dashboard understands.
func (r RoleName) Known() bool {
	switch r {
	case RoleAdmin, RoleSalesPerson, RoleDeliveryPerson:
		return true
	}
	return false
}

// GroupRef is a group membership as reported by the upstream API.
type GroupRef struct {
	ID   int64    `json:"id"`
	Name RoleName `json:"name"`
}

// Identity is the authenticated user behind a session. IsAdmin is an independent
// flag and is never derived from group membership.
type Identity struct {
	ID      int64      `json:"id"`
	Email   string     `json:"email"`
	IsAdmin bool       `json:"is_admin"`
	Groups  []GroupRef `json:"groups"`
}

// Roles returns the role names of the identity's groups, in upstream order.
func (i *Identity) Roles() []RoleName {
	if i == nil {
		return nil
	}
	roles := make([]RoleName, 0, len(i.Groups))
	for _, g := range i.Groups {
		roles = append(roles, g.Name)
	}
	return roles
}

// Equal reports whether two identities carry the same id, admin flag and groups.
func (i *Identity) Equal(other *Identity) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.ID == other.ID &&
		i.Email == other.Email &&
		i.IsAdmin == other.IsAdmin &&
		slices.Equal(i.Groups, other.Groups)
}
