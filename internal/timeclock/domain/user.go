package domain

import "time"

// Role is the privilege level assigned to a user. Roles are only ever
// changed through the explicit first-login path, never by clock operations.
type Role string

const (
	// RoleCare is the lowest-privilege role and the default for
	// auto-provisioned users.
	RoleCare Role = "CARE"

	// RoleManager can view who is currently clocked in and pull reports.
	RoleManager Role = "MANAGER"
)

// ParseRole maps a role claim string to a known Role, falling back to
// RoleCare for anything unknown or empty.
func ParseRole(s string) Role {
	if Role(s) == RoleManager {
		return RoleManager
	}
	return RoleCare
}

type User struct {
	ID        string
	Subject   string // External identity provider subject, unique when present
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
