package models

import "fmt"

// Role is the employee role used for access decisions. Stored as a
// varchar column but typed so checks go through the predicates below
// instead of scattered string comparisons.
type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
	RoleCook    Role = "cook"
	RolePrep    Role = "prep"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCashier, RoleManager, RoleCook, RolePrep:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsManager reports whether the role carries manager authority.
func (r Role) IsManager() bool {
	return r == RoleManager
}

// CanOperatePOS reports whether the role may open a register session.
// Kitchen roles clock in and out but never ring up sales.
func (r Role) CanOperatePOS() bool {
	return r == RoleCashier || r == RoleManager
}

func (r Role) String() string {
	return string(r)
}
