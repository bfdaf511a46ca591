package models

import "fmt"

// Role is the access level of a user profile. Roles form a strict total
// order: employee < manager < admin. A role grants entry to every area whose
// required level ranks at or below it.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// roleRank is the single place the order is encoded. Comparisons must go
// through Rank or AtLeast, never through string comparison.
var roleRank = map[Role]int{
	RoleEmployee: 0,
	RoleManager:  1,
	RoleAdmin:    2,
}

// ParseRole validates a raw string coming from a request body or a database
// row and returns the typed role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the three defined roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the integer position of r in the role order
// (employee=0, manager=1, admin=2). Unknown roles rank below every valid
// role so they never satisfy an AtLeast check.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r ranks at or above min. It is false when either
// side is not a valid role.
func (r Role) AtLeast(min Role) bool {
	if !r.Valid() || !min.Valid() {
		return false
	}
	return r.Rank() >= min.Rank()
}
