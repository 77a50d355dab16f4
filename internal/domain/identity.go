package domain

// Role is a permission class of the operations console.
// Any string is a valid Role value; the canonical set is listed below.
type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleBilling    Role = "billing"
	RoleAdmin      Role = "admin"
	RoleDriver     Role = "driver"
)

// Roles returns the canonical roles in declaration order.
func Roles() []Role {
	return []Role{RoleDispatcher, RoleBilling, RoleAdmin, RoleDriver}
}

// IsCanonical reports whether r is one of the four canonical roles.
func (r Role) IsCanonical() bool {
	for _, c := range Roles() {
		if r == c {
			return true
		}
	}
	return false
}

// Identity is the user driving authorization decisions for the current session.
type Identity struct {
	ID   string
	Name string
	Role Role
}

// WithRole returns a copy of the identity with only the role replaced.
func (i Identity) WithRole(r Role) Identity {
	i.Role = r
	return i
}

// DefaultIdentity is the identity every process starts with.
func DefaultIdentity() Identity {
	return Identity{ID: "1", Name: "Erik", Role: RoleAdmin}
}
