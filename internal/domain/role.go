package domain

// Role is the closed set of organization roles. There is no delegation
// and roles are not user-definable.
type Role string

const (
	// RoleNone marks a registered user that has not joined an
	// organization yet.
	RoleNone Role = ""

	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Valid reports whether r is one of the three assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

// Invitable reports whether r may be granted through an invite code.
// Admin is granted only by organization creation.
func (r Role) Invitable() bool {
	return r == RoleManager || r == RoleMember
}

func (r Role) String() string { return string(r) }
