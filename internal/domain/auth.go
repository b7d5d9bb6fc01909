package domain

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAttorney Role = "attorney"
	RoleStaff    Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAttorney, RoleStaff:
		return true
	}
	return false
}

// Identity is the authenticated caller attached to a request. It carries no
// credential material.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// NewIdentity derives the request identity from a stored user.
func NewIdentity(u *User) *Identity {
	return &Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
