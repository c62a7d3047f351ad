package entity

// Role represents the kind of account.
type Role string

const (
	// RoleUser indicates a rider account.
	RoleUser Role = "user"
	// RoleCaptain indicates a driver account.
	RoleCaptain Role = "captain"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCaptain:
		return true
	default:
		return false
	}
}
