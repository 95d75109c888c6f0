package model

// Role is the authorization role carried by a token. The raw role
// string on a user record is free-form; authorization decisions only
// ever go through the parsed Role so an unrecognized value can never
// grant elevated access.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleUnknown Role = ""
)

// ParseRole maps a stored role string to a Role. Anything that is not
// a recognized value, including the empty string from tokens issued
// without a role claim, parses to RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	default:
		return RoleUnknown
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
