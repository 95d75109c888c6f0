package model

// Principal is the authenticated identity derived from a verified
// bearer token. It lives only for the duration of one request and is
// never cached or shared across requests.
type Principal struct {
	Username string
	ID       int64
	Role     Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
