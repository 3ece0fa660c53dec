package domain

// Role is the authorization role of an authenticated user.
type Role string

// IsValid returns whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole converts the given string into a known Role.
func ParseRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// AuthSession is the authentication state navigation is evaluated against.
type AuthSession struct {
	Authenticated bool `json:"authenticated"`
	Role          Role `json:"role,omitempty"`
}

// HasRole returns whether the session is authenticated with the given role.
func (s AuthSession) HasRole(role Role) bool {
	return s.Authenticated && s.Role == role
}

// User identifies who the current session belongs to.
type User struct {
	Username string `json:"username,omitempty"`
}
