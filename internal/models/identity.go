package models

// Identity is the authenticated caller of an engine operation. It is passed
// explicitly to every service call instead of living in ambient request
// state, so the engine can be exercised without an HTTP context.
type Identity struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the identity is an administrator.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Identity converts claims extracted from a token into a caller identity.
func (c *UserClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Role: c.Role}
}
