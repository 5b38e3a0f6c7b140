package auth

import "ekklesia/registry/internal/constants"

// UserClaims is what the middlewares attach to the request context after
// authenticating a caller, whatever the credential was.
type UserClaims interface {
	MemberID() string
	Role() string
	Source() string
	BranchID() string
	HasPermission(action string) bool
}

// SessionClaims come from a Redis-backed session cookie.
type SessionClaims struct {
	MemberUUID  string
	RoleValue   constants.AppRole
	BranchValue string
}

func (c *SessionClaims) MemberID() string { return c.MemberUUID }
func (c *SessionClaims) Role() string { // implements UserClaims
	return string(c.RoleValue)
}
func (c *SessionClaims) BranchID() string          { return c.BranchValue }
func (c *SessionClaims) Source() string            { return string(constants.RequestSourceSession) }
func (c *SessionClaims) HasPermission(string) bool { return true }

// APIKeyClaims come from an X-API-Key header, used by the kiosk devices
// at branch entrances.
type APIKeyClaims struct {
	MemberUUID  string
	RoleValue   constants.AppRole
	BranchValue string
	KeyID       string
}

func (c *APIKeyClaims) MemberID() string { return c.MemberUUID }
func (c *APIKeyClaims) Role() string {
	return string(c.RoleValue)
}
func (c *APIKeyClaims) BranchID() string          { return c.BranchValue }
func (c *APIKeyClaims) Source() string            { return string(constants.RequestSourceAPIKey) }
func (c *APIKeyClaims) HasPermission(string) bool { return true }
