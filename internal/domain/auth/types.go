// Package auth contains domain-level types for the client session core.
// It is pure and free of transport/storage concerns.
package auth

// Role represents the access level the backend issued for an identity.
// Keep string form for easy persistence. Roles are server-issued and are
// never mutated client-side.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is the user record the backend associates with a credential.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the authenticated state held by the client: an opaque bearer
// credential plus the identity it proves. Both fields are present together
// or the session is invalid; a partially populated session must be treated
// as logged out.
type Session struct {
	Credential string
	Identity   Identity
}

// IsAdmin returns true if the session identity holds the admin role.
func (s Session) IsAdmin() bool { return s.Identity.Role == RoleAdmin }

// Valid reports whether the session satisfies the both-present invariant
// and carries a recognized role.
func (s Session) Valid() bool {
	return s.Credential != "" && s.Identity.ID != "" && s.Identity.Role.Valid()
}
