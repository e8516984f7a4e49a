package model

// Role is the coarse permission level attached to an actor.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// Actor is the opaque identity and role claim supplied by the identity
// collaborator. The engine trusts it as given and only checks the role.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
