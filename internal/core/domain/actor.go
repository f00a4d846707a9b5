package domain

import "github.com/google/uuid"

// Role of an authenticated caller.
type Role string

const (
	RoleAdvertiser Role = "advertiser"
	RoleAdmin      Role = "admin"
)

// Actor describes the authenticated caller of a mutating operation. It is
// supplied by the authorization collaborator in front of the engine.
type Actor struct {
	ID    uuid.UUID
	Role  Role
	Email string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccess reports whether a may act on a resource owned by owner.
func (a Actor) CanAccess(owner uuid.UUID) bool {
	return a.IsAdmin() || (a.ID != uuid.Nil && a.ID == owner)
}
