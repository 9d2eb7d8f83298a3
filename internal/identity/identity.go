// Package identity carries the pre-authenticated actor through the request
// path. Authentication happens at the boundary layer; services receive the
// Actor as an explicit parameter, never via ambient lookup.
package identity

// Role is the coarse access level assigned to a user at signup.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLegal    Role = "LEGAL"
	RoleConsumer Role = "CONSUMER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLegal, RoleConsumer:
		return true
	}
	return false
}

// Actor is an authenticated identity: a stable numeric user id plus the
// unique user name that ledger entries reference. The user name outlives the
// consumer profile, so ledger rows stay resolvable after erasure.
type Actor struct {
	UserID   int64
	UserName string
	Role     Role
}

// Zero reports whether the actor carries no identity.
func (a Actor) Zero() bool {
	return a.UserID == 0 && a.UserName == ""
}
