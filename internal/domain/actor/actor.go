// Package actor identifies who is calling a domain operation.
package actor

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller as seen by the domain services.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Authenticated reports whether the actor carries a user identity.
func (a Actor) Authenticated() bool { return a.UserID != "" }
