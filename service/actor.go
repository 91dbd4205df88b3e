package service

import (
	"arenawallet/models"
)

// Actor is the authenticated caller of an operation, as established by
// the auth middleware. Wallet operations trust it without re-deriving.
type Actor struct {
	AccountID   int64
	Role        models.Role
	IsSuspended bool
}

// IsAdmin reports whether the actor holds the admin capability
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// requireAdmin guards admin-only transitions
func requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	return nil
}

// requireActive guards mutating wallet operations against suspended accounts
func requireActive(actor Actor) error {
	if actor.IsSuspended {
		return ErrNotAuthorized
	}
	return nil
}
