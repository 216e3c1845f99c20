// Package session resolves opaque bearer tokens to authenticated principals.
// Sessions live in Redis under a TTL; a closed or expired session behaves
// identically to an absent one.
package session

import (
	"context"
	"errors"
)

// Roles a principal can hold.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
)

// ErrInvalidSession is returned for absent, closed, or expired sessions.
var ErrInvalidSession = errors.New("invalid or expired session")

// Principal is an authenticated customer or technician identity.
type Principal struct {
	ID   string `json:"principalId"`
	Role Role   `json:"role"`
}

// Resolver maps an opaque session token to a principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}
