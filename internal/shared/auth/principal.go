package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role of the caller as issued in the access token
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	// RoleSystem is used by webhooks and background jobs
	RoleSystem Role = "system"
)

// ErrNoPrincipal is returned when a request reached a service without authentication
var ErrNoPrincipal = errors.New("no authenticated principal")

// Principal is the authenticated caller, threaded explicitly through every service operation.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSystem
}

// Owns reports whether the principal may act on a resource owned by userID.
func (p Principal) Owns(userID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == userID
}

// System returns the principal used by webhooks and the worker.
func System() Principal {
	return Principal{Role: RoleSystem}
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
