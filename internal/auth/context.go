// Package auth carries the caller's identity through a request context.
package auth

import (
	"context"

	"personalblog/internal/models"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored in ctx, or an anonymous identity
// when none was stored.
func IdentityFrom(ctx context.Context) models.Identity {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	if !ok {
		return models.Anonymous()
	}
	return identity
}
