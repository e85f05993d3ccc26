package middleware

import (
	"context"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity attached by RequireToken.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(models.Identity)
	return id, ok
}
