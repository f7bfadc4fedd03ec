package http

import (
	"context"

	"campus-events-backend/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// withIdentity attaches the authenticated caller to the request context.
func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// identityFrom extracts the authenticated caller placed there by the auth
// middleware.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
