// Package middleware provides HTTP middlewares for session gating, request
// ids, logging and panic recovery.
package middleware

import (
	"context"

	"github.com/atinyakov/exhibition/internal/models"
)

type ctxKey string

const (
	identityKey       ctxKey = "identity"
	identityHolderKey ctxKey = "identity_holder"
	requestIDKey      ctxKey = "request_id"
)

// identityHolder lets a middleware wrapping the gate read the identity the
// gate resolved on an inner context.
type identityHolder struct {
	identity *models.Identity
}

func withIdentityHolder(ctx context.Context) (context.Context, *identityHolder) {
	h := &identityHolder{}
	return context.WithValue(ctx, identityHolderKey, h), h
}

// WithIdentity stores id in ctx. A nil id marks the request as anonymous.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	if h, ok := ctx.Value(identityHolderKey).(*identityHolder); ok {
		h.identity = id
	}
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity resolved by the gate, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id, or "" if absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
