package middleware

import (
	"context"

	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/google/uuid"
)

type contextKey string

const ctxAdmin contextKey = "admin_identity"

// AdminIdentity is the authenticated admin attached by AdminAuth.
type AdminIdentity struct {
	ID    uuid.UUID
	Email string
	Role  enums.AdminRole
}

// AdminFromContext returns the authenticated admin, if any.
func AdminFromContext(ctx context.Context) (AdminIdentity, bool) {
	if ctx == nil {
		return AdminIdentity{}, false
	}
	identity, ok := ctx.Value(ctxAdmin).(AdminIdentity)
	return identity, ok
}

// WithAdmin injects the admin identity into the context.
func WithAdmin(ctx context.Context, identity AdminIdentity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, identity)
}
