package middleware

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// userIDKey and roleKey hold the authenticated caller's identity in the
// request context.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromCtx retrieves the authenticated caller's role from the context.
func GetRoleFromCtx(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	if !ok {
		return "", false
	}
	return role, true
}

// GetActorFromCtx assembles the acting identity from the context. The bool is
// false when the request carries no authenticated user.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	userID, okUser := GetUserIDFromCtx(ctx)
	role, okRole := GetRoleFromCtx(ctx)
	if !okUser || !okRole {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: &userID, Role: role}, true
}
