package auth

import (
	"context"

	gormModels "global-healthops/nexus/internal/models/gorm"
)

type contextKey string

var currentUserKey contextKey = "current_user"
var tokenClaimsKey contextKey = "token_claims"

func SetCurrentUser(ctx context.Context, user *gormModels.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetCurrentUser returns the authenticated user, or nil on public routes.
func GetCurrentUser(ctx context.Context) *gormModels.User {
	if user, ok := ctx.Value(currentUserKey).(*gormModels.User); ok {
		return user
	}
	return nil
}

func SetTokenClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, tokenClaimsKey, claims)
}

func GetTokenClaims(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(tokenClaimsKey).(*Claims); ok {
		return claims
	}
	return nil
}
