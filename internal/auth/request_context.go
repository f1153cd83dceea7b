package auth

import (
	"context"
)

type contextKey string

var adminClaimsKey contextKey = "admin_claims"

func SetAdminClaims(ctx context.Context, claims *AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

func GetAdminClaims(ctx context.Context) *AdminClaims {
	val := ctx.Value(adminClaimsKey)
	if claims, ok := val.(*AdminClaims); ok {
		return claims
	}
	return nil
}
