package httpapi

import (
	"context"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	profileContextKey   contextKey = "auth_profile"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withProfile(ctx context.Context, p user.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

func profileFromContext(ctx context.Context) (user.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(user.Profile)
	return p, ok
}
