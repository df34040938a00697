package handlers

import (
	"context"
	"net/http"

	"github.com/iEkal8fGe/warehouse/internal/auth"
	"github.com/iEkal8fGe/warehouse/internal/models"
)

type contextKey string

const claimsKey = contextKey("claims")

func ContextWithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// currentUser resolves the authenticated user behind the request claims.
func currentUser(r *http.Request) (models.User, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return models.User{}, false
	}
	u, err := userRepo.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return models.User{}, false
	}
	return u, true
}
