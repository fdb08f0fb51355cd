package mwauth

import (
	"context"
	"net/http"
	"strings"

	"tablebooker/internal/lib/api/response"

	"github.com/go-chi/render"
)

type ctxKey struct{}

// New extracts the authenticated principal id from the Authorization header.
// Token verification happens at the edge before requests reach this service;
// here the bearer value is the principal id itself.
func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			principalID, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || principalID == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// PrincipalID returns the authenticated principal id stored by New.
func PrincipalID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
