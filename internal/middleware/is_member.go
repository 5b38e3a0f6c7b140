package middleware

import (
	"net/http"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
)

func IsMemberMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			// Check permissions BEFORE calling next handler
			if claims == nil || claims.Role() == "" {
				common.RespondPermissionDenied(w, "member")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
