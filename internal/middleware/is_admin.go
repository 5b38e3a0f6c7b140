package middleware

import (
	"net/http"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
)

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || claims.Role() != constants.RoleAdmin.String() {
				common.RespondPermissionDenied(w, "admin")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
