package middleware

import (
	"net/http"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
)

// IsLeaderMiddleware admits branch leaders and admins.
func IsLeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil {
				common.RespondPermissionDenied(w, "leader")
				return
			}

			role := claims.Role()
			if role != constants.RoleLeader.String() && role != constants.RoleAdmin.String() {
				common.RespondPermissionDenied(w, "leader")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
