package middleware

import (
	"net/http"
	"strings"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
	"ekklesia/registry/internal/db/repositories"
)

// AuthMiddleware authenticates either a kiosk device (X-API-Key) or a
// signed-in user (Bearer session id). Claims land in the request context.
func AuthMiddleware(keysRepo *repositories.KeysRepo, sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				sessionID := strings.TrimPrefix(authHeader, "Bearer ")

				session, err := sessions.GetSession(r.Context(), sessionID)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}

				claims = &auth.SessionClaims{
					MemberUUID:  session.MemberID,
					RoleValue:   session.Role,
					BranchValue: session.BranchID,
				}

				ctx := auth.SetSessionData(r.Context(), session)
				r = r.WithContext(ctx)

			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				// Kiosks act as branch-scoped members
				claims = &auth.APIKeyClaims{
					RoleValue:   constants.RoleMember,
					BranchValue: keyRes.BranchID,
					KeyID:       keyRes.ApiKey,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
