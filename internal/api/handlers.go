package api

import (
	"encoding/json"
	"net/http"
	"time"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

type generateLoginLinkRequest struct {
	MemberID string `json:"member_id"`
	BranchID string `json:"branch_id"`
}

// GenerateLoginLinkHandler issues a presigned single-use login link for a
// leader. Admin-only.
func (h *Handlers) GenerateLoginLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req generateLoginLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MemberID == "" {
			common.RespondError(w, init, nil, "member_id is required", http.StatusBadRequest)
			return
		}

		token, err := h.deps.Services.URLSigner.GeneratePresignedToken(req.MemberID, req.BranchID, 15*time.Minute)
		if err != nil {
			common.RespondError(w, init, err, "failed to generate token", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "login link generated", map[string]any{
			"url":        r.Host + "/auth/login?token=" + token,
			"expires_in": 900,
		})
	}
}

// LoginWithTokenHandler swaps a presigned token for a session. The token
// is burned on first use.
func (h *Handlers) LoginWithTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			common.RespondError(w, init, nil, "token is required", http.StatusBadRequest)
			return
		}

		signed, err := h.deps.Services.URLSigner.ValidateToken(r.Context(), tokenString)
		if err != nil {
			common.RespondError(w, init, err, "invalid token", http.StatusUnauthorized)
			return
		}

		member, err := h.deps.Services.Member.GetMember(r.Context(), signed.MemberID, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "unknown member", http.StatusUnauthorized)
			return
		}

		if err := h.deps.Services.URLSigner.MarkTokenAsUsed(r.Context(), signed.TokenID); err != nil {
			common.RespondError(w, init, err, "failed to burn token", http.StatusInternalServerError)
			return
		}

		sessionID, err := h.deps.Services.Session.CreateSession(
			r.Context(), member.ID, signed.BranchID, member.Name, constants.RoleLeader)
		if err != nil {
			common.RespondError(w, init, err, "failed to create session", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "logged in", map[string]any{
			"session_id": sessionID,
			"member_id":  member.ID,
			"role":       string(constants.RoleLeader),
		})
	}
}

// LogoutHandler deletes the caller's session.
func (h *Handlers) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		session := auth.GetSessionData(r.Context())
		data, ok := session.(*common.SessionData)
		if !ok || data == nil {
			common.RespondError(w, init, nil, "no session to log out", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Session.DeleteSession(r.Context(), data.SessionID); err != nil {
			common.RespondError(w, init, err, "failed to delete session", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "logged out", nil)
	}
}

// ProfileHandler returns the caller's claims, for the UI shell.
func (h *Handlers) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, init, nil, "unauthorized", http.StatusUnauthorized)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"member_id": claims.MemberID(),
			"branch_id": claims.BranchID(),
			"role":      claims.Role(),
			"source":    claims.Source(),
		})
	}
}
