package api

import (
	"encoding/json"
	"net/http"
	"time"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
	"ekklesia/registry/internal/models/dtos/requests"
	"ekklesia/registry/internal/models/dtos/responses"
	"ekklesia/registry/internal/validation"
)

// CheckInHandler handles POST /attendance/check-in. Kiosk callers are
// branch-scoped; their key's branch overrides whatever the body says.
func (h *Handlers) CheckInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.CheckInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}
		if errs := validation.Struct(&req); len(errs) > 0 {
			common.RespondValidationErrors(w, init, errs)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		if claims != nil && claims.Source() == string(constants.RequestSourceAPIKey) && claims.BranchID() != "" {
			req.BranchID = claims.BranchID()
		}

		result, err := h.deps.Services.Attendance.CheckIn(r.Context(), &req, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "check-in failed", http.StatusUnprocessableEntity)
			return
		}

		h.deps.Services.Stats.InvalidateBranch(req.BranchID)
		common.RespondSuccess(w, init, "checked in", result)
	}
}

// GuestLedgerHandler handles GET /attendance/guest?memberId=|branchId=.
// Exactly one of the two selectors is required.
func (h *Handlers) GuestLedgerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		memberID := r.URL.Query().Get("memberId")
		branchID := r.URL.Query().Get("branchId")

		var (
			records []responses.GuestAttendanceRecord
			err     error
		)
		switch {
		case memberID != "" && branchID == "":
			records, err = h.deps.Services.Attendance.GuestLedgerByMember(r.Context(), memberID)
		case branchID != "" && memberID == "":
			records, err = h.deps.Services.Attendance.GuestLedgerByBranch(r.Context(), branchID)
		default:
			common.RespondError(w, init, nil, "exactly one of memberId or branchId is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			common.RespondError(w, init, err, "failed to load guest ledger", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"records": records,
			"count":   len(records),
		})
	}
}
