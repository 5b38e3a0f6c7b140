package api

import (
	"net/http"
	"strconv"
	"time"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

// ListDutiesHandler returns the duty catalog, optionally narrowed to the
// duties a service type requires (?service_type=full|short).
func (h *Handlers) ListDutiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		duties := h.deps.Catalog.Duties()
		if raw := r.URL.Query().Get("service_type"); raw != "" {
			st := entities.ServiceType(raw)
			if !st.IsValid() {
				common.RespondError(w, init, nil, "service_type must be full or short", http.StatusBadRequest)
				return
			}
			duties = h.deps.Catalog.DutiesForServiceType(st)
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"duties": duties,
			"count":  len(duties),
		})
	}
}

// WeeklyScheduleHandler returns the fixed weekly service grid.
func (h *Handlers) WeeklyScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		common.RespondSuccess(w, init, "", map[string]any{
			"slots": h.deps.Schedule.Slots(),
		})
	}
}

// UpcomingServicesHandler returns dated service instances for the next
// n days (?days=7, capped at 31).
func (h *Handlers) UpcomingServicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 31 {
				common.RespondError(w, init, err, "days must be between 1 and 31", http.StatusBadRequest)
				return
			}
			days = n
		}

		services := h.deps.Schedule.Upcoming(time.Now(), days)
		common.RespondSuccess(w, init, "", map[string]any{
			"services": services,
			"count":    len(services),
		})
	}
}

// EligibleMembersHandler lists the members of a branch who may hold a
// duty on a given day. GET /duties/{dutyID}/eligible?branch=...&day=...
func (h *Handlers) EligibleMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		dutyID := chi.URLParam(r, "dutyID")
		branchID := r.URL.Query().Get("branch")
		day := r.URL.Query().Get("day")
		if branchID == "" || day == "" {
			common.RespondError(w, init, nil, "branch and day are required", http.StatusBadRequest)
			return
		}

		if _, ok := h.deps.Catalog.DutyByID(dutyID); !ok {
			common.RespondError(w, init, nil, "unknown duty", http.StatusNotFound)
			return
		}

		memberIDs, err := h.deps.Services.Assignment.EligibleForDuty(r.Context(), branchID, dutyID, day, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to evaluate eligibility", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"duty_id":    dutyID,
			"day":        day,
			"member_ids": memberIDs,
			"count":      len(memberIDs),
		})
	}
}
