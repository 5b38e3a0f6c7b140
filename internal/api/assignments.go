package api

import (
	"encoding/json"
	"net/http"
	"time"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/models/dtos/requests"
	"ekklesia/registry/internal/models/entities"
	"ekklesia/registry/internal/validation"

	"github.com/go-chi/chi/v5"
)

// AutoAssignHandler plans a full duty roster for one service instance.
// Replanning the same service replaces the previous plan.
func (h *Handlers) AutoAssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.AutoAssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}
		if errs := validation.Struct(&req); len(errs) > 0 {
			common.RespondValidationErrors(w, init, errs)
			return
		}

		plan, err := h.deps.Services.Assignment.AutoAssign(r.Context(), &req, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to plan assignments", http.StatusUnprocessableEntity)
			return
		}

		common.RespondSuccess(w, init, "assignments planned", plan)
	}
}

// ServicePlanHandler returns the stored plan for one service instance.
// GET /assignments?date=YYYY-MM-DD&time=morning|afternoon|evening.
func (h *Handlers) ServicePlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		date := r.URL.Query().Get("date")
		serviceTime := entities.ServiceTime(r.URL.Query().Get("time"))
		if _, err := time.Parse("2006-01-02", date); err != nil || !serviceTime.IsValid() {
			common.RespondError(w, init, nil, "date (YYYY-MM-DD) and time are required", http.StatusBadRequest)
			return
		}

		plan, err := h.deps.Services.Assignment.PlanForService(r.Context(), entities.ServiceID(date, serviceTime))
		if err != nil {
			common.RespondError(w, init, err, "failed to load plan", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"assignments": plan,
			"count":       len(plan),
		})
	}
}

// MemberPlanHandler returns a member's upcoming assignments from today.
func (h *Handlers) MemberPlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		plan, err := h.deps.Services.Assignment.PlanForMember(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to load plan", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"assignments": plan,
			"count":       len(plan),
		})
	}
}
