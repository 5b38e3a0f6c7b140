package api

import (
	"net/http"
	"time"

	"ekklesia/registry/internal/common"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) MemberStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		stats, err := h.deps.Services.Stats.MemberStats(r.Context(), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to compute member stats", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", stats)
	}
}

func (h *Handlers) BranchStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		stats, err := h.deps.Services.Stats.BranchStats(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to compute branch stats", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", stats)
	}
}

func (h *Handlers) RAHistoryStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		stats, err := h.deps.Services.Stats.RAHistoryStats(r.Context())
		if err != nil {
			common.RespondError(w, init, err, "failed to compute RA stats", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", stats)
	}
}

// ListBranchesHandler is public: the kiosk bootstrap needs the branch
// list before it has any credentials.
func (h *Handlers) ListBranchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		branches, err := h.deps.Repo.Branch.GetAll(r.Context())
		if err != nil {
			common.RespondError(w, init, err, "failed to list branches", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"branches": branches,
			"count":    len(branches),
		})
	}
}

func (h *Handlers) GetBranchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		branch, err := h.deps.Repo.Branch.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, init, err, "branch not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, init, "", branch)
	}
}
