package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/models/dtos/requests"
	"ekklesia/registry/internal/services"
	"ekklesia/registry/internal/validation"

	"github.com/go-chi/chi/v5"
)

func boolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ListMembersHandler handles GET /members with the roster filters the
// admin screens use.
func (h *Handlers) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		q := r.URL.Query()
		opts := services.MemberFilterOptions{
			MemberFilters: repositories.MemberFilters{
				Branch:   q.Get("branch"),
				Status:   q.Get("status"),
				Position: q.Get("position"),
				Purity:   q.Get("purity"),
				Search:   q.Get("search"),
			},
			Youth:        boolParam(r, "youth"),
			Female:       boolParam(r, "female"),
			HasRAHistory: boolParam(r, "has_ra_history"),
		}

		members, err := h.deps.Services.Member.ListMembers(r.Context(), opts, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to list members", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"members": members,
			"count":   len(members),
		})
	}
}

// SearchMembersHandler handles GET /members/search?q= for the kiosk
// member lookup.
func (h *Handlers) SearchMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		q := r.URL.Query().Get("q")
		if q == "" {
			common.RespondError(w, init, nil, "q is required", http.StatusBadRequest)
			return
		}

		opts := services.MemberFilterOptions{
			MemberFilters: repositories.MemberFilters{
				Branch: r.URL.Query().Get("branch"),
				Search: q,
			},
		}
		members, err := h.deps.Services.Member.ListMembers(r.Context(), opts, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "search failed", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"members": members,
			"count":   len(members),
		})
	}
}

func (h *Handlers) GetMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		member, err := h.deps.Services.Member.GetMember(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "member not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, init, "", member)
	}
}

func (h *Handlers) CreateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.CreateMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}

		member, fieldErrs, err := h.deps.Services.Member.CreateMember(r.Context(), &req, time.Now())
		if len(fieldErrs) > 0 {
			common.RespondValidationErrors(w, init, fieldErrs)
			return
		}
		if err != nil {
			common.RespondError(w, init, err, "failed to create member", http.StatusInternalServerError)
			return
		}

		h.deps.Services.Stats.InvalidateBranch(member.MainBranch)
		common.RespondSuccess(w, init, "member created", member, http.StatusCreated)
	}
}

func (h *Handlers) UpdateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.UpdateMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}

		member, fieldErrs, err := h.deps.Services.Member.UpdateMember(r.Context(), chi.URLParam(r, "id"), &req, time.Now())
		if len(fieldErrs) > 0 {
			common.RespondValidationErrors(w, init, fieldErrs)
			return
		}
		if err != nil {
			common.RespondError(w, init, err, "failed to update member", http.StatusInternalServerError)
			return
		}

		h.deps.Services.Stats.InvalidateBranch(member.MainBranch)
		common.RespondSuccess(w, init, "member updated", member)
	}
}

func (h *Handlers) DeleteMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		if err := h.deps.Services.Member.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondError(w, init, err, "failed to delete member", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, init, "member deleted", nil)
	}
}

// RAHistoryHandler returns a member's full RA ledger with the derived
// standing alongside it.
func (h *Handlers) RAHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		member, err := h.deps.Services.Member.GetMember(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "member not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, init, "", map[string]any{
			"member_id":  member.ID,
			"status":     member.Status,
			"ra_count":   member.RACount,
			"ra_lock":    member.RALock,
			"ra_history": member.RAHistory,
		})
	}
}

func (h *Handlers) OpenRAEpisodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.OpenRAEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}
		if errs := validation.Struct(&req); len(errs) > 0 {
			common.RespondValidationErrors(w, init, errs)
			return
		}

		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			common.RespondError(w, init, err, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		member, err := h.deps.Services.Member.OpenRAEpisode(r.Context(), chi.URLParam(r, "id"), start, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to open RA episode", http.StatusConflict)
			return
		}

		common.RespondSuccess(w, init, "RA episode opened", member)
	}
}

func (h *Handlers) CloseRAEpisodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		var req requests.CloseRAEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, init, err, "invalid request body", http.StatusBadRequest)
			return
		}
		if errs := validation.Struct(&req); len(errs) > 0 {
			common.RespondValidationErrors(w, init, errs)
			return
		}

		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			common.RespondError(w, init, err, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		member, err := h.deps.Services.Member.CloseRAEpisode(r.Context(), chi.URLParam(r, "id"), end, req.RemovalReason, time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to close RA episode", http.StatusConflict)
			return
		}

		common.RespondSuccess(w, init, "RA episode closed", member)
	}
}

func (h *Handlers) CardEligibilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		result, err := h.deps.Services.Member.CardEligibility(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "member not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, init, "", result)
	}
}

func (h *Handlers) IssueCardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		result, err := h.deps.Services.Member.IssueCard(r.Context(), chi.URLParam(r, "id"), time.Now())
		if err != nil {
			common.RespondError(w, init, err, "failed to issue card", http.StatusConflict)
			return
		}

		common.RespondSuccess(w, init, "card issued", result)
	}
}
