package api

import (
	"net/http"
	"time"

	"ekklesia/registry/internal/auth"
	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/jobs"
	"ekklesia/registry/internal/logging"
)

// JobsHandler exposes manual triggers for background jobs
type JobsHandler struct {
	sweepJob *jobs.StatusSweepJob
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(sweepJob *jobs.StatusSweepJob) *JobsHandler {
	return &JobsHandler{
		sweepJob: sweepJob,
	}
}

// TriggerStatusSweep runs the membership status sweep on demand.
func (h *JobsHandler) TriggerStatusSweep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		triggeredBy := "unknown"
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			triggeredBy = claims.MemberID()
		}
		logging.Info("status sweep manually triggered", "by", triggeredBy)

		result, err := h.sweepJob.Run(r.Context())
		if err != nil {
			common.RespondError(w, init, err, "status sweep failed", http.StatusConflict)
			return
		}

		common.RespondSuccess(w, init, "status sweep completed", result)
	}
}

// JobStatus reports the last sweep run, if any.
func (h *JobsHandler) JobStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		init := time.Now()

		last := h.sweepJob.LastRun()
		if last == nil {
			common.RespondSuccess(w, init, "no sweep has run yet", nil)
			return
		}

		common.RespondSuccess(w, init, "", last)
	}
}
