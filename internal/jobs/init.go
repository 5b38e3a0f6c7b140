package jobs

import (
	"context"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/metrics"
)

// sweepInterval is how often the scheduled status sweep runs.
const sweepInterval = 6 * time.Hour

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	memberRepo *repositories.MemberRepositoryGORM,
	sqlRepo *repositories.MemberRepository,
	metricsReg *metrics.MetricsRegistry,
) *StatusSweepJob {
	sweepJob := NewStatusSweepJob(memberRepo, sqlRepo, metricsReg)

	// Start scheduled sweep in background
	go sweepJob.RunScheduled(ctx, sweepInterval)

	return sweepJob
}
