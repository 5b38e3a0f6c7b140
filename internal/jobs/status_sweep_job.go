package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/logging"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/models/entities"
	"ekklesia/registry/internal/rules"

	"golang.org/x/sync/errgroup"
)

// sweepWorkers bounds the concurrent member updates per sweep.
const sweepWorkers = 8

// StatusSweepJob recomputes every member's lifecycle status on a schedule,
// so members cross the 60- and 90-day thresholds without waiting for a
// check-in or an admin to touch the record.
type StatusSweepJob struct {
	memberRepo *repositories.MemberRepositoryGORM
	sqlRepo    *repositories.MemberRepository
	metrics    *metrics.MetricsRegistry

	mu      sync.Mutex
	lastRun *SweepResult
	running bool
}

// SweepResult summarizes one completed sweep.
type SweepResult struct {
	StartedAt   time.Time `json:"started_at"`
	Duration    string    `json:"duration"`
	Scanned     int       `json:"scanned"`
	Transitions int       `json:"transitions"`
	Errors      int       `json:"errors"`
}

func NewStatusSweepJob(memberRepo *repositories.MemberRepositoryGORM, sqlRepo *repositories.MemberRepository, reg *metrics.MetricsRegistry) *StatusSweepJob {
	return &StatusSweepJob{
		memberRepo: memberRepo,
		sqlRepo:    sqlRepo,
		metrics:    reg,
	}
}

// Run executes one full sweep. Only one sweep runs at a time; a second
// trigger while one is in flight is an error, not a queue.
func (j *StatusSweepJob) Run(ctx context.Context) (*SweepResult, error) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return nil, fmt.Errorf("status sweep already running")
	}
	j.running = true
	j.mu.Unlock()
	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	start := time.Now()
	logging.Info("status sweep started")

	members, err := j.memberRepo.List(ctx, repositories.MemberFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load members for sweep: %w", err)
	}

	var (
		transitions int64
		errCount    int64
		countMu     sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepWorkers)

	for i := range members {
		member := members[i]
		g.Go(func() error {
			standing := rules.ComputeStatus(start, member.LastAttendance, member.RAHistory, member.Status)
			if standing.Status == member.Status && standing.Count == member.RACount && standing.Lock == member.RALock {
				return nil
			}

			err := j.sqlRepo.UpdateStanding(gctx, member.ID, standing.Status, standing.Count, standing.Lock, member.LastAttendance)

			countMu.Lock()
			defer countMu.Unlock()
			if err != nil {
				errCount++
				logging.Error("sweep update failed", "member_id", member.ID, "error", err.Error())
				// Keep sweeping; one bad row must not abort the pass.
				return nil
			}
			transitions++
			if j.metrics != nil && standing.Status != member.Status {
				j.metrics.StatusTransitions.WithLabelValues(string(member.Status), string(standing.Status)).Inc()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if j.metrics != nil {
		j.metrics.StatusSweepDuration.Observe(duration.Seconds())
		j.updateStatusGauges(members, start)
	}

	result := &SweepResult{
		StartedAt:   start,
		Duration:    duration.Round(time.Millisecond).String(),
		Scanned:     len(members),
		Transitions: int(transitions),
		Errors:      int(errCount),
	}

	j.mu.Lock()
	j.lastRun = result
	j.mu.Unlock()

	logging.Info("status sweep completed",
		"scanned", result.Scanned,
		"transitions", result.Transitions,
		"errors", result.Errors,
		"duration", result.Duration,
	)
	return result, nil
}

// RunScheduled runs the sweep on a fixed interval until the context ends.
func (j *StatusSweepJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("status sweep scheduler stopped")
			return
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				logging.Error("scheduled status sweep failed", "error", err.Error())
			}
		}
	}
}

// LastRun reports the most recent completed sweep, if any.
func (j *StatusSweepJob) LastRun() *SweepResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastRun
}

func (j *StatusSweepJob) updateStatusGauges(members []entities.Member, now time.Time) {
	counts := make(map[entities.MemberStatus]int)
	for i := range members {
		standing := rules.ComputeStatus(now, members[i].LastAttendance, members[i].RAHistory, members[i].Status)
		counts[standing.Status]++
	}
	for status, n := range counts {
		j.metrics.MembersByStatus.WithLabelValues(string(status)).Set(float64(n))
	}
}
