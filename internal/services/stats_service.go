package services

import (
	"context"
	"time"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/constants"
	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/models/dtos/responses"
	"ekklesia/registry/internal/models/entities"
	"ekklesia/registry/internal/rules"
)

const statsCacheTTL = 5 * time.Minute

// newMemberWindowDays is the lookback for the "new members" stat.
const newMemberWindowDays = 30

// StatsService derives aggregate views over the member base. Results are
// cached briefly; dashboards poll these endpoints.
type StatsService struct {
	repo    *repositories.MemberRepositoryGORM
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewStatsService(repo *repositories.MemberRepositoryGORM, cache common.CacheInterface, reg *metrics.MetricsRegistry) *StatsService {
	return &StatsService{
		repo:    repo,
		cache:   cache,
		metrics: reg,
	}
}

// MemberStats computes the congregation-wide totals.
func (s *StatsService) MemberStats(ctx context.Context, now time.Time) (*responses.MemberStatsResponse, error) {
	key := string(constants.CachePrefixMemberStats) + "all"

	val, err := s.getOrLoad(key, func() (any, error) {
		members, err := s.repo.List(ctx, repositories.MemberFilters{})
		if err != nil {
			return nil, err
		}
		return s.computeMemberStats(members, now), nil
	})
	if err != nil {
		return nil, err
	}

	stats := val.(*responses.MemberStatsResponse)
	return stats, nil
}

// BranchStats computes the per-branch totals.
func (s *StatsService) BranchStats(ctx context.Context, branchID string, now time.Time) (*responses.BranchStatsResponse, error) {
	key := string(constants.CachePrefixBranchStats) + branchID

	val, err := s.getOrLoad(key, func() (any, error) {
		members, err := s.repo.List(ctx, repositories.MemberFilters{Branch: branchID})
		if err != nil {
			return nil, err
		}

		stats := &responses.BranchStatsResponse{BranchID: branchID}
		cutoff := now.AddDate(0, 0, -newMemberWindowDays)
		for i := range members {
			m := &members[i]
			standing := rules.ComputeStatus(now, m.LastAttendance, m.RAHistory, m.Status)

			stats.Total++
			switch standing.Status {
			case entities.StatusActive:
				stats.Active++
			case entities.StatusPreRA:
				stats.PreRA++
			case entities.StatusRA:
				stats.RA++
			}
			if standing.InOpenEpisode {
				stats.WithCurrentRA++
			}
			if m.DateOfEntry.After(cutoff) {
				stats.NewMembers++
			}
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}

	return val.(*responses.BranchStatsResponse), nil
}

// RAHistoryStats aggregates the RA ledger across the member base.
func (s *StatsService) RAHistoryStats(ctx context.Context) (*responses.RAHistoryStatsResponse, error) {
	key := string(constants.CachePrefixRAStats) + "all"

	val, err := s.getOrLoad(key, func() (any, error) {
		members, err := s.repo.List(ctx, repositories.MemberFilters{})
		if err != nil {
			return nil, err
		}

		stats := &responses.RAHistoryStatsResponse{RemovalReasons: make(map[string]int)}
		for i := range members {
			history := members[i].RAHistory
			if len(history) == 0 {
				continue
			}
			stats.MembersWithRAHistory++
			for _, e := range history {
				stats.TotalRARecords++
				if e.Completed() {
					stats.PastRAs++
					if e.RemovalReason != nil {
						stats.RemovalReasons[*e.RemovalReason]++
					}
				} else {
					stats.CurrentRAs++
				}
			}
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}

	return val.(*responses.RAHistoryStatsResponse), nil
}

// InvalidateBranch drops the cached stats touched by a write to a branch.
func (s *StatsService) InvalidateBranch(branchID string) {
	s.cache.Delete(string(constants.CachePrefixMemberStats) + "all")
	s.cache.Delete(string(constants.CachePrefixRAStats) + "all")
	s.cache.Delete(string(constants.CachePrefixBranchStats) + branchID)
}

func (s *StatsService) getOrLoad(key string, loader func() (any, error)) (any, error) {
	if val, found := s.cache.Get(key); found {
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.WithLabelValues(prefixOf(key)).Inc()
		}
		return val, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues(prefixOf(key)).Inc()
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, val, statsCacheTTL)
	return val, nil
}

func prefixOf(key string) string {
	for _, p := range []constants.CachePrefix{
		constants.CachePrefixMemberStats,
		constants.CachePrefixBranchStats,
		constants.CachePrefixRAStats,
		constants.CachePrefixDutyRoster,
	} {
		if len(key) >= len(p) && key[:len(p)] == string(p) {
			return string(p)
		}
	}
	return "OTHER_"
}

func (s *StatsService) computeMemberStats(members []entities.Member, now time.Time) *responses.MemberStatsResponse {
	stats := &responses.MemberStatsResponse{}
	cutoff := now.AddDate(0, 0, -newMemberWindowDays)
	byStatus := make(map[entities.MemberStatus]int)

	for i := range members {
		m := &members[i]
		standing := rules.ComputeStatus(now, m.LastAttendance, m.RAHistory, m.Status)

		stats.Total++
		byStatus[standing.Status]++
		switch standing.Status {
		case entities.StatusActive:
			stats.Active++
		case entities.StatusPreRA:
			stats.PreRA++
		case entities.StatusRA:
			stats.RA++
		case entities.StatusInactive:
			stats.Inactive++
		case entities.StatusDeceased:
			stats.Deceased++
		}

		if m.IsYouth(now) {
			stats.Youth++
		}
		if m.IsFemale() {
			stats.Female++
		} else if m.Gender == entities.GenderMale {
			stats.Male++
		}
		if len(m.RAHistory) > 0 {
			stats.WithRAHistory++
		}
		if standing.InOpenEpisode {
			stats.WithCurrentRA++
		}
		if m.DateOfEntry.After(cutoff) {
			stats.NewMembers++
		}
	}

	if s.metrics != nil {
		for status, count := range byStatus {
			s.metrics.MembersByStatus.WithLabelValues(string(status)).Set(float64(count))
		}
	}

	return stats
}
