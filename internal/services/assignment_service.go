package services

import (
	"context"
	"fmt"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/logging"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/models/dtos/requests"
	"ekklesia/registry/internal/models/dtos/responses"
	"ekklesia/registry/internal/models/entities"
	"ekklesia/registry/internal/rules"
)

// AssignmentService runs the duty planner over a branch roster and stores
// the resulting plan.
type AssignmentService struct {
	catalog    *rules.Catalog
	schedule   *rules.Schedule
	rosterRepo *repositories.MemberRepository
	memberRepo *repositories.MemberRepositoryGORM
	planRepo   *repositories.AssignmentRepository
	metrics    *metrics.MetricsRegistry
}

func NewAssignmentService(
	catalog *rules.Catalog,
	schedule *rules.Schedule,
	rosterRepo *repositories.MemberRepository,
	memberRepo *repositories.MemberRepositoryGORM,
	planRepo *repositories.AssignmentRepository,
	reg *metrics.MetricsRegistry,
) *AssignmentService {
	return &AssignmentService{
		catalog:    catalog,
		schedule:   schedule,
		rosterRepo: rosterRepo,
		memberRepo: memberRepo,
		planRepo:   planRepo,
		metrics:    reg,
	}
}

// assignableStatuses are the lifecycle states a member may hold and still
// be booked for a duty.
var assignableStatuses = map[entities.MemberStatus]bool{
	entities.StatusActive: true,
	entities.StatusPreRA:  true,
}

// AutoAssign plans one service instance and persists the plan, replacing
// any previous plan for the same service. Unfilled duties are reported,
// not treated as an error.
func (s *AssignmentService) AutoAssign(ctx context.Context, req *requests.AutoAssignRequest, now time.Time) (*responses.AutoAssignResponse, error) {
	day, err := entities.ParseWeekday(req.Day)
	if err != nil {
		return nil, err
	}

	serviceDate, err := time.Parse(dateLayout, req.ServiceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid service date: %s", req.ServiceDate)
	}

	serviceTime := entities.ServiceTime(req.ServiceTime)
	if _, ok := s.schedule.ServiceAt(day, serviceTime); !ok {
		return nil, fmt.Errorf("no %s %s service on the schedule", day, serviceTime)
	}

	candidates, err := s.buildRoster(ctx, req, now)
	if err != nil {
		return nil, err
	}

	serviceType := entities.ServiceType(req.ServiceType)
	assignments := rules.AutoAssign(s.catalog, candidates, req.ServiceDate, serviceTime, day, serviceType)

	filled := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		filled[a.DutyID] = true
	}
	unfilled := make([]string, 0)
	for _, duty := range s.catalog.DutiesForServiceType(serviceType) {
		if !filled[duty.ID] {
			unfilled = append(unfilled, duty.ID)
		}
	}

	serviceID := entities.ServiceID(req.ServiceDate, serviceTime)
	if err := s.planRepo.ReplaceForService(ctx, serviceID, serviceDate, assignments); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AssignmentsPlanned.Add(float64(len(assignments)))
		s.metrics.DutiesUnfilled.Add(float64(len(unfilled)))
	}

	logging.Info("duty plan stored",
		"service_id", serviceID,
		"assigned", len(assignments),
		"unfilled", len(unfilled),
	)

	return &responses.AutoAssignResponse{
		ServiceID:      serviceID,
		Assignments:    toAssignmentResponses(assignments),
		UnfilledDuties: unfilled,
	}, nil
}

// buildRoster resolves the candidate pool: an explicit member-id list when
// the request carries one, otherwise every assignable member of the branch.
func (s *AssignmentService) buildRoster(ctx context.Context, req *requests.AutoAssignRequest, now time.Time) ([]rules.Candidate, error) {
	if len(req.MemberIDs) > 0 {
		candidates := make([]rules.Candidate, 0, len(req.MemberIDs))
		for _, id := range req.MemberIDs {
			member, err := s.memberRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			standing := rules.ComputeStatus(now, member.LastAttendance, member.RAHistory, member.Status)
			if !assignableStatuses[standing.Status] {
				logging.Debug("roster member not assignable", "member_id", id, "status", string(standing.Status))
				continue
			}
			candidates = append(candidates, rules.CandidateFromMember(member, now))
		}
		return candidates, nil
	}

	rows, err := s.rosterRepo.FindRosterByBranch(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}

	candidates := make([]rules.Candidate, 0, len(rows))
	for _, row := range rows {
		if !assignableStatuses[row.Status] {
			continue
		}
		candidates = append(candidates, candidateFromRow(row, now))
	}
	return candidates, nil
}

func candidateFromRow(row repositories.MemberRow, at time.Time) rules.Candidate {
	m := entities.Member{
		ID:          row.ID,
		Gender:      row.Gender,
		DateOfBirth: row.DateOfBirth,
		Position:    row.Position,
		Purity:      row.Purity,
	}
	return rules.CandidateFromMember(&m, at)
}

// PlanForService returns the stored plan for one service instance.
func (s *AssignmentService) PlanForService(ctx context.Context, serviceID string) ([]responses.AssignmentResponse, error) {
	assignments, err := s.planRepo.ByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponses(assignments), nil
}

// PlanForMember returns a member's upcoming assignments.
func (s *AssignmentService) PlanForMember(ctx context.Context, memberID string, from time.Time) ([]responses.AssignmentResponse, error) {
	assignments, err := s.planRepo.ByMember(ctx, memberID, from)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponses(assignments), nil
}

// EligibleForDuty lists the branch members who may take a duty on a day,
// in planner preference order.
func (s *AssignmentService) EligibleForDuty(ctx context.Context, branchID, dutyID, dayName string, now time.Time) ([]string, error) {
	day, err := entities.ParseWeekday(dayName)
	if err != nil {
		return nil, err
	}

	rows, err := s.rosterRepo.FindRosterByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	candidates := make([]rules.Candidate, 0, len(rows))
	for _, row := range rows {
		if !assignableStatuses[row.Status] {
			continue
		}
		candidates = append(candidates, candidateFromRow(row, now))
	}

	eligible := s.catalog.EligibleMembers(dutyID, candidates, day)
	ids := make([]string, 0, len(eligible))
	for _, c := range eligible {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func toAssignmentResponses(assignments []entities.AssignedDuty) []responses.AssignmentResponse {
	out := make([]responses.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, responses.AssignmentResponse{
			DutyID:    a.DutyID,
			MemberID:  a.MemberID,
			ServiceID: a.ServiceID,
			Date:      a.Date,
			Time:      string(a.Time),
			Status:    string(a.Status),
		})
	}
	return out
}
