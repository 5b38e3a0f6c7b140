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

// AttendanceService handles check-ins. A check-in at the member's home
// branch just moves last_attendance forward; one at any other branch also
// lands in the guest ledger.
type AttendanceService struct {
	memberRepo *repositories.MemberRepositoryGORM
	sqlRepo    *repositories.MemberRepository
	guestRepo  *repositories.GuestAttendanceRepository
	branchRepo *repositories.BranchRepository
	metrics    *metrics.MetricsRegistry
}

func NewAttendanceService(
	memberRepo *repositories.MemberRepositoryGORM,
	sqlRepo *repositories.MemberRepository,
	guestRepo *repositories.GuestAttendanceRepository,
	branchRepo *repositories.BranchRepository,
	reg *metrics.MetricsRegistry,
) *AttendanceService {
	return &AttendanceService{
		memberRepo: memberRepo,
		sqlRepo:    sqlRepo,
		guestRepo:  guestRepo,
		branchRepo: branchRepo,
		metrics:    reg,
	}
}

// CheckIn records an attendance and returns the member's standing after
// the attendance is applied.
func (s *AttendanceService) CheckIn(ctx context.Context, req *requests.CheckInRequest, now time.Time) (*responses.CheckInResponse, error) {
	serviceDate, err := time.Parse(dateLayout, req.ServiceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid service date: %s", req.ServiceDate)
	}

	member, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	if member.Status == entities.StatusDeceased {
		return nil, fmt.Errorf("member %s is recorded as deceased", member.ID)
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	guest := req.BranchID != member.MainBranch
	if guest {
		if _, err := s.guestRepo.Insert(ctx, member.ID, req.BranchID, serviceDate, entities.ServiceTime(req.ServiceTime)); err != nil {
			return nil, fmt.Errorf("failed to record guest attendance: %w", err)
		}
	}

	// Never move last_attendance backwards; a late-entered historical
	// check-in must not shadow a newer one.
	last := member.LastAttendance
	if serviceDate.After(last) {
		last = serviceDate
	}

	standing := rules.ComputeStatus(now, last, member.RAHistory, member.Status)

	if err := s.sqlRepo.UpdateStanding(ctx, member.ID, standing.Status, standing.Count, standing.Lock, last); err != nil {
		return nil, fmt.Errorf("failed to update member standing: %w", err)
	}

	kind := "home"
	if guest {
		kind = "guest"
	}
	if s.metrics != nil {
		s.metrics.CheckInsTotal.WithLabelValues(kind).Inc()
		if member.Status != standing.Status {
			s.metrics.StatusTransitions.WithLabelValues(string(member.Status), string(standing.Status)).Inc()
		}
	}

	logging.Info("check-in recorded",
		"member_id", member.ID,
		"branch", req.BranchID,
		"kind", kind,
		"status", string(standing.Status),
	)

	return &responses.CheckInResponse{
		MemberID:     member.ID,
		BranchID:     req.BranchID,
		GuestCheckIn: guest,
		NewStatus:    string(standing.Status),
		RACount:      standing.Count,
		RALock:       standing.Lock,
	}, nil
}

// GuestLedgerByMember returns a member's guest check-ins.
func (s *AttendanceService) GuestLedgerByMember(ctx context.Context, memberID string) ([]responses.GuestAttendanceRecord, error) {
	records, err := s.guestRepo.ByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toGuestRecords(records), nil
}

// GuestLedgerByBranch returns a branch's guest check-ins.
func (s *AttendanceService) GuestLedgerByBranch(ctx context.Context, branchID string) ([]responses.GuestAttendanceRecord, error) {
	records, err := s.guestRepo.ByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return toGuestRecords(records), nil
}

func toGuestRecords(records []entities.GuestAttendance) []responses.GuestAttendanceRecord {
	out := make([]responses.GuestAttendanceRecord, 0, len(records))
	for _, r := range records {
		out = append(out, responses.GuestAttendanceRecord{
			MemberID:    r.MemberID,
			BranchID:    r.BranchID,
			ServiceDate: r.ServiceDate.Format(dateLayout),
			ServiceTime: string(r.ServiceTime),
			RecordedAt:  r.RecordedAt,
		})
	}
	return out
}
