package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/logging"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/models/dtos"
	"ekklesia/registry/internal/models/dtos/requests"
	"ekklesia/registry/internal/models/dtos/responses"
	"ekklesia/registry/internal/models/entities"
	"ekklesia/registry/internal/rules"
	"ekklesia/registry/internal/validation"
)

const dateLayout = "2006-01-02"

// MemberFilterOptions extends the DB filters with the derived-field
// filters resolved in memory.
type MemberFilterOptions struct {
	repositories.MemberFilters
	Youth        *bool
	Female       *bool
	HasRAHistory *bool
}

type MemberService struct {
	repo       *repositories.MemberRepositoryGORM
	branchRepo *repositories.BranchRepository
	metrics    *metrics.MetricsRegistry
}

func NewMemberService(repo *repositories.MemberRepositoryGORM, branchRepo *repositories.BranchRepository, reg *metrics.MetricsRegistry) *MemberService {
	return &MemberService{
		repo:       repo,
		branchRepo: branchRepo,
		metrics:    reg,
	}
}

// CreateMember validates the payload, mints a branch-scoped id and a
// receipt number, and stores the member with a freshly derived status.
func (s *MemberService) CreateMember(ctx context.Context, req *requests.CreateMemberRequest, now time.Time) (*responses.MemberResponse, []dtos.FieldError, error) {
	if errs := validation.ValidateCreateMember(req, now); len(errs) > 0 {
		return nil, errs, nil
	}

	branch, err := s.branchRepo.GetByID(ctx, req.MainBranch)
	if err != nil {
		return nil, []dtos.FieldError{{Field: "mainBranch", Message: "unknown branch"}}, nil
	}

	id, err := s.repo.NextMemberID(ctx, branch.IDPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate member id: %w", err)
	}

	dob, _ := time.Parse(dateLayout, req.DateOfBirth)
	entry := now
	if req.DateOfEntry != "" {
		if parsed, err := time.Parse(dateLayout, req.DateOfEntry); err == nil {
			entry = parsed
		}
	}

	position := entities.PositionMember
	if req.Position != "" {
		position = entities.Position(req.Position)
	}
	purity := entities.PurityInapplicable
	if req.Purity != "" {
		purity = entities.PurityStatus(req.Purity)
	}

	receipt := newReceiptNumber(now)
	member := entities.Member{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Surname:       strings.TrimSpace(req.Surname),
		Gender:        entities.Gender(req.Gender),
		DateOfBirth:   dob,
		Phone:         req.Phone,
		Email:         req.Email,
		DateOfEntry:   entry,
		ReasonOfEntry: strings.TrimSpace(req.ReasonOfEntry),
		Address:       strings.TrimSpace(req.Address),
		NextOfKin: entities.NextOfKin{
			Name:         strings.TrimSpace(req.NextOfKin.Name),
			Surname:      strings.TrimSpace(req.NextOfKin.Surname),
			Relationship: req.NextOfKin.Relationship,
			Phone:        req.NextOfKin.Phone,
			Address:      strings.TrimSpace(req.NextOfKin.Address),
		},
		MainBranch:     branch.ID,
		Position:       position,
		Purity:         purity,
		ReceiptNumber:  &receipt,
		Status:         entities.StatusActive,
		LastAttendance: entry,
	}

	standing := rules.ComputeStatus(now, member.LastAttendance, member.RAHistory, member.Status)
	member.Status = standing.Status
	member.RACount = standing.Count
	member.RALock = standing.Lock

	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, nil, err
	}

	logging.Info("member created", "member_id", member.ID, "name", member.FullName(), "branch", member.MainBranch)
	resp := toMemberResponse(&member, now)
	return &resp, nil, nil
}

// GetMember loads a member and reports the status as derived right now,
// so a stale stored status never reaches a caller.
func (s *MemberService) GetMember(ctx context.Context, id string, now time.Time) (*responses.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	standing := rules.ComputeStatus(now, member.LastAttendance, member.RAHistory, member.Status)
	member.Status = standing.Status
	member.RACount = standing.Count
	member.RALock = standing.Lock

	resp := toMemberResponse(member, now)
	return &resp, nil
}

// ListMembers applies the DB filters, then the derived-field filters.
func (s *MemberService) ListMembers(ctx context.Context, opts MemberFilterOptions, now time.Time) ([]responses.MemberResponse, error) {
	members, err := s.repo.List(ctx, opts.MemberFilters)
	if err != nil {
		return nil, err
	}

	out := make([]responses.MemberResponse, 0, len(members))
	for i := range members {
		m := &members[i]
		if opts.Youth != nil && m.IsYouth(now) != *opts.Youth {
			continue
		}
		if opts.Female != nil && m.IsFemale() != *opts.Female {
			continue
		}
		if opts.HasRAHistory != nil && (len(m.RAHistory) > 0) != *opts.HasRAHistory {
			continue
		}

		standing := rules.ComputeStatus(now, m.LastAttendance, m.RAHistory, m.Status)
		m.Status = standing.Status
		m.RACount = standing.Count
		m.RALock = standing.Lock

		out = append(out, toMemberResponse(m, now))
	}
	return out, nil
}

// UpdateMember applies a partial update. Changes that feed the status
// calculator (last attendance, date of death) trigger a recompute before
// the row is written back.
func (s *MemberService) UpdateMember(ctx context.Context, id string, req *requests.UpdateMemberRequest, now time.Time) (*responses.MemberResponse, []dtos.FieldError, error) {
	if errs := validation.ValidateUpdateMember(req, now); len(errs) > 0 {
		return nil, errs, nil
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		member.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Address != nil {
		member.Address = strings.TrimSpace(*req.Address)
	}
	if req.ReasonOfEntry != nil {
		member.ReasonOfEntry = strings.TrimSpace(*req.ReasonOfEntry)
	}
	if req.NextOfKin != nil {
		member.NextOfKin = entities.NextOfKin{
			Name:         strings.TrimSpace(req.NextOfKin.Name),
			Surname:      strings.TrimSpace(req.NextOfKin.Surname),
			Relationship: req.NextOfKin.Relationship,
			Phone:        req.NextOfKin.Phone,
			Address:      strings.TrimSpace(req.NextOfKin.Address),
		}
	}
	if req.Position != nil {
		member.Position = entities.Position(*req.Position)
	}
	if req.Purity != nil {
		member.Purity = entities.PurityStatus(*req.Purity)
	}
	if req.MainBranch != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.MainBranch); err != nil {
			return nil, []dtos.FieldError{{Field: "mainBranch", Message: "unknown branch"}}, nil
		}
		member.MainBranch = *req.MainBranch
	}
	if req.LastAttendance != nil {
		parsed, err := time.Parse(dateLayout, *req.LastAttendance)
		if err != nil {
			return nil, []dtos.FieldError{{Field: "lastAttendance", Message: "please enter a valid date"}}, nil
		}
		member.LastAttendance = parsed
	}
	if req.DateOfDeath != nil {
		parsed, err := time.Parse(dateLayout, *req.DateOfDeath)
		if err != nil {
			return nil, []dtos.FieldError{{Field: "dateOfDeath", Message: "please enter a valid date"}}, nil
		}
		info := entities.DeceasedInfo{DateOfDeath: parsed}
		if req.CauseOfDeath != nil {
			info.CauseOfDeath = *req.CauseOfDeath
		}
		if req.BurialPlace != nil {
			info.BurialPlace = *req.BurialPlace
		}
		member.DeceasedInfo = &info
		member.Status = entities.StatusDeceased
	}

	s.applyStanding(member, now)

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, nil, err
	}

	resp := toMemberResponse(member, now)
	return &resp, nil, nil
}

// DeleteMember removes a member record.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("member not found: %s", id)
	}
	logging.Info("member deleted", "member_id", id)
	return nil
}

// OpenRAEpisode starts a re-admission episode. At most one may be open.
func (s *MemberService) OpenRAEpisode(ctx context.Context, id string, start time.Time, now time.Time) (*responses.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := member.RAHistory.AppendEpisode(start)
	if err != nil {
		return nil, err
	}
	member.RAHistory = history

	s.applyStanding(member, now)

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	logging.Info("ra episode opened", "member_id", id, "start", start.Format(dateLayout))
	resp := toMemberResponse(member, now)
	return &resp, nil
}

// CloseRAEpisode ends the open episode. The third completed episode flips
// the member to permanently inactive regardless of attendance.
func (s *MemberService) CloseRAEpisode(ctx context.Context, id string, end time.Time, reason string, now time.Time) (*responses.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := member.RAHistory.CloseEpisode(end, reason)
	if err != nil {
		return nil, err
	}
	member.RAHistory = history

	s.applyStanding(member, now)

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	logging.Info("ra episode closed", "member_id", id, "ra_count", member.RACount, "locked", member.RALock)
	resp := toMemberResponse(member, now)
	return &resp, nil
}

// CardEligibility reports whether the member can be issued a card.
func (s *MemberService) CardEligibility(ctx context.Context, id string, now time.Time) (*responses.CardEligibilityResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &responses.CardEligibilityResponse{
		MemberID:   member.ID,
		Eligible:   rules.EligibleForCard(now, member.DateOfEntry),
		CardNumber: member.CardNumber,
	}, nil
}

// IssueCard assigns the next card number to an eligible member and
// retires their receipt number.
func (s *MemberService) IssueCard(ctx context.Context, id string, now time.Time) (*responses.CardEligibilityResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.CardNumber != nil {
		return &responses.CardEligibilityResponse{MemberID: member.ID, Eligible: true, CardNumber: member.CardNumber}, nil
	}
	if !rules.EligibleForCard(now, member.DateOfEntry) {
		return nil, fmt.Errorf("member %s is not yet eligible for a card", id)
	}

	next, err := s.repo.NextCardNumber(ctx)
	if err != nil {
		return nil, err
	}
	member.CardNumber = &next
	member.ReceiptNumber = nil

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	logging.Info("card issued", "member_id", id, "card_number", next)
	return &responses.CardEligibilityResponse{MemberID: member.ID, Eligible: true, CardNumber: member.CardNumber}, nil
}

// applyStanding recomputes the derived fields and records transitions.
func (s *MemberService) applyStanding(member *entities.Member, now time.Time) {
	before := member.Status
	standing := rules.ComputeStatus(now, member.LastAttendance, member.RAHistory, member.Status)

	member.Status = standing.Status
	member.RACount = standing.Count
	member.RALock = standing.Lock

	if before != standing.Status && s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(before), string(standing.Status)).Inc()
	}
}

// newReceiptNumber mints a receipt in the RCPT<year><4-digit> form.
func newReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCPT%d%d", now.Year(), 1000+rand.IntN(9000))
}

func toMemberResponse(m *entities.Member, now time.Time) responses.MemberResponse {
	resp := responses.MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		Surname:       m.Surname,
		Gender:        string(m.Gender),
		DateOfBirth:   m.DateOfBirth.Format(dateLayout),
		Phone:         m.Phone,
		Email:         m.Email,
		DateOfEntry:   m.DateOfEntry.Format(dateLayout),
		ReasonOfEntry: m.ReasonOfEntry,
		Address:       m.Address,
		NextOfKin: responses.NextOfKin{
			Name:         m.NextOfKin.Name,
			Surname:      m.NextOfKin.Surname,
			Relationship: m.NextOfKin.Relationship,
			Phone:        m.NextOfKin.Phone,
			Address:      m.NextOfKin.Address,
		},
		MainBranch:     m.MainBranch,
		Position:       string(m.Position),
		Purity:         string(m.Purity),
		CardNumber:     m.CardNumber,
		ReceiptNumber:  m.ReceiptNumber,
		Status:         string(m.Status),
		LastAttendance: m.LastAttendance.Format(dateLayout),
		RACount:        m.RACount,
		RALock:         m.RALock,
		IsYouth:        m.IsYouth(now),
		IsFemale:       m.IsFemale(),
		RAHistory:      make([]responses.RAEpisode, 0, len(m.RAHistory)),
	}

	for _, e := range m.RAHistory {
		ep := responses.RAEpisode{StartDate: e.StartDate.Format(dateLayout)}
		if e.EndDate != nil {
			end := e.EndDate.Format(dateLayout)
			ep.EndDate = &end
		}
		ep.RemovalReason = e.RemovalReason
		resp.RAHistory = append(resp.RAHistory, ep)
	}

	if m.DeceasedInfo != nil {
		resp.DeceasedInfo = &responses.DeceasedInfo{
			DateOfDeath:  m.DeceasedInfo.DateOfDeath.Format(dateLayout),
			CauseOfDeath: m.DeceasedInfo.CauseOfDeath,
			BurialPlace:  m.DeceasedInfo.BurialPlace,
		}
	}

	return resp
}
