package services

import (
	"context"
	"testing"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/models/dtos/requests"
	gormModels "ekklesia/registry/internal/models/gorm"
	"ekklesia/registry/internal/rules"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

func newAssignmentService(gdb *gorm.DB, sdb *sqlx.DB) *AssignmentService {
	return NewAssignmentService(
		rules.DefaultCatalog(),
		rules.DefaultSchedule(),
		repositories.NewMemberRepository(sdb),
		repositories.NewMemberRepositoryGORM(gdb),
		repositories.NewAssignmentRepository(gdb),
		nil,
	)
}

func seedRosterMember(t *testing.T, gdb *gorm.DB, id, gender, position, purity string, dob time.Time, status string) {
	member := gormModels.Member{
		ID:             id,
		Name:           "Member",
		Surname:        id,
		Gender:         gender,
		DateOfBirth:    dob,
		Phone:          "+263771234567",
		DateOfEntry:    svcNow.AddDate(-1, 0, 0),
		MainBranch:     "bulawayo-hq",
		Position:       position,
		Purity:         purity,
		Status:         status,
		LastAttendance: svcNow.AddDate(0, 0, -3),
	}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed member %s: %v", id, err)
	}
}

func seedFullRoster(t *testing.T, gdb *gorm.DB) {
	youth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	adult := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	seedRosterMember(t, gdb, "bul-001", "female", "facilitator", "inapplicable", adult, "active")
	seedRosterMember(t, gdb, "bul-002", "male", "facilitator", "none", youth, "active")
	seedRosterMember(t, gdb, "bul-003", "female", "evangelist", "virgin", youth, "active")
	seedRosterMember(t, gdb, "bul-004", "male", "messenger", "none", adult, "active")
	seedRosterMember(t, gdb, "bul-005", "male", "songster", "none", youth, "active")
	seedRosterMember(t, gdb, "bul-006", "female", "steward", "inapplicable", adult, "active")
	seedRosterMember(t, gdb, "bul-007", "male", "clerk", "none", adult, "active")
	seedRosterMember(t, gdb, "bul-008", "female", "conciliator", "virgin", youth, "active")
	seedRosterMember(t, gdb, "bul-009", "male", "member", "none", youth, "active")
}

func TestAssignmentService_AutoAssignPersistsPlan(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAssignmentService(gdb, sdb)
	ctx := context.Background()

	seedFullRoster(t, gdb)

	resp, err := service.AutoAssign(ctx, &requests.AutoAssignRequest{
		BranchID:    "bulawayo-hq",
		ServiceDate: "2026-08-16",
		ServiceTime: "morning",
		Day:         "sunday",
		ServiceType: "full",
	}, svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.ServiceID != "2026-08-16_morning" {
		t.Errorf("Unexpected service id %s", resp.ServiceID)
	}
	if len(resp.Assignments) == 0 {
		t.Fatal("Expected assignments for a full roster")
	}

	// No member booked twice.
	booked := make(map[string]int)
	for _, a := range resp.Assignments {
		booked[a.MemberID]++
	}
	for id, n := range booked {
		if n > 1 {
			t.Errorf("Member %s booked %d times", id, n)
		}
	}

	// The plan survives a reload.
	stored, err := service.PlanForService(ctx, resp.ServiceID)
	if err != nil {
		t.Fatalf("Failed to load stored plan: %v", err)
	}
	if len(stored) != len(resp.Assignments) {
		t.Errorf("Stored plan has %d entries, expected %d", len(stored), len(resp.Assignments))
	}
}

func TestAssignmentService_ReplanReplacesPlan(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAssignmentService(gdb, sdb)
	ctx := context.Background()

	seedFullRoster(t, gdb)

	req := &requests.AutoAssignRequest{
		BranchID:    "bulawayo-hq",
		ServiceDate: "2026-08-16",
		ServiceTime: "morning",
		Day:         "sunday",
		ServiceType: "full",
	}

	first, err := service.AutoAssign(ctx, req, svcNow)
	if err != nil {
		t.Fatalf("First plan failed: %v", err)
	}
	second, err := service.AutoAssign(ctx, req, svcNow)
	if err != nil {
		t.Fatalf("Second plan failed: %v", err)
	}

	stored, err := service.PlanForService(ctx, second.ServiceID)
	if err != nil {
		t.Fatalf("Failed to load stored plan: %v", err)
	}
	if len(stored) != len(first.Assignments) {
		t.Errorf("Replan duplicated rows: %d stored, %d planned", len(stored), len(first.Assignments))
	}
}

func TestAssignmentService_ExcludesNonAssignableMembers(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAssignmentService(gdb, sdb)
	ctx := context.Background()

	adult := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	seedRosterMember(t, gdb, "bul-001", "male", "messenger", "none", adult, "ra")
	seedRosterMember(t, gdb, "bul-002", "male", "messenger", "none", adult, "inactive")

	resp, err := service.AutoAssign(ctx, &requests.AutoAssignRequest{
		BranchID:    "bulawayo-hq",
		ServiceDate: "2026-08-16",
		ServiceTime: "morning",
		Day:         "sunday",
		ServiceType: "short",
	}, svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(resp.Assignments) != 0 {
		t.Errorf("Expected no assignments from an RA/inactive roster, got %d", len(resp.Assignments))
	}
	if len(resp.UnfilledDuties) == 0 {
		t.Error("Expected every short-service duty to be reported unfilled")
	}
}

func TestAssignmentService_UnknownServiceSlotRejected(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAssignmentService(gdb, sdb)

	_, err := service.AutoAssign(context.Background(), &requests.AutoAssignRequest{
		BranchID:    "bulawayo-hq",
		ServiceDate: "2026-08-17",
		ServiceTime: "morning",
		Day:         "monday",
		ServiceType: "short",
	}, svcNow)
	if err == nil {
		t.Error("Expected an error for a slot not on the schedule")
	}
}

func TestAssignmentService_EligibleForDuty(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAssignmentService(gdb, sdb)
	ctx := context.Background()

	youth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	adult := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	// Wednesday chair needs youth + virgin.
	seedRosterMember(t, gdb, "bul-001", "female", "facilitator", "virgin", youth, "active")
	seedRosterMember(t, gdb, "bul-002", "male", "facilitator", "none", adult, "active")

	ids, err := service.EligibleForDuty(ctx, "bulawayo-hq", rules.DutyChair, "wednesday", svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ids) != 1 || ids[0] != "bul-001" {
		t.Errorf("Expected only bul-001 eligible, got %v", ids)
	}
}
