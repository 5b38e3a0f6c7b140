package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/models/dtos/requests"
	gormModels "ekklesia/registry/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var sharedDBCounter int

// setupSharedTestDB opens gorm and sqlx over the same in-memory database,
// since check-ins write through sqlx while members load through gorm.
func setupSharedTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	sharedDBCounter++
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", sharedDBCounter)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm database: %v", err)
	}
	if err := gdb.AutoMigrate(&gormModels.Branch{}, &gormModels.Member{}, &gormModels.RAEpisode{}, &gormModels.GuestAttendance{}, &gormModels.DutyAssignment{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	sdb, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlx database: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })

	for _, branch := range []gormModels.Branch{
		{ID: "bulawayo-hq", Name: "Bulawayo HQ", Status: "active", IDPrefix: "bul"},
		{ID: "harare", Name: "Harare", Status: "active", IDPrefix: "har"},
	} {
		if err := gdb.Create(&branch).Error; err != nil {
			t.Fatalf("Failed to seed branch: %v", err)
		}
	}

	return gdb, sdb
}

func newAttendanceService(gdb *gorm.DB, sdb *sqlx.DB) *AttendanceService {
	return NewAttendanceService(
		repositories.NewMemberRepositoryGORM(gdb),
		repositories.NewMemberRepository(sdb),
		repositories.NewGuestAttendanceRepository(sdb),
		repositories.NewBranchRepository(gdb),
		nil,
	)
}

func seedMember(t *testing.T, gdb *gorm.DB, id string, lastAttendance time.Time) {
	member := gormModels.Member{
		ID:             id,
		Name:           "Thandiwe",
		Surname:        "Moyo",
		Gender:         "female",
		DateOfBirth:    time.Date(1995, 4, 20, 0, 0, 0, 0, time.UTC),
		Phone:          "+263771234567",
		DateOfEntry:    svcNow.AddDate(-1, 0, 0),
		MainBranch:     "bulawayo-hq",
		Position:       "facilitator",
		Purity:         "virgin",
		Status:         "active",
		LastAttendance: lastAttendance,
	}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
}

func TestAttendanceService_HomeCheckIn(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAttendanceService(gdb, sdb)
	ctx := context.Background()

	// 70 days absent: preRa until the check-in lands.
	seedMember(t, gdb, "bul-001", svcNow.AddDate(0, 0, -70))

	resp, err := service.CheckIn(ctx, &requests.CheckInRequest{
		MemberID:    "bul-001",
		BranchID:    "bulawayo-hq",
		ServiceDate: svcNow.Format("2006-01-02"),
		ServiceTime: "morning",
	}, svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.GuestCheckIn {
		t.Error("Expected a home check-in")
	}
	if resp.NewStatus != "active" {
		t.Errorf("Expected active after check-in, got %s", resp.NewStatus)
	}

	var stored gormModels.Member
	if err := gdb.Where("id = ?", "bul-001").First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload member: %v", err)
	}
	if stored.Status != "active" {
		t.Errorf("Expected stored status active, got %s", stored.Status)
	}
	if !stored.LastAttendance.Equal(svcNow) && stored.LastAttendance.Format("2006-01-02") != svcNow.Format("2006-01-02") {
		t.Errorf("Expected last attendance to move to %v, got %v", svcNow, stored.LastAttendance)
	}
}

func TestAttendanceService_GuestCheckInLandsInLedger(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAttendanceService(gdb, sdb)
	ctx := context.Background()

	seedMember(t, gdb, "bul-001", svcNow.AddDate(0, 0, -5))

	resp, err := service.CheckIn(ctx, &requests.CheckInRequest{
		MemberID:    "bul-001",
		BranchID:    "harare",
		ServiceDate: svcNow.Format("2006-01-02"),
		ServiceTime: "evening",
	}, svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !resp.GuestCheckIn {
		t.Error("Expected a guest check-in at a non-home branch")
	}

	ledger, err := service.GuestLedgerByMember(ctx, "bul-001")
	if err != nil {
		t.Fatalf("Failed to read guest ledger: %v", err)
	}
	if len(ledger) != 1 {
		t.Fatalf("Expected 1 ledger entry, got %d", len(ledger))
	}
	if ledger[0].BranchID != "harare" {
		t.Errorf("Expected ledger entry for harare, got %s", ledger[0].BranchID)
	}

	byBranch, err := service.GuestLedgerByBranch(ctx, "harare")
	if err != nil {
		t.Fatalf("Failed to read branch ledger: %v", err)
	}
	if len(byBranch) != 1 {
		t.Errorf("Expected 1 branch ledger entry, got %d", len(byBranch))
	}
}

func TestAttendanceService_HistoricalCheckInDoesNotRegress(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAttendanceService(gdb, sdb)
	ctx := context.Background()

	seedMember(t, gdb, "bul-001", svcNow.AddDate(0, 0, -2))

	// A check-in entered late, for a service 30 days back.
	resp, err := service.CheckIn(ctx, &requests.CheckInRequest{
		MemberID:    "bul-001",
		BranchID:    "bulawayo-hq",
		ServiceDate: svcNow.AddDate(0, 0, -30).Format("2006-01-02"),
		ServiceTime: "morning",
	}, svcNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.NewStatus != "active" {
		t.Errorf("Expected active, got %s", resp.NewStatus)
	}

	var stored gormModels.Member
	if err := gdb.Where("id = ?", "bul-001").First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload member: %v", err)
	}
	if stored.LastAttendance.Before(svcNow.AddDate(0, 0, -3)) {
		t.Errorf("Last attendance moved backwards: %v", stored.LastAttendance)
	}
}

func TestAttendanceService_DeceasedMemberRejected(t *testing.T) {
	gdb, sdb := setupSharedTestDB(t)
	service := newAttendanceService(gdb, sdb)
	ctx := context.Background()

	seedMember(t, gdb, "bul-001", svcNow.AddDate(0, 0, -5))
	if err := gdb.Model(&gormModels.Member{}).Where("id = ?", "bul-001").Update("status", "deceased").Error; err != nil {
		t.Fatalf("Failed to mark deceased: %v", err)
	}

	_, err := service.CheckIn(ctx, &requests.CheckInRequest{
		MemberID:    "bul-001",
		BranchID:    "bulawayo-hq",
		ServiceDate: svcNow.Format("2006-01-02"),
		ServiceTime: "morning",
	}, svcNow)
	if err == nil {
		t.Error("Expected a deceased member check-in to fail")
	}
}
