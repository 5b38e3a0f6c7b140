package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ekklesia/registry/internal/db/repositories"
	gormModels "ekklesia/registry/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var sweepDBCounter int

func setupSweepTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	sweepDBCounter++
	dsn := fmt.Sprintf("file:sweep_test_%d?mode=memory&cache=shared", sweepDBCounter)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm database: %v", err)
	}
	if err := gdb.AutoMigrate(&gormModels.Branch{}, &gormModels.Member{}, &gormModels.RAEpisode{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	sdb, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlx database: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })

	branch := gormModels.Branch{ID: "bulawayo-hq", Name: "Bulawayo HQ", Status: "active", IDPrefix: "bul"}
	if err := gdb.Create(&branch).Error; err != nil {
		t.Fatalf("Failed to seed branch: %v", err)
	}

	return gdb, sdb
}

func seedSweepMember(t *testing.T, gdb *gorm.DB, id, status string, lastAttendance time.Time) {
	member := gormModels.Member{
		ID:             id,
		Name:           "Thandiwe",
		Surname:        "Moyo",
		Gender:         "female",
		DateOfBirth:    time.Date(1995, 4, 20, 0, 0, 0, 0, time.UTC),
		Phone:          "+263771234567",
		DateOfEntry:    lastAttendance,
		MainBranch:     "bulawayo-hq",
		Position:       "member",
		Purity:         "inapplicable",
		Status:         status,
		LastAttendance: lastAttendance,
	}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
}

func TestStatusSweep_TransitionsStaleStatuses(t *testing.T) {
	gdb, sdb := setupSweepTestDB(t)
	now := time.Now()

	// Stored as active but 100 days absent: the sweep must move it to ra.
	seedSweepMember(t, gdb, "bul-001", "active", now.AddDate(0, 0, -100))
	// 70 days absent: preRa.
	seedSweepMember(t, gdb, "bul-002", "active", now.AddDate(0, 0, -70))
	// Fresh member: untouched.
	seedSweepMember(t, gdb, "bul-003", "active", now.AddDate(0, 0, -7))

	job := NewStatusSweepJob(
		repositories.NewMemberRepositoryGORM(gdb),
		repositories.NewMemberRepository(sdb),
		nil,
	)

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if result.Scanned != 3 {
		t.Errorf("Expected 3 members scanned, got %d", result.Scanned)
	}
	if result.Transitions != 2 {
		t.Errorf("Expected 2 transitions, got %d", result.Transitions)
	}
	if result.Errors != 0 {
		t.Errorf("Expected no errors, got %d", result.Errors)
	}

	expected := map[string]string{
		"bul-001": "ra",
		"bul-002": "preRa",
		"bul-003": "active",
	}
	for id, want := range expected {
		var stored gormModels.Member
		if err := gdb.First(&stored, "id = ?", id).Error; err != nil {
			t.Fatalf("Failed to reload %s: %v", id, err)
		}
		if stored.Status != want {
			t.Errorf("Expected %s status %s after sweep, got %s", id, want, stored.Status)
		}
	}

	if job.LastRun() == nil {
		t.Error("Expected LastRun to report the completed sweep")
	}
}

func TestStatusSweep_SecondRunIsIdempotent(t *testing.T) {
	gdb, sdb := setupSweepTestDB(t)
	now := time.Now()

	seedSweepMember(t, gdb, "bul-001", "active", now.AddDate(0, 0, -100))

	job := NewStatusSweepJob(
		repositories.NewMemberRepositoryGORM(gdb),
		repositories.NewMemberRepository(sdb),
		nil,
	)

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("First sweep failed: %v", err)
	}

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}
	if result.Transitions != 0 {
		t.Errorf("Expected no transitions on second sweep, got %d", result.Transitions)
	}
}
