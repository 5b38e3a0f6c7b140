package repositories

import (
	"context"
	"time"

	"ekklesia/registry/internal/constants"
	"ekklesia/registry/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GuestAttendanceRepository writes and reads the append-only ledger of
// check-ins at non-home branches.
type GuestAttendanceRepository struct {
	db *sqlx.DB
}

func NewGuestAttendanceRepository(db *sqlx.DB) *GuestAttendanceRepository {
	return &GuestAttendanceRepository{db}
}

// Insert appends one guest check-in and returns the stored record.
func (r *GuestAttendanceRepository) Insert(ctx context.Context, memberID, branchID string, serviceDate time.Time, serviceTime entities.ServiceTime) (*entities.GuestAttendance, error) {
	record := entities.GuestAttendance{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		BranchID:    branchID,
		ServiceDate: serviceDate,
		ServiceTime: serviceTime,
		RecordedAt:  time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(constants.InsertGuestAttendance),
		record.ID, record.MemberID, record.BranchID, record.ServiceDate, string(record.ServiceTime), record.RecordedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ByMember returns the member's guest check-ins, most recent first.
func (r *GuestAttendanceRepository) ByMember(ctx context.Context, memberID string) ([]entities.GuestAttendance, error) {
	return r.query(ctx, constants.GetGuestAttendanceByMember, memberID)
}

// ByBranch returns a branch's guest check-ins, most recent first.
func (r *GuestAttendanceRepository) ByBranch(ctx context.Context, branchID string) ([]entities.GuestAttendance, error) {
	return r.query(ctx, constants.GetGuestAttendanceByBranch, branchID)
}

func (r *GuestAttendanceRepository) query(ctx context.Context, q, arg string) ([]entities.GuestAttendance, error) {
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(q), arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.GuestAttendance
	for rows.Next() {
		var rec entities.GuestAttendance
		if err := rows.StructScan(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
