package repositories

import (
	"context"
	"time"

	"ekklesia/registry/internal/constants"
	"ekklesia/registry/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// MemberRow is the narrow member projection used for roster queries; the
// full record (RA history, next of kin) is loaded through the GORM repo.
type MemberRow struct {
	ID             string                `db:"id"`
	Name           string                `db:"name"`
	Surname        string                `db:"surname"`
	Gender         entities.Gender       `db:"gender"`
	DateOfBirth    time.Time             `db:"date_of_birth"`
	MainBranch     string                `db:"main_branch"`
	Position       entities.Position     `db:"position"`
	Purity         entities.PurityStatus `db:"purity"`
	Status         entities.MemberStatus `db:"status"`
	LastAttendance time.Time             `db:"last_attendance"`
}

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db}
}

// FindRosterByBranch returns the branch's members in id order, for the
// assignment planner and attendance screens.
func (r *MemberRepository) FindRosterByBranch(ctx context.Context, branchID string) ([]MemberRow, error) {
	query := r.db.Rebind(
		`SELECT id, name, surname, gender, date_of_birth, main_branch, position, purity, status, last_attendance
		 FROM members WHERE main_branch = ? ORDER BY id`)
	rows, err := r.db.QueryxContext(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []MemberRow
	for rows.Next() {
		var m MemberRow
		if err := rows.StructScan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateLastAttendance sets the member's last check-in date.
func (r *MemberRepository) UpdateLastAttendance(ctx context.Context, memberID string, date time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(constants.UpdateLastAttendance), date, time.Now().UTC(), memberID)
	return err
}

// UpdateStanding writes the derived lifecycle fields after a check-in or
// a status sweep touched the member.
func (r *MemberRepository) UpdateStanding(ctx context.Context, memberID string, status entities.MemberStatus, raCount int, raLock bool, lastAttendance time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(constants.UpdateMemberStanding),
		string(status), raCount, raLock, lastAttendance, time.Now().UTC(), memberID)
	return err
}
