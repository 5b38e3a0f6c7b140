package entities

import "time"

// GuestAttendance is one check-in recorded at a branch other than the
// member's home branch. The ledger is append-only.
type GuestAttendance struct {
	ID          string      `db:"id"`
	MemberID    string      `db:"member_id"`
	BranchID    string      `db:"branch_id"`
	ServiceDate time.Time   `db:"service_date"`
	ServiceTime ServiceTime `db:"service_time"`
	RecordedAt  time.Time   `db:"recorded_at"`
}
