package constants

// Queries use ? placeholders and are rebound per driver by the repositories.
const (
	GetStatusByApiKey = `
	SELECT * FROM api_keys WHERE id = ?
	`

	GetMemberById = `
	SELECT * FROM members WHERE id = ?
	`

	GetMembersByBranch = `
	SELECT * FROM members WHERE main_branch = ? ORDER BY id
	`

	InsertGuestAttendance = `
	INSERT INTO guest_attendance (id, member_id, branch_id, service_date, service_time, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	GetGuestAttendanceByMember = `
	SELECT * FROM guest_attendance WHERE member_id = ? ORDER BY recorded_at DESC
	`

	GetGuestAttendanceByBranch = `
	SELECT * FROM guest_attendance WHERE branch_id = ? ORDER BY recorded_at DESC
	`

	UpdateLastAttendance = `
	UPDATE members SET last_attendance = ?, updated_at = ? WHERE id = ?
	`

	UpdateMemberStanding = `
	UPDATE members
	SET status = ?, ra_count = ?, ra_lock = ?, last_attendance = ?, updated_at = ?
	WHERE id = ?
	`
)
