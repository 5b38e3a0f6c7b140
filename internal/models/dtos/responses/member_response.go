package responses

import "time"

type NextOfKin struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type DeceasedInfo struct {
	DateOfDeath  string `json:"date_of_death"`
	CauseOfDeath string `json:"cause_of_death"`
	BurialPlace  string `json:"burial_place"`
}

type RAEpisode struct {
	StartDate     string  `json:"ra_start_date"`
	EndDate       *string `json:"ra_end_date,omitempty"`
	RemovalReason *string `json:"ra_removal_reason,omitempty"`
}

// MemberResponse is the full member view for the admin screens.
type MemberResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Surname        string        `json:"surname"`
	Gender         string        `json:"gender"`
	DateOfBirth    string        `json:"date_of_birth"`
	Phone          string        `json:"phone"`
	Email          *string       `json:"email,omitempty"`
	DateOfEntry    string        `json:"date_of_entry"`
	ReasonOfEntry  string        `json:"reason_of_entry"`
	Address        string        `json:"address"`
	NextOfKin      NextOfKin     `json:"next_of_kin"`
	MainBranch     string        `json:"main_branch"`
	Position       string        `json:"position"`
	Purity         string        `json:"purity"`
	CardNumber     *int          `json:"card_number,omitempty"`
	ReceiptNumber  *string       `json:"receipt_number,omitempty"`
	Status         string        `json:"status"`
	LastAttendance string        `json:"last_attendance"`
	RACount        int           `json:"ra_count"`
	RALock         bool          `json:"ra_lock"`
	IsYouth        bool          `json:"is_youth"`
	IsFemale       bool          `json:"is_female"`
	RAHistory      []RAEpisode   `json:"ra_history"`
	DeceasedInfo   *DeceasedInfo `json:"deceased_info,omitempty"`
}

type CardEligibilityResponse struct {
	MemberID   string `json:"member_id"`
	Eligible   bool   `json:"eligible"`
	CardNumber *int   `json:"card_number,omitempty"`
}

type CheckInResponse struct {
	MemberID      string `json:"member_id"`
	BranchID      string `json:"branch_id"`
	GuestCheckIn  bool   `json:"guest_check_in"`
	NewStatus     string `json:"new_status"`
	RACount       int    `json:"ra_count"`
	RALock        bool   `json:"ra_lock"`
}

type GuestAttendanceRecord struct {
	MemberID    string    `json:"member_id"`
	BranchID    string    `json:"branch_id"`
	ServiceDate string    `json:"service_date"`
	ServiceTime string    `json:"service_time"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type AssignmentResponse struct {
	DutyID    string `json:"duty_id"`
	MemberID  string `json:"member_id"`
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

// AutoAssignResponse reports the plan plus the duties left unfilled, which
// is the planner's only failure mode and is not an error.
type AutoAssignResponse struct {
	ServiceID      string               `json:"service_id"`
	Assignments    []AssignmentResponse `json:"assignments"`
	UnfilledDuties []string             `json:"unfilled_duties"`
}

type MemberStatsResponse struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	PreRA         int `json:"pre_ra"`
	RA            int `json:"ra"`
	Inactive      int `json:"inactive"`
	Deceased      int `json:"deceased"`
	Youth         int `json:"youth"`
	Female        int `json:"female"`
	Male          int `json:"male"`
	WithRAHistory int `json:"with_ra_history"`
	WithCurrentRA int `json:"with_current_ra"`
	NewMembers    int `json:"new_members"`
}

type BranchStatsResponse struct {
	BranchID      string `json:"branch_id"`
	Total         int    `json:"total"`
	Active        int    `json:"active"`
	PreRA         int    `json:"pre_ra"`
	RA            int    `json:"ra"`
	WithCurrentRA int    `json:"with_current_ra"`
	NewMembers    int    `json:"new_members"`
}

type RAHistoryStatsResponse struct {
	TotalRARecords       int            `json:"total_ra_records"`
	CurrentRAs           int            `json:"current_ras"`
	PastRAs              int            `json:"past_ras"`
	MembersWithRAHistory int            `json:"members_with_ra_history"`
	RemovalReasons       map[string]int `json:"removal_reasons"`
}
