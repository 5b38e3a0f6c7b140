package entities

// AssignedDuty is one planner decision: a member booked for a duty in a
// specific service instance.
type AssignedDuty struct {
	DutyID    string           `json:"dutyId"`
	MemberID  string           `json:"memberId"`
	ServiceID string           `json:"serviceId"`
	Date      string           `json:"date"`
	Time      ServiceTime      `json:"time"`
	Status    AssignmentStatus `json:"status"`
}
