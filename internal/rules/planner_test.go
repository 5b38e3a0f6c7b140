package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekklesia/registry/internal/models/entities"
)

// fullRoster covers every duty of a full service exactly once, in list order.
func fullRoster() []Candidate {
	return []Candidate{
		{ID: "bul-001", Position: entities.PositionClerk, Purity: entities.PurityNone},
		{ID: "bul-002", Position: entities.PositionSongster, Purity: entities.PurityNone},
		{ID: "bul-003", Position: entities.PositionMember, Purity: entities.PurityNone},
		{ID: "bul-004", Position: entities.PositionMessenger, Purity: entities.PurityInapplicable},
		{ID: "bul-005", Position: entities.PositionEvangelist, Purity: entities.PurityInapplicable},
		{ID: "bul-006", Position: entities.PositionEvangelist, Purity: entities.PurityInapplicable},
		{ID: "bul-007", Position: entities.PositionFacilitator, IsFemale: true, Purity: entities.PurityNone},
		{ID: "bul-008", Position: entities.PositionFacilitator, Purity: entities.PurityNone},
	}
}

func assignedMemberIDs(assignments []entities.AssignedDuty) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.MemberID]++
	}
	return counts
}

func TestAutoAssign_FillsFullService(t *testing.T) {
	assignments := AutoAssign(DefaultCatalog(), fullRoster(), "2026-08-14", entities.TimeEvening, entities.Friday, entities.ServiceFull)

	require.Len(t, assignments, 8)
	for _, a := range assignments {
		assert.Equal(t, entities.AssignmentAssigned, a.Status)
		assert.Equal(t, "2026-08-14_evening", a.ServiceID)
	}
}

func TestAutoAssign_NoDoubleBooking(t *testing.T) {
	assignments := AutoAssign(DefaultCatalog(), fullRoster(), "2026-08-14", entities.TimeEvening, entities.Friday, entities.ServiceFull)

	for memberID, count := range assignedMemberIDs(assignments) {
		assert.Equal(t, 1, count, "member %s booked more than once in one service", memberID)
	}
}

func TestAutoAssign_FemalePreferredForFacilitatorDuties(t *testing.T) {
	roster := []Candidate{
		{ID: "bul-001", Position: entities.PositionFacilitator, IsFemale: false},
		{ID: "bul-002", Position: entities.PositionFacilitator, IsFemale: true},
		{ID: "bul-003", Position: entities.PositionMessenger},
		{ID: "bul-004", Position: entities.PositionEvangelist},
		{ID: "bul-005", Position: entities.PositionMember},
	}

	assignments := AutoAssign(DefaultCatalog(), roster, "2026-08-10", entities.TimeEvening, entities.Monday, entities.ServiceShort)

	byDuty := make(map[string]string)
	for _, a := range assignments {
		byDuty[a.DutyID] = a.MemberID
	}

	// The female facilitator takes the first facilitator duty; the male one
	// remains eligible and takes the second.
	assert.Equal(t, "bul-002", byDuty[DutyInsideFacilitator])
	assert.Equal(t, "bul-001", byDuty[DutyOutsideFacilitator])
}

func TestAutoAssign_UnfilledDutyIsSkippedNotFatal(t *testing.T) {
	// No evangelist: announcements and evangelist duties cannot be filled.
	roster := []Candidate{
		{ID: "bul-001", Position: entities.PositionMember},
		{ID: "bul-002", Position: entities.PositionMessenger},
		{ID: "bul-003", Position: entities.PositionFacilitator, IsFemale: true},
		{ID: "bul-004", Position: entities.PositionFacilitator},
	}

	assignments := AutoAssign(DefaultCatalog(), roster, "2026-08-10", entities.TimeEvening, entities.Monday, entities.ServiceShort)

	byDuty := make(map[string]string)
	for _, a := range assignments {
		byDuty[a.DutyID] = a.MemberID
	}

	assert.Len(t, assignments, 4, "short service minus the unfillable announcements duty")
	assert.NotContains(t, byDuty, DutyAnnouncements)
	assert.Contains(t, byDuty, DutyChair)
	assert.Contains(t, byDuty, DutyMessenger)
}

func TestAutoAssign_GreedyCanStarveLaterDuty(t *testing.T) {
	// One evangelist only: announcements comes after the evangelist duty in
	// catalogue order, so the single evangelist is taken by the earlier duty.
	roster := []Candidate{
		{ID: "bul-001", Position: entities.PositionEvangelist},
		{ID: "bul-002", Position: entities.PositionMember},
	}

	assignments := AutoAssign(DefaultCatalog(), roster, "2026-08-11", entities.TimeEvening, entities.Tuesday, entities.ServiceFull)

	byDuty := make(map[string]string)
	for _, a := range assignments {
		byDuty[a.DutyID] = a.MemberID
	}

	assert.Equal(t, "bul-001", byDuty[DutyEvangelist])
	assert.NotContains(t, byDuty, DutyAnnouncements)
}

func TestAutoAssign_WednesdayChairRequiresYouthVirgin(t *testing.T) {
	roster := []Candidate{
		{ID: "bul-001", Position: entities.PositionMember, IsYouth: false, Purity: entities.PurityNone},
		{ID: "bul-002", Position: entities.PositionMember, IsYouth: true, Purity: entities.PurityVirgin},
	}

	assignments := AutoAssign(DefaultCatalog(), roster, "2026-08-12", entities.TimeEvening, entities.Wednesday, entities.ServiceFull)

	byDuty := make(map[string]string)
	for _, a := range assignments {
		byDuty[a.DutyID] = a.MemberID
	}
	assert.Equal(t, "bul-002", byDuty[DutyChair])
}

func TestAutoAssign_Deterministic(t *testing.T) {
	first := AutoAssign(DefaultCatalog(), fullRoster(), "2026-08-14", entities.TimeEvening, entities.Friday, entities.ServiceFull)
	second := AutoAssign(DefaultCatalog(), fullRoster(), "2026-08-14", entities.TimeEvening, entities.Friday, entities.ServiceFull)
	assert.Equal(t, first, second)
}

func TestAssignDuty_RejectsIneligibleMember(t *testing.T) {
	cat := DefaultCatalog()
	member := Candidate{ID: "bul-001", Position: entities.PositionMember, IsYouth: true, Purity: entities.PurityNone}

	assert.Nil(t, AssignDuty(cat, member, DutyChair, "2026-08-12", entities.TimeEvening, entities.Wednesday))

	assignment := AssignDuty(cat, member, DutyChair, "2026-08-14", entities.TimeEvening, entities.Friday)
	require.NotNil(t, assignment)
	assert.Equal(t, DutyChair, assignment.DutyID)
	assert.Equal(t, entities.AssignmentAssigned, assignment.Status)
}
