package rules

import (
	"ekklesia/registry/internal/logging"
	"ekklesia/registry/internal/models/entities"
)

// AssignDuty validates one member against one duty and builds the
// assignment record. Returns nil when the member fails the day rules.
func AssignDuty(cat *Catalog, member Candidate, dutyID, serviceDate string, serviceTime entities.ServiceTime, day entities.Weekday) *entities.AssignedDuty {
	if !cat.CanPerform(member.Position, dutyID, day, member.Purity, member.IsYouth) {
		logging.Debug("member cannot perform duty",
			"member_id", member.ID,
			"duty_id", dutyID,
			"day", day.String(),
		)
		return nil
	}

	return &entities.AssignedDuty{
		DutyID:    dutyID,
		MemberID:  member.ID,
		ServiceID: entities.ServiceID(serviceDate, serviceTime),
		Date:      serviceDate,
		Time:      serviceTime,
		Status:    entities.AssignmentAssigned,
	}
}

// AutoAssign fills the required duties of one service instance from the
// available roster. Single-pass greedy in duty-list order: each duty takes
// the first eligible, not-yet-booked candidate, with eligible females
// preferred for the two facilitator duties. No member is booked twice within
// the service. An unfillable duty is logged and skipped, never fatal, so the
// result may be a strict subset of the required duties.
//
// Greedy means a duty earlier in the list can take the only member eligible
// for a later one. That trade-off is deliberate for rosters of this size.
func AutoAssign(cat *Catalog, available []Candidate, serviceDate string, serviceTime entities.ServiceTime, day entities.Weekday, serviceType entities.ServiceType) []entities.AssignedDuty {
	assignments := make([]entities.AssignedDuty, 0)
	booked := make(map[string]bool)

	for _, duty := range cat.DutiesForServiceType(serviceType) {
		eligible := cat.EligibleMembers(duty.ID, available, day)

		var selected *Candidate
		for i := range eligible {
			if !booked[eligible[i].ID] {
				selected = &eligible[i]
				break
			}
		}

		if selected == nil {
			logging.Warn("no eligible member for duty",
				"duty_id", duty.ID,
				"service_date", serviceDate,
				"service_time", serviceTime.String(),
				"day", day.String(),
			)
			continue
		}

		// EligibleMembers already guarantees this; re-check before booking.
		assignment := AssignDuty(cat, *selected, duty.ID, serviceDate, serviceTime, day)
		if assignment == nil {
			continue
		}

		assignments = append(assignments, *assignment)
		booked[selected.ID] = true
	}

	return assignments
}
