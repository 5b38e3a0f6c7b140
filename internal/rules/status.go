// Package rules is the membership rules engine: the RA lifecycle status
// calculator, the duty eligibility evaluator, and the greedy duty planner.
// Everything here is a pure function over in-memory data; callers supply
// the reference time and the duty catalogue explicitly.
package rules

import (
	"time"

	"ekklesia/registry/internal/models/entities"
)

const (
	// Days absent before the pre-RA warning window opens.
	PreRAThresholdDays = 60
	// Days absent before the member enters RA.
	RAThresholdDays = 90
	// Completed RA episodes that trigger the permanent lock.
	RALockEpisodes = 3
	// Calendar months of membership before a card number is issued.
	CardEligibilityMonths = 3
)

// RAStanding is the derived lifecycle state written back to a member.
type RAStanding struct {
	Status entities.MemberStatus
	// Count of completed RA episodes only. The open episode, if any, is
	// reported via InOpenEpisode instead of being folded into the count.
	Count int
	// Lock is permanent once three episodes have completed.
	Lock          bool
	InOpenEpisode bool
}

// DaysAbsent returns whole days between lastAttendance and now, clamped at
// zero so a future check-in date reads as "attended today".
func DaysAbsent(now, lastAttendance time.Time) int {
	days := int(now.Sub(lastAttendance).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ComputeStatus derives a member's lifecycle status from the last attendance
// date and RA history. Precedence: deceased is absorbing, then the
// three-strikes lock, then the 90-day RA threshold, then the 60-day pre-RA
// warning window. The lock must win over attendance state: it is a permanent
// penalty, while days absent is transient.
func ComputeStatus(now, lastAttendance time.Time, history entities.RAHistory, current entities.MemberStatus) RAStanding {
	completed := history.CompletedCount()
	_, open := history.Open()

	if current == entities.StatusDeceased {
		return RAStanding{
			Status:        entities.StatusDeceased,
			Count:         completed,
			Lock:          completed >= RALockEpisodes,
			InOpenEpisode: open,
		}
	}

	standing := RAStanding{Count: completed, InOpenEpisode: open}
	daysAbsent := DaysAbsent(now, lastAttendance)

	switch {
	case completed >= RALockEpisodes:
		standing.Status = entities.StatusInactive
		standing.Lock = true
	case daysAbsent >= RAThresholdDays:
		standing.Status = entities.StatusRA
	case daysAbsent >= PreRAThresholdDays:
		standing.Status = entities.StatusPreRA
	default:
		standing.Status = entities.StatusActive
	}

	return standing
}

// EligibleForCard reports whether a member has been in the congregation for
// at least three calendar months. Exactly three months to the day counts.
func EligibleForCard(now, dateOfEntry time.Time) bool {
	return !now.Before(dateOfEntry.AddDate(0, CardEligibilityMonths, 0))
}
