package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ekklesia/registry/internal/models/entities"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func closedEpisode(startDaysAgo, endDaysAgo int) entities.RAEpisode {
	end := daysAgo(endDaysAgo)
	reason := "re-admitted after counselling"
	return entities.RAEpisode{StartDate: daysAgo(startDaysAgo), EndDate: &end, RemovalReason: &reason}
}

func TestComputeStatus_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		daysAbsent int
		want       entities.MemberStatus
	}{
		{0, entities.StatusActive},
		{59, entities.StatusActive},
		{60, entities.StatusPreRA},
		{89, entities.StatusPreRA},
		{90, entities.StatusRA},
		{365, entities.StatusRA},
	}

	for _, tc := range tests {
		standing := ComputeStatus(testNow, daysAgo(tc.daysAbsent), nil, entities.StatusActive)
		assert.Equal(t, tc.want, standing.Status, "daysAbsent=%d", tc.daysAbsent)
		assert.Equal(t, 0, standing.Count)
		assert.False(t, standing.Lock)
	}
}

func TestComputeStatus_DeceasedIsAbsorbing(t *testing.T) {
	history := entities.RAHistory{
		closedEpisode(800, 700),
		closedEpisode(600, 500),
		closedEpisode(400, 300),
	}

	// Neither a long absence nor a locked history moves a deceased member.
	standing := ComputeStatus(testNow, daysAgo(500), history, entities.StatusDeceased)
	assert.Equal(t, entities.StatusDeceased, standing.Status)
	assert.Equal(t, 3, standing.Count)

	standing = ComputeStatus(testNow, daysAgo(0), nil, entities.StatusDeceased)
	assert.Equal(t, entities.StatusDeceased, standing.Status)
}

func TestComputeStatus_LockIsAbsorbing(t *testing.T) {
	history := entities.RAHistory{
		closedEpisode(900, 800),
		closedEpisode(700, 600),
		closedEpisode(500, 400),
	}

	// Attended yesterday: the lock still wins over attendance state.
	standing := ComputeStatus(testNow, daysAgo(1), history, entities.StatusActive)
	assert.Equal(t, entities.StatusInactive, standing.Status)
	assert.True(t, standing.Lock)
	assert.Equal(t, 3, standing.Count)
}

func TestComputeStatus_OpenEpisodeDoesNotCount(t *testing.T) {
	history := entities.RAHistory{
		closedEpisode(900, 800),
		closedEpisode(700, 600),
		{StartDate: daysAgo(95)}, // open
	}

	standing := ComputeStatus(testNow, daysAgo(95), history, entities.StatusRA)
	assert.Equal(t, entities.StatusRA, standing.Status)
	assert.Equal(t, 2, standing.Count, "open episode must not inflate the completed count")
	assert.True(t, standing.InOpenEpisode)
	assert.False(t, standing.Lock)
}

func TestComputeStatus_RALifecycleEndToEnd(t *testing.T) {
	// Fresh member, 95 days absent: enters RA with no history.
	standing := ComputeStatus(testNow, daysAgo(95), entities.RAHistory{}, entities.StatusActive)
	assert.Equal(t, entities.StatusRA, standing.Status)
	assert.Equal(t, 0, standing.Count)
	assert.False(t, standing.Lock)

	// Two completed cycles later, still only two strikes.
	history := entities.RAHistory{
		closedEpisode(700, 600),
		closedEpisode(400, 300),
	}
	standing = ComputeStatus(testNow, daysAgo(95), history, entities.StatusActive)
	assert.Equal(t, entities.StatusRA, standing.Status)
	assert.Equal(t, 2, standing.Count)

	// Third cycle closes: permanently inactive, even after attending today.
	history = append(history, closedEpisode(95, 5))
	standing = ComputeStatus(testNow, daysAgo(0), history, entities.StatusActive)
	assert.Equal(t, entities.StatusInactive, standing.Status)
	assert.True(t, standing.Lock)
	assert.Equal(t, 3, standing.Count)
}

func TestDaysAbsent_FutureDateClampsToZero(t *testing.T) {
	assert.Equal(t, 0, DaysAbsent(testNow, testNow.AddDate(0, 0, 10)))

	standing := ComputeStatus(testNow, testNow.AddDate(0, 0, 10), nil, entities.StatusActive)
	assert.Equal(t, entities.StatusActive, standing.Status)
}

func TestEligibleForCard(t *testing.T) {
	exactlyThreeMonths := testNow.AddDate(0, -3, 0)
	assert.True(t, EligibleForCard(testNow, exactlyThreeMonths))
	assert.True(t, EligibleForCard(testNow, testNow.AddDate(0, -6, 0)))

	oneDayShort := exactlyThreeMonths.AddDate(0, 0, 1)
	assert.False(t, EligibleForCard(testNow, oneDayShort))
	assert.False(t, EligibleForCard(testNow, testNow))
}
