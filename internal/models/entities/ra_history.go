package entities

import (
	"errors"
	"time"
)

// RAEpisode is one re-admission episode. An episode with no EndDate is the
// currently open one.
type RAEpisode struct {
	StartDate     time.Time  `db:"ra_start_date" json:"raStartDate"`
	EndDate       *time.Time `db:"ra_end_date" json:"raEndDate,omitempty"`
	RemovalReason *string    `db:"ra_removal_reason" json:"raRemovalReason,omitempty"`
}

// Completed reports whether the episode has been formally closed.
func (e RAEpisode) Completed() bool { return e.EndDate != nil }

// RAHistory is the append-only list of a member's RA episodes, insertion
// order chronological. At most one episode may be open at a time; the
// mutating methods enforce that rather than leaving it to convention.
type RAHistory []RAEpisode

var (
	ErrOpenEpisodeExists = errors.New("ra history: an open episode already exists")
	ErrNoOpenEpisode     = errors.New("ra history: no open episode to close")
	ErrEpisodeOrder      = errors.New("ra history: end date precedes start date")
)

// CompletedCount returns the number of closed episodes.
func (h RAHistory) CompletedCount() int {
	n := 0
	for _, e := range h {
		if e.Completed() {
			n++
		}
	}
	return n
}

// Open returns the currently open episode, if any.
func (h RAHistory) Open() (RAEpisode, bool) {
	for _, e := range h {
		if !e.Completed() {
			return e, true
		}
	}
	return RAEpisode{}, false
}

// AppendEpisode opens a new episode. Fails if one is already open.
func (h RAHistory) AppendEpisode(start time.Time) (RAHistory, error) {
	if _, ok := h.Open(); ok {
		return h, ErrOpenEpisodeExists
	}
	out := append(h, RAEpisode{StartDate: start})
	if err := out.Validate(); err != nil {
		return h, err
	}
	return out, nil
}

// CloseEpisode closes the open episode with an end date and removal reason.
// Same-day removal is allowed, so end may equal start.
func (h RAHistory) CloseEpisode(end time.Time, reason string) (RAHistory, error) {
	for i, e := range h {
		if e.Completed() {
			continue
		}
		out := make(RAHistory, len(h))
		copy(out, h)
		endCopy := end
		reasonCopy := reason
		out[i].EndDate = &endCopy
		out[i].RemovalReason = &reasonCopy
		if err := out.Validate(); err != nil {
			return h, err
		}
		return out, nil
	}
	return h, ErrNoOpenEpisode
}

// Validate checks episode ordering: closed episodes must not end before
// they start, and at most one episode may be open.
func (h RAHistory) Validate() error {
	open := 0
	for _, e := range h {
		if e.StartDate.IsZero() {
			return errors.New("ra history: episode missing start date")
		}
		if e.Completed() {
			if e.EndDate.Before(e.StartDate) {
				return ErrEpisodeOrder
			}
		} else {
			open++
		}
	}
	if open > 1 {
		return ErrOpenEpisodeExists
	}
	return nil
}
