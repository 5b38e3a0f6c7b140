package entities

import (
	"testing"
	"time"
)

func TestRAHistory_SingleOpenEpisode(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	h, err := RAHistory{}.AppendEpisode(start)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := h.AppendEpisode(start.AddDate(0, 1, 0)); err != ErrOpenEpisodeExists {
		t.Errorf("expected ErrOpenEpisodeExists, got %v", err)
	}

	if open, ok := h.Open(); !ok || !open.StartDate.Equal(start) {
		t.Errorf("expected open episode starting %v", start)
	}
}

func TestRAHistory_CloseEpisode(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	h, _ := RAHistory{}.AppendEpisode(start)

	closed, err := h.CloseEpisode(start.AddDate(0, 3, 0), "re-admitted")
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	if closed.CompletedCount() != 1 {
		t.Errorf("expected 1 completed episode, got %d", closed.CompletedCount())
	}
	if _, ok := closed.Open(); ok {
		t.Error("expected no open episode after close")
	}

	// Original slice must stay untouched; history is append-only.
	if h.CompletedCount() != 0 {
		t.Error("CloseEpisode mutated the original history")
	}

	if _, err := closed.CloseEpisode(start.AddDate(0, 4, 0), "again"); err != ErrNoOpenEpisode {
		t.Errorf("expected ErrNoOpenEpisode, got %v", err)
	}
}

func TestRAHistory_CloseBeforeStartRejected(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	h, _ := RAHistory{}.AppendEpisode(start)

	if _, err := h.CloseEpisode(start.AddDate(0, 0, -1), "bad"); err != ErrEpisodeOrder {
		t.Errorf("expected ErrEpisodeOrder, got %v", err)
	}

	// Same-day removal is a legal close.
	closed, err := h.CloseEpisode(start, "re-admitted same day")
	if err != nil {
		t.Fatalf("same-day close: %v", err)
	}
	if closed.CompletedCount() != 1 {
		t.Errorf("expected 1 completed episode, got %d", closed.CompletedCount())
	}
	if err := closed.Validate(); err != nil {
		t.Errorf("expected same-day episode to validate, got %v", err)
	}
}

func TestRAHistory_ValidateRejectsBrokenLedgers(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	backwards := RAHistory{{StartDate: start, EndDate: &before}}
	if err := backwards.Validate(); err != ErrEpisodeOrder {
		t.Errorf("expected ErrEpisodeOrder, got %v", err)
	}

	doubleOpen := RAHistory{{StartDate: start}, {StartDate: start.AddDate(0, 1, 0)}}
	if err := doubleOpen.Validate(); err != ErrOpenEpisodeExists {
		t.Errorf("expected ErrOpenEpisodeExists, got %v", err)
	}

	missingStart := RAHistory{{}}
	if err := missingStart.Validate(); err == nil {
		t.Error("expected an error for an episode with no start date")
	}
}

func TestMember_YouthBounds(t *testing.T) {
	at := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		age   int
		youth bool
	}{
		{12, false},
		{13, true},
		{35, true},
		{36, false},
	}

	for _, tc := range cases {
		m := Member{DateOfBirth: at.AddDate(-tc.age, 0, 0)}
		if got := m.IsYouth(at); got != tc.youth {
			t.Errorf("age %d: IsYouth = %v, want %v", tc.age, got, tc.youth)
		}
	}
}
