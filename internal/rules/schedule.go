package rules

import (
	"strconv"
	"strings"
	"time"

	"ekklesia/registry/internal/models/entities"
)

// Schedule is the fixed weekly service timetable, static reference data.
type Schedule struct {
	slots []entities.ServiceSlot
}

// DefaultSchedule returns the congregation's weekly timetable.
func DefaultSchedule() *Schedule {
	full := entities.ServiceFull
	short := entities.ServiceShort

	fullDuties := []string{
		DutyChair, DutyReader, DutyWordReader, DutyMessenger,
		DutyEvangelist, DutyAnnouncements, DutyInsideFacilitator, DutyOutsideFacilitator,
	}

	return &Schedule{slots: []entities.ServiceSlot{
		{Day: entities.Monday, Time: entities.TimeEvening, Type: short, Theme: "Healing service", DefaultTime: "18:00", RequiredDuties: shortServiceDuties},
		{Day: entities.Tuesday, Time: entities.TimeEvening, Type: full, Theme: "Service of the duty bearers", DefaultTime: "18:00", RequiredDuties: fullDuties},
		{Day: entities.Wednesday, Time: entities.TimeEvening, Type: full, Theme: "Miriam service leading the Youth", DefaultTime: "18:00", RequiredDuties: fullDuties},
		{Day: entities.Thursday, Time: entities.TimeEvening, Type: full, Theme: "Janet service", DefaultTime: "18:00", RequiredDuties: fullDuties},
		{Day: entities.Friday, Time: entities.TimeEvening, Type: full, Theme: "God's Revelation", DefaultTime: "18:00", RequiredDuties: fullDuties},
		{Day: entities.Saturday, Time: entities.TimeMorning, Type: short, Theme: "Healing service", DefaultTime: "09:00", RequiredDuties: shortServiceDuties},
		{Day: entities.Saturday, Time: entities.TimeAfternoon, Type: full, Theme: "Robed", DefaultTime: "15:00", RequiredDuties: fullDuties},
		{Day: entities.Sunday, Time: entities.TimeMorning, Type: full, Theme: "Robed", DefaultTime: "09:00", RequiredDuties: fullDuties},
		{Day: entities.Sunday, Time: entities.TimeAfternoon, Type: full, Theme: "The Departure", DefaultTime: "15:00", RequiredDuties: fullDuties},
	}}
}

// Slots returns the whole week in schedule order.
func (s *Schedule) Slots() []entities.ServiceSlot { return s.slots }

// ServiceAt looks up the service for a (day, time) pair.
func (s *Schedule) ServiceAt(day entities.Weekday, t entities.ServiceTime) (entities.ServiceSlot, bool) {
	for _, slot := range s.slots {
		if slot.Day == day && slot.Time == t {
			return slot, true
		}
	}
	return entities.ServiceSlot{}, false
}

// UpcomingService pairs a slot with the concrete date it next falls on.
type UpcomingService struct {
	entities.ServiceSlot
	Date string `json:"date"`
}

// Upcoming lists every service in the next n days starting today, with
// concrete dates.
func (s *Schedule) Upcoming(now time.Time, days int) []UpcomingService {
	out := make([]UpcomingService, 0)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i)
		day := entities.Weekday(strings.ToLower(date.Weekday().String()))
		for _, slot := range s.slots {
			if slot.Day == day {
				out = append(out, UpcomingService{ServiceSlot: slot, Date: date.Format("2006-01-02")})
			}
		}
	}
	return out
}

// IsServiceActive reports whether a service is currently in its attendance
// window: 30 minutes before the scheduled start to 2 hours after.
func (s *Schedule) IsServiceActive(now time.Time, day entities.Weekday, t entities.ServiceTime) bool {
	slot, ok := s.ServiceAt(day, t)
	if !ok {
		return false
	}

	parts := strings.SplitN(slot.DefaultTime, ":", 2)
	if len(parts) != 2 {
		return false
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	windowOpen := start.Add(-30 * time.Minute)
	windowClose := start.Add(2 * time.Hour)

	return !now.Before(windowOpen) && !now.After(windowClose)
}

// CurrentService returns the active service for the wall clock, if any.
func (s *Schedule) CurrentService(now time.Time) (entities.ServiceSlot, bool) {
	day := entities.Weekday(strings.ToLower(now.Weekday().String()))

	slotTime := entities.TimeEvening
	if now.Hour() < 12 {
		slotTime = entities.TimeMorning
	} else if now.Hour() < 17 {
		slotTime = entities.TimeAfternoon
	}

	slot, ok := s.ServiceAt(day, slotTime)
	if !ok || !s.IsServiceActive(now, day, slotTime) {
		return entities.ServiceSlot{}, false
	}
	return slot, true
}
