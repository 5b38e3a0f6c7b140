package entities

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Gender mirrors the Postgres ENUM 'gender'
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// MemberStatus mirrors the Postgres ENUM 'member_status'
type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusPreRA    MemberStatus = "preRa"
	StatusRA       MemberStatus = "ra"
	StatusInactive MemberStatus = "inactive"
	StatusDeceased MemberStatus = "deceased"
)

func (s MemberStatus) String() string { return string(s) }

func (s MemberStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusPreRA, StatusRA, StatusInactive, StatusDeceased:
		return true
	}
	return false
}

// Position mirrors the Postgres ENUM 'position'
type Position string

const (
	PositionFacilitator Position = "facilitator"
	PositionEvangelist  Position = "evangelist"
	PositionMessenger   Position = "messenger"
	PositionMember      Position = "member"
	PositionSongster    Position = "songster"
	PositionSteward     Position = "steward"
	PositionConciliator Position = "conciliator"
	PositionClerk       Position = "clerk"
)

// Positions lists every assignable position, in catalogue order.
var Positions = []Position{
	PositionFacilitator,
	PositionEvangelist,
	PositionMessenger,
	PositionMember,
	PositionSongster,
	PositionSteward,
	PositionConciliator,
	PositionClerk,
}

func (p Position) String() string { return string(p) }

func (p Position) IsValid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// PurityStatus mirrors the Postgres ENUM 'purity_status'
type PurityStatus string

const (
	PurityVirgin       PurityStatus = "virgin"
	PurityNone         PurityStatus = "none"
	PurityInapplicable PurityStatus = "inapplicable"
)

func (p PurityStatus) String() string { return string(p) }

func (p PurityStatus) IsValid() bool {
	return p == PurityVirgin || p == PurityNone || p == PurityInapplicable
}

// Weekday is the lowercase service-day name used throughout the schedule
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

func (d Weekday) String() string { return string(d) }

func (d Weekday) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ParseWeekday normalizes user input ("Wednesday", "WEDNESDAY") to a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown weekday: %q", s)
	}
	return d, nil
}

// ServiceTime is the slot within a service day
type ServiceTime string

const (
	TimeMorning   ServiceTime = "morning"
	TimeAfternoon ServiceTime = "afternoon"
	TimeEvening   ServiceTime = "evening"
)

func (t ServiceTime) String() string { return string(t) }

func (t ServiceTime) IsValid() bool {
	return t == TimeMorning || t == TimeAfternoon || t == TimeEvening
}

// ServiceType determines which duties a service instance requires
type ServiceType string

const (
	ServiceFull  ServiceType = "full"
	ServiceShort ServiceType = "short"
)

func (t ServiceType) IsValid() bool { return t == ServiceFull || t == ServiceShort }

// AssignmentStatus tracks a duty assignment through a service
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentAbsent    AssignmentStatus = "absent"
)

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

func scanEnum(dst *string, src interface{}, name string) error {
	if src == nil {
		*dst = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*dst = v
	case []byte:
		*dst = string(v)
	default:
		return fmt.Errorf("%s: cannot scan type %T", name, src)
	}
	return nil
}

func (g *Gender) Scan(src interface{}) error { return scanEnum((*string)(g), src, "Gender") }
func (g Gender) Value() (driver.Value, error) { return string(g), nil }

func (s *MemberStatus) Scan(src interface{}) error { return scanEnum((*string)(s), src, "MemberStatus") }
func (s MemberStatus) Value() (driver.Value, error) { return string(s), nil }

func (p *Position) Scan(src interface{}) error  { return scanEnum((*string)(p), src, "Position") }
func (p Position) Value() (driver.Value, error) { return string(p), nil }

func (p *PurityStatus) Scan(src interface{}) error { return scanEnum((*string)(p), src, "PurityStatus") }
func (p PurityStatus) Value() (driver.Value, error) { return string(p), nil }
