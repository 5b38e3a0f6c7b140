package rules

import (
	"time"

	"ekklesia/registry/internal/models/entities"
)

// Duty ids referenced by the eligibility overrides and the planner.
const (
	DutyChair              = "chair"
	DutyReader             = "reader"
	DutyWordReader         = "word_reader"
	DutyMessenger          = "messenger"
	DutyEvangelist         = "evangelist"
	DutyAnnouncements      = "announcements"
	DutyInsideFacilitator  = "inside_facilitator"
	DutyOutsideFacilitator = "outside_facilitator"
)

// shortServiceDuties is the reduced duty set required by short services.
var shortServiceDuties = []string{
	DutyChair,
	DutyMessenger,
	DutyAnnouncements,
	DutyInsideFacilitator,
	DutyOutsideFacilitator,
}

// allPositions except steward: stewards keep order and are never rostered.
var generalPositions = []entities.Position{
	entities.PositionFacilitator,
	entities.PositionEvangelist,
	entities.PositionMessenger,
	entities.PositionMember,
	entities.PositionSongster,
	entities.PositionConciliator,
	entities.PositionClerk,
}

// Catalog is the static duty reference table, loaded once at process start
// and read-only afterwards.
type Catalog struct {
	duties []entities.Duty
	byID   map[string]entities.Duty
}

// NewCatalog builds a catalogue from an explicit duty list.
func NewCatalog(duties []entities.Duty) *Catalog {
	byID := make(map[string]entities.Duty, len(duties))
	for _, d := range duties {
		byID[d.ID] = d
	}
	return &Catalog{duties: duties, byID: byID}
}

// DefaultCatalog returns the congregation's standard duty table.
func DefaultCatalog() *Catalog {
	return NewCatalog([]entities.Duty{
		{
			ID:               DutyChair,
			EnglishName:      "Chair",
			ZuluName:         "Umgcini sihlalo",
			Description:      "Leads the service and ensures proper flow of proceedings",
			AllowedPositions: generalPositions,
			SpecialRequirements: &entities.SpecialRequirements{
				Day:          entities.Wednesday,
				Requirements: []string{"Youth member", "purity: virgin"},
			},
			TrainingRequired: true,
		},
		{
			ID:               DutyReader,
			EnglishName:      "Reader",
			ZuluName:         "Umfundi wenhloko zendima",
			Description:      "Reads the main scriptures and teachings for the service",
			AllowedPositions: generalPositions,
			TrainingRequired: false,
		},
		{
			ID:               DutyWordReader,
			EnglishName:      "Word Reader",
			ZuluName:         "Obala imfundiso",
			Description:      "Explains and elaborates on the teachings and scriptures",
			AllowedPositions: generalPositions,
			TrainingRequired: true,
		},
		{
			ID:               DutyMessenger,
			EnglishName:      "Messenger",
			ZuluName:         "Izithunywa",
			Description:      "Delivers messages and assists with service coordination",
			AllowedPositions: []entities.Position{entities.PositionMessenger},
			TrainingRequired: false,
		},
		{
			ID:               DutyEvangelist,
			EnglishName:      "Evangelist",
			ZuluName:         "Umvangeli",
			Description:      "Leads evangelism and spiritual guidance during service",
			AllowedPositions: []entities.Position{entities.PositionEvangelist},
			TrainingRequired: true,
		},
		{
			ID:               DutyAnnouncements,
			EnglishName:      "Announcements",
			ZuluName:         "Izaziso",
			Description:      "Makes important announcements to the congregation",
			AllowedPositions: []entities.Position{entities.PositionEvangelist},
			TrainingRequired: false,
		},
		{
			ID:               DutyInsideFacilitator,
			EnglishName:      "Inside Facilitator",
			ZuluName:         "Umkhokheli phakathi",
			Description:      "Manages proceedings inside the service venue",
			AllowedPositions: []entities.Position{entities.PositionFacilitator},
			SpecialRequirements: &entities.SpecialRequirements{
				Requirements: []string{"Female facilitators have priority"},
			},
			TrainingRequired: true,
		},
		{
			ID:               DutyOutsideFacilitator,
			EnglishName:      "Outside Facilitator",
			ZuluName:         "Umkhokheli phandle",
			Description:      "Manages proceedings outside the service venue",
			AllowedPositions: []entities.Position{entities.PositionFacilitator},
			TrainingRequired: true,
		},
	})
}

// Duties returns the full catalogue in definition order.
func (c *Catalog) Duties() []entities.Duty { return c.duties }

// DutyByID looks up a duty; ok is false for unknown ids.
func (c *Catalog) DutyByID(id string) (entities.Duty, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// DutiesForServiceType returns the required duties for a service type, in
// catalogue order. Short services require the reduced subset.
func (c *Catalog) DutiesForServiceType(t entities.ServiceType) []entities.Duty {
	if t != entities.ServiceShort {
		return c.duties
	}
	out := make([]entities.Duty, 0, len(shortServiceDuties))
	for _, d := range c.duties {
		for _, id := range shortServiceDuties {
			if d.ID == id {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Candidate is the slice of a member the evaluator needs. Status plays no
// part in eligibility; the caller decides who is available.
type Candidate struct {
	ID       string
	Position entities.Position
	IsYouth  bool
	Purity   entities.PurityStatus
	IsFemale bool
}

// CandidateFromMember projects a member onto the evaluator's view, with
// youth computed at the given date.
func CandidateFromMember(m *entities.Member, at time.Time) Candidate {
	return Candidate{
		ID:       m.ID,
		Position: m.Position,
		IsYouth:  m.IsYouth(at),
		Purity:   m.Purity,
		IsFemale: m.IsFemale(),
	}
}

// CanPerform decides whether a member in the given position may take a duty
// on a given day. Unknown duty ids are never eligible. Day overrides are
// stricter than the base position check, not looser: an allowed position
// still fails the Wednesday chair rule without youth + virgin purity.
func (c *Catalog) CanPerform(position entities.Position, dutyID string, day entities.Weekday, purity entities.PurityStatus, isYouth bool) bool {
	duty, ok := c.byID[dutyID]
	if !ok {
		return false
	}

	if !duty.AllowsPosition(position) {
		return false
	}

	if day == entities.Wednesday && dutyID == DutyChair {
		return isYouth && purity == entities.PurityVirgin
	}

	// Thursday chair excludes youths.
	if day == entities.Thursday && dutyID == DutyChair {
		return !isYouth
	}

	return true
}

// EligibleMembers filters candidates through CanPerform for one duty. For
// the facilitator duties, eligible female members are moved to the front of
// the result; this is a soft priority only, male facilitators stay eligible.
func (c *Catalog) EligibleMembers(dutyID string, members []Candidate, day entities.Weekday) []Candidate {
	if _, ok := c.byID[dutyID]; !ok {
		return []Candidate{}
	}

	eligible := make([]Candidate, 0, len(members))
	for _, m := range members {
		if c.CanPerform(m.Position, dutyID, day, m.Purity, m.IsYouth) {
			eligible = append(eligible, m)
		}
	}

	if dutyID == DutyInsideFacilitator || dutyID == DutyOutsideFacilitator {
		ordered := make([]Candidate, 0, len(eligible))
		for _, m := range eligible {
			if m.IsFemale {
				ordered = append(ordered, m)
			}
		}
		for _, m := range eligible {
			if !m.IsFemale {
				ordered = append(ordered, m)
			}
		}
		return ordered
	}

	return eligible
}
