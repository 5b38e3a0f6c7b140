package entities

// SpecialRequirements is a day-scoped eligibility override on a duty.
type SpecialRequirements struct {
	Day          Weekday  `json:"day,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// Duty is a named service role with position-based eligibility. The duty
// catalogue is static reference data loaded once at start.
type Duty struct {
	ID                  string               `json:"id"`
	EnglishName         string               `json:"englishName"`
	ZuluName            string               `json:"zuluName"`
	Description         string               `json:"description"`
	AllowedPositions    []Position           `json:"allowedPositions"`
	SpecialRequirements *SpecialRequirements `json:"specialRequirements,omitempty"`
	TrainingRequired    bool                 `json:"trainingRequired"`
}

// AllowsPosition reports whether the position passes the duty's base check.
func (d Duty) AllowsPosition(p Position) bool {
	for _, allowed := range d.AllowedPositions {
		if allowed == p {
			return true
		}
	}
	return false
}
