package entities

// ServiceSlot is one scheduled service: identified by (day, time), with a
// theme and the duty ids that must be filled for the service to run.
type ServiceSlot struct {
	Day            Weekday     `json:"day"`
	Time           ServiceTime `json:"time"`
	Type           ServiceType `json:"type"`
	Theme          string      `json:"theme"`
	DefaultTime    string      `json:"defaultTime"` // "18:00" wall-clock start
	RequiredDuties []string    `json:"requiredDuties"`
}

// ServiceID is the composite service-instance key used on assignments.
func ServiceID(date string, t ServiceTime) string {
	return date + "_" + string(t)
}
