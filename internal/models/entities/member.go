package entities

import "time"

// NextOfKin contact details recorded against a member
type NextOfKin struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// DeceasedInfo is only meaningful while status == deceased
type DeceasedInfo struct {
	DateOfDeath  time.Time `json:"dateOfDeath"`
	CauseOfDeath string    `json:"causeOfDeath"`
	BurialPlace  string    `json:"burialPlace"`
}

type Member struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Surname string `db:"surname"`
	Gender  Gender `db:"gender"`

	DateOfBirth time.Time `db:"date_of_birth"`
	Phone       string    `db:"phone"`
	Email       *string   `db:"email"`

	DateOfEntry   time.Time `db:"date_of_entry"`
	ReasonOfEntry string    `db:"reason_of_entry"`
	Address       string    `db:"address"`
	NextOfKin     NextOfKin `db:"-"`

	MainBranch string       `db:"main_branch"`
	Position   Position     `db:"position"`
	Purity     PurityStatus `db:"purity"`

	// Card numbers are issued after three months of membership; until then
	// the member carries a receipt number.
	CardNumber    *int    `db:"card_number"`
	ReceiptNumber *string `db:"receipt_number"`

	Status         MemberStatus `db:"status"`
	LastAttendance time.Time    `db:"last_attendance"`
	RACount        int          `db:"ra_count"`
	RALock         bool         `db:"ra_lock"`

	RAHistory    RAHistory     `db:"-"`
	DeceasedInfo *DeceasedInfo `db:"-"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	youthMinAge = 13
	youthMaxAge = 35
)

// Age in whole years at the given date.
func (m *Member) Age(at time.Time) int {
	age := at.Year() - m.DateOfBirth.Year()
	anniversary := m.DateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// IsYouth reports whether the member is aged 13-35 inclusive at the given date.
func (m *Member) IsYouth(at time.Time) bool {
	age := m.Age(at)
	return age >= youthMinAge && age <= youthMaxAge
}

func (m *Member) IsFemale() bool { return m.Gender == GenderFemale }

// FullName for search and display.
func (m *Member) FullName() string { return m.Name + " " + m.Surname }
