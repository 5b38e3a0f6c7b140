package entities

import "time"

// BranchStatus mirrors the Postgres ENUM 'branch_status'
type BranchStatus string

const (
	BranchActive     BranchStatus = "active"
	BranchInactive   BranchStatus = "inactive"
	BranchDeveloping BranchStatus = "developing"
)

type Branch struct {
	ID                  string       `db:"id"`
	Name                string       `db:"name"`
	Location            string       `db:"location"`
	Country             string       `db:"country"`
	DateOfEstablishment time.Time    `db:"date_of_establishment"`
	Phone               *string      `db:"phone"`
	Email               *string      `db:"email"`
	Address             string       `db:"address"`
	Status              BranchStatus `db:"status"`
	// Member-id prefix, e.g. "bul" for bulawayo-hq
	IDPrefix string `db:"id_prefix"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
