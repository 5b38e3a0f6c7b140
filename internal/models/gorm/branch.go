package gorm

import "time"

// Branch is a congregation branch. Reference data, seeded at deploy time.
type Branch struct {
	ID                  string    `gorm:"column:id;primaryKey;type:varchar(30)"`
	Name                string    `gorm:"column:name;type:varchar(100);not null"`
	Location            string    `gorm:"column:location;type:varchar(100)"`
	Country             string    `gorm:"column:country;type:varchar(100)"`
	DateOfEstablishment time.Time `gorm:"column:date_of_establishment"`
	Phone               *string   `gorm:"column:phone;type:varchar(20)"`
	Email               *string   `gorm:"column:email;type:varchar(254)"`
	Address             string    `gorm:"column:address;type:varchar(200)"`
	Status              string    `gorm:"column:status;type:varchar(15);not null;default:active"`
	IDPrefix            string    `gorm:"column:id_prefix;type:varchar(5);not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Branch) TableName() string {
	return "branches"
}
