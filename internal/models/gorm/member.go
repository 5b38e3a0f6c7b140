package gorm

import "time"

// Member is the persisted member record. RA episodes hang off it as a
// has-many so the full history preloads with the member.
type Member struct {
	ID      string `gorm:"column:id;primaryKey;type:varchar(20)"`
	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`
	Gender  string `gorm:"column:gender;type:varchar(10);not null"`

	DateOfBirth time.Time `gorm:"column:date_of_birth;not null"`
	Phone       string    `gorm:"column:phone;type:varchar(20);not null"`
	Email       *string   `gorm:"column:email;type:varchar(254)"`

	DateOfEntry   time.Time `gorm:"column:date_of_entry;not null"`
	ReasonOfEntry string    `gorm:"column:reason_of_entry;type:text"`
	Address       string    `gorm:"column:address;type:varchar(200)"`

	NextOfKinName         string `gorm:"column:nok_name;type:varchar(100)"`
	NextOfKinSurname      string `gorm:"column:nok_surname;type:varchar(100)"`
	NextOfKinRelationship string `gorm:"column:nok_relationship;type:varchar(20)"`
	NextOfKinPhone        string `gorm:"column:nok_phone;type:varchar(20)"`
	NextOfKinAddress      string `gorm:"column:nok_address;type:varchar(200)"`

	MainBranch string `gorm:"column:main_branch;type:varchar(30);not null;index"`
	Position   string `gorm:"column:position;type:varchar(20);not null;index"`
	Purity     string `gorm:"column:purity;type:varchar(15);not null"`

	CardNumber    *int    `gorm:"column:card_number"`
	ReceiptNumber *string `gorm:"column:receipt_number;type:varchar(20)"`

	Status         string    `gorm:"column:status;type:varchar(10);not null;index"`
	LastAttendance time.Time `gorm:"column:last_attendance;not null"`
	RACount        int       `gorm:"column:ra_count;not null;default:0"`
	RALock         bool      `gorm:"column:ra_lock;not null;default:false"`

	DateOfDeath  *time.Time `gorm:"column:date_of_death"`
	CauseOfDeath *string    `gorm:"column:cause_of_death;type:text"`
	BurialPlace  *string    `gorm:"column:burial_place;type:varchar(200)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	RAEpisodes []RAEpisode `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}
