package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RAEpisode is one re-admission episode row. A row without an end date is
// the member's open episode; a partial unique index on (member_id) where
// ra_end_date is null keeps it single.
type RAEpisode struct {
	ID            string     `gorm:"column:id;primaryKey;type:uuid"`
	MemberID      string     `gorm:"column:member_id;type:varchar(20);not null;index"`
	StartDate     time.Time  `gorm:"column:ra_start_date;not null"`
	EndDate       *time.Time `gorm:"column:ra_end_date"`
	RemovalReason *string    `gorm:"column:ra_removal_reason;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an id so the row works on both drivers
func (e *RAEpisode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for GORM
func (RAEpisode) TableName() string {
	return "ra_episodes"
}
