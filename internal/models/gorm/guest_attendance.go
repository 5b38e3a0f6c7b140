package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestAttendance is one check-in at a non-home branch. Append-only.
type GuestAttendance struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	MemberID    string    `gorm:"column:member_id;type:varchar(20);not null;index"`
	BranchID    string    `gorm:"column:branch_id;type:varchar(30);not null;index"`
	ServiceDate time.Time `gorm:"column:service_date;not null"`
	ServiceTime string    `gorm:"column:service_time;type:varchar(10);not null"`
	RecordedAt  time.Time `gorm:"column:recorded_at;autoCreateTime"`
}

// BeforeCreate assigns an id so the row works on both drivers
func (g *GuestAttendance) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for GORM
func (GuestAttendance) TableName() string {
	return "guest_attendance"
}
