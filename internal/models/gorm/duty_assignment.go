package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DutyAssignment is one persisted planner decision for a service instance.
type DutyAssignment struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	ServiceID   string    `gorm:"column:service_id;type:varchar(30);not null;index"`
	ServiceDate time.Time `gorm:"column:service_date;not null;index"`
	ServiceTime string    `gorm:"column:service_time;type:varchar(10);not null"`
	DutyID      string    `gorm:"column:duty_id;type:varchar(30);not null"`
	MemberID    string    `gorm:"column:member_id;type:varchar(20);not null;index"`
	Status      string    `gorm:"column:status;type:varchar(10);not null;default:assigned"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an id so the row works on both drivers
func (a *DutyAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for GORM
func (DutyAssignment) TableName() string {
	return "duty_assignments"
}
