package repositories

import (
	"context"
	"fmt"
	"time"

	"ekklesia/registry/internal/models/entities"
	gormModels "ekklesia/registry/internal/models/gorm"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ReplaceForService swaps the stored plan for one service instance: any
// previous rows for the service id are dropped and the new plan written in
// their place, in one transaction. Re-running the planner is idempotent.
func (r *AssignmentRepository) ReplaceForService(ctx context.Context, serviceID string, date time.Time, assignments []entities.AssignedDuty) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", serviceID).Delete(&gormModels.DutyAssignment{}).Error; err != nil {
			return err
		}
		for _, a := range assignments {
			row := gormModels.DutyAssignment{
				ServiceID:   a.ServiceID,
				ServiceDate: date,
				ServiceTime: string(a.Time),
				DutyID:      a.DutyID,
				MemberID:    a.MemberID,
				Status:      string(a.Status),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to store assignments: %w", err)
	}
	return nil
}

// ByService returns the stored plan for a service instance in duty order.
func (r *AssignmentRepository) ByService(ctx context.Context, serviceID string) ([]entities.AssignedDuty, error) {
	var rows []gormModels.DutyAssignment
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("duty_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	assignments := make([]entities.AssignedDuty, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, entities.AssignedDuty{
			DutyID:    row.DutyID,
			MemberID:  row.MemberID,
			ServiceID: row.ServiceID,
			Date:      row.ServiceDate.Format("2006-01-02"),
			Time:      entities.ServiceTime(row.ServiceTime),
			Status:    entities.AssignmentStatus(row.Status),
		})
	}
	return assignments, nil
}

// ByMember returns a member's upcoming assignments from the given date.
func (r *AssignmentRepository) ByMember(ctx context.Context, memberID string, from time.Time) ([]entities.AssignedDuty, error) {
	var rows []gormModels.DutyAssignment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND service_date >= ?", memberID, from).
		Order("service_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member assignments: %w", err)
	}

	assignments := make([]entities.AssignedDuty, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, entities.AssignedDuty{
			DutyID:    row.DutyID,
			MemberID:  row.MemberID,
			ServiceID: row.ServiceID,
			Date:      row.ServiceDate.Format("2006-01-02"),
			Time:      entities.ServiceTime(row.ServiceTime),
			Status:    entities.AssignmentStatus(row.Status),
		})
	}
	return assignments, nil
}
