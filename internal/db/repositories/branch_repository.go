package repositories

import (
	"context"
	"fmt"

	"ekklesia/registry/internal/models/entities"
	gormModels "ekklesia/registry/internal/models/gorm"

	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) GetAll(ctx context.Context) ([]entities.Branch, error) {
	var models []gormModels.Branch
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	branches := make([]entities.Branch, 0, len(models))
	for i := range models {
		branches = append(branches, toBranchEntity(&models[i]))
	}
	return branches, nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id string) (*entities.Branch, error) {
	var model gormModels.Branch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("branch not found: %s", id)
		}
		return nil, fmt.Errorf("failed to fetch branch: %w", err)
	}

	branch := toBranchEntity(&model)
	return &branch, nil
}

func toBranchEntity(m *gormModels.Branch) entities.Branch {
	return entities.Branch{
		ID:                  m.ID,
		Name:                m.Name,
		Location:            m.Location,
		Country:             m.Country,
		DateOfEstablishment: m.DateOfEstablishment,
		Phone:               m.Phone,
		Email:               m.Email,
		Address:             m.Address,
		Status:              entities.BranchStatus(m.Status),
		IDPrefix:            m.IDPrefix,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
