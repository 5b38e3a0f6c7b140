package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ekklesia/registry/internal/models/entities"
	gormModels "ekklesia/registry/internal/models/gorm"

	"gorm.io/gorm"
)

// MemberFilters are the DB-level member list filters; derived-field filters
// (youth, female, hasRAHistory) are applied by the service on the loaded set.
type MemberFilters struct {
	Branch   string
	Status   string
	Position string
	Purity   string
	Search   string
}

type MemberRepositoryGORM struct {
	db *gorm.DB
}

// NewMemberRepositoryGORM creates a new GORM-based member repository
func NewMemberRepositoryGORM(db *gorm.DB) *MemberRepositoryGORM {
	return &MemberRepositoryGORM{db: db}
}

// GetByID retrieves a member with the full RA history preloaded
func (r *MemberRepositoryGORM) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	var model gormModels.Member

	err := r.db.WithContext(ctx).
		Preload("RAEpisodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("ra_start_date ASC")
		}).
		Where("id = ?", id).
		First(&model).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("member not found: %s", id)
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	member := toMemberEntity(&model)
	return &member, nil
}

// List retrieves members matching the filters, RA history preloaded
func (r *MemberRepositoryGORM) List(ctx context.Context, filters MemberFilters) ([]entities.Member, error) {
	query := r.db.WithContext(ctx).
		Preload("RAEpisodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("ra_start_date ASC")
		})

	if filters.Branch != "" {
		query = query.Where("main_branch = ?", filters.Branch)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Position != "" {
		query = query.Where("position = ?", filters.Position)
	}
	if filters.Purity != "" {
		query = query.Where("purity = ?", filters.Purity)
	}
	if filters.Search != "" {
		term := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"lower(name || ' ' || surname) LIKE ? OR lower(phone) LIKE ? OR lower(coalesce(email, '')) LIKE ?",
			term, term, term,
		)
	}

	var models []gormModels.Member
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]entities.Member, 0, len(models))
	for i := range models {
		members = append(members, toMemberEntity(&models[i]))
	}
	return members, nil
}

// Create inserts the member and any RA episodes attached to it
func (r *MemberRepositoryGORM) Create(ctx context.Context, member *entities.Member) error {
	model := toMemberModel(member)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// Update persists the member's scalar fields and replaces the episode rows
// in a single transaction, so a status recompute and the history change it
// came from land atomically per member.
func (r *MemberRepositoryGORM) Update(ctx context.Context, member *entities.Member) error {
	model := toMemberModel(member)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		episodes := model.RAEpisodes
		model.RAEpisodes = nil

		if err := tx.Model(&gormModels.Member{}).
			Where("id = ?", model.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(model).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", model.ID).Delete(&gormModels.RAEpisode{}).Error; err != nil {
			return err
		}
		for i := range episodes {
			episodes[i].MemberID = model.ID
			if err := tx.Create(&episodes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// Delete removes a member record. Returns false when the id did not exist.
func (r *MemberRepositoryGORM) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.Member{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete member: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// NextMemberID generates the next branch-scoped id, e.g. "bul-023".
func (r *MemberRepositoryGORM) NextMemberID(ctx context.Context, prefix string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.Member{}).
		Where("id LIKE ?", prefix+"-%").
		Pluck("id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("failed to scan member ids: %w", err)
	}

	next := 1
	for _, id := range ids {
		parts := strings.SplitN(id, "-", 2)
		if len(parts) != 2 {
			continue
		}
		if n, err := strconv.Atoi(parts[1]); err == nil && n >= next {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s-%03d", prefix, next), nil
}

// NextCardNumber returns the next card number in sequence. Card numbers
// are 4-digit, so the sequence starts at 1000.
func (r *MemberRepositoryGORM) NextCardNumber(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&gormModels.Member{}).
		Select("MAX(card_number)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to scan card numbers: %w", err)
	}
	if max == nil || *max < 1000 {
		return 1000, nil
	}
	return *max + 1, nil
}

/* ---------- entity <-> model mapping ---------- */

func toMemberEntity(m *gormModels.Member) entities.Member {
	member := entities.Member{
		ID:            m.ID,
		Name:          m.Name,
		Surname:       m.Surname,
		Gender:        entities.Gender(m.Gender),
		DateOfBirth:   m.DateOfBirth,
		Phone:         m.Phone,
		Email:         m.Email,
		DateOfEntry:   m.DateOfEntry,
		ReasonOfEntry: m.ReasonOfEntry,
		Address:       m.Address,
		NextOfKin: entities.NextOfKin{
			Name:         m.NextOfKinName,
			Surname:      m.NextOfKinSurname,
			Relationship: m.NextOfKinRelationship,
			Phone:        m.NextOfKinPhone,
			Address:      m.NextOfKinAddress,
		},
		MainBranch:     m.MainBranch,
		Position:       entities.Position(m.Position),
		Purity:         entities.PurityStatus(m.Purity),
		CardNumber:     m.CardNumber,
		ReceiptNumber:  m.ReceiptNumber,
		Status:         entities.MemberStatus(m.Status),
		LastAttendance: m.LastAttendance,
		RACount:        m.RACount,
		RALock:         m.RALock,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	for _, e := range m.RAEpisodes {
		member.RAHistory = append(member.RAHistory, entities.RAEpisode{
			StartDate:     e.StartDate,
			EndDate:       e.EndDate,
			RemovalReason: e.RemovalReason,
		})
	}

	if m.DateOfDeath != nil {
		info := entities.DeceasedInfo{DateOfDeath: *m.DateOfDeath}
		if m.CauseOfDeath != nil {
			info.CauseOfDeath = *m.CauseOfDeath
		}
		if m.BurialPlace != nil {
			info.BurialPlace = *m.BurialPlace
		}
		member.DeceasedInfo = &info
	}

	return member
}

func toMemberModel(m *entities.Member) *gormModels.Member {
	model := &gormModels.Member{
		ID:                    m.ID,
		Name:                  m.Name,
		Surname:               m.Surname,
		Gender:                string(m.Gender),
		DateOfBirth:           m.DateOfBirth,
		Phone:                 m.Phone,
		Email:                 m.Email,
		DateOfEntry:           m.DateOfEntry,
		ReasonOfEntry:         m.ReasonOfEntry,
		Address:               m.Address,
		NextOfKinName:         m.NextOfKin.Name,
		NextOfKinSurname:      m.NextOfKin.Surname,
		NextOfKinRelationship: m.NextOfKin.Relationship,
		NextOfKinPhone:        m.NextOfKin.Phone,
		NextOfKinAddress:      m.NextOfKin.Address,
		MainBranch:            m.MainBranch,
		Position:              string(m.Position),
		Purity:                string(m.Purity),
		CardNumber:            m.CardNumber,
		ReceiptNumber:         m.ReceiptNumber,
		Status:                string(m.Status),
		LastAttendance:        m.LastAttendance,
		RACount:               m.RACount,
		RALock:                m.RALock,
	}

	for _, e := range m.RAHistory {
		model.RAEpisodes = append(model.RAEpisodes, gormModels.RAEpisode{
			MemberID:      m.ID,
			StartDate:     e.StartDate,
			EndDate:       e.EndDate,
			RemovalReason: e.RemovalReason,
		})
	}

	if m.DeceasedInfo != nil {
		date := m.DeceasedInfo.DateOfDeath
		cause := m.DeceasedInfo.CauseOfDeath
		place := m.DeceasedInfo.BurialPlace
		model.DateOfDeath = &date
		model.CauseOfDeath = &cause
		model.BurialPlace = &place
	}

	return model
}
