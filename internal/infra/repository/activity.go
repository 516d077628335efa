package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func activityToDomain(m models.WorkActivity) domain.WorkActivity {
	return domain.WorkActivity{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		ContextID:     m.ContextID,
		Name:          m.Name,
		Description:   m.Description,
		IsActive:      m.IsActive,
		CreatedAt:     m.CDate,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, a domain.WorkActivity) (domain.WorkActivity, error) {
	record := models.WorkActivity{
		ParticipantID: a.ParticipantID,
		ContextID:     a.ContextID,
		Name:          a.Name,
		Description:   a.Description,
		IsActive:      a.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.WorkActivity{}, errors.Wrap(err, "create work activity")
	}
	return activityToDomain(record), nil
}

func (r *ActivityRepository) Get(ctx context.Context, id int64) (domain.WorkActivity, error) {
	var record models.WorkActivity
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WorkActivity{}, domain.NotFoundError{Resource: "work activity"}
		}
		return domain.WorkActivity{}, err
	}
	return activityToDomain(record), nil
}

func (r *ActivityRepository) Update(ctx context.Context, a domain.WorkActivity) error {
	return r.db.WithContext(ctx).
		Model(&models.WorkActivity{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"name":        a.Name,
			"description": a.Description,
			"is_active":   a.IsActive,
		}).Error
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.WorkActivity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "work activity"}
	}
	return nil
}

func (r *ActivityRepository) ListByParticipant(ctx context.Context, participantID int64) ([]domain.WorkActivity, error) {
	var records []models.WorkActivity
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("c_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return activitiesToDomain(records), nil
}

func (r *ActivityRepository) ListActive(ctx context.Context, participantID int64) ([]domain.WorkActivity, error) {
	var records []models.WorkActivity
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND is_active = ?", participantID, true).
		Order("c_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return activitiesToDomain(records), nil
}

func activitiesToDomain(records []models.WorkActivity) []domain.WorkActivity {
	out := make([]domain.WorkActivity, 0, len(records))
	for _, record := range records {
		out = append(out, activityToDomain(record))
	}
	return out
}
