package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type FlyerRepository struct {
	db *gorm.DB
}

func NewFlyerRepository(db *gorm.DB) *FlyerRepository {
	return &FlyerRepository{db: db}
}

func flyerToDomain(m models.Flyer) domain.Flyer {
	return domain.Flyer{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		ContextID:     m.ContextID,
		Title:         m.Title,
		Content:       m.Content,
		IsPublic:      m.IsPublic,
		ViewCount:     m.ViewCount,
		CreatedAt:     m.CDate,
		UpdatedAt:     m.MDate,
	}
}

func (r *FlyerRepository) Create(ctx context.Context, f domain.Flyer) (domain.Flyer, error) {
	record := models.Flyer{
		ParticipantID: f.ParticipantID,
		ContextID:     f.ContextID,
		Title:         f.Title,
		Content:       f.Content,
		IsPublic:      f.IsPublic,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Flyer{}, errors.Wrap(err, "create flyer")
	}
	return flyerToDomain(record), nil
}

func (r *FlyerRepository) Get(ctx context.Context, id int64) (domain.Flyer, error) {
	var record models.Flyer
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Flyer{}, domain.NotFoundError{Resource: "flyer"}
		}
		return domain.Flyer{}, err
	}
	return flyerToDomain(record), nil
}

func (r *FlyerRepository) Update(ctx context.Context, f domain.Flyer) error {
	return r.db.WithContext(ctx).
		Model(&models.Flyer{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"title":     f.Title,
			"content":   f.Content,
			"is_public": f.IsPublic,
		}).Error
}

func (r *FlyerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Flyer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "flyer"}
	}
	return nil
}

func (r *FlyerRepository) ListByParticipant(ctx context.Context, participantID int64) ([]domain.Flyer, error) {
	var records []models.Flyer
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("m_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Flyer, 0, len(records))
	for _, record := range records {
		out = append(out, flyerToDomain(record))
	}
	return out, nil
}

func (r *FlyerRepository) GetPublicByParticipant(ctx context.Context, participantID int64) (domain.Flyer, error) {
	var record models.Flyer
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND is_public = ?", participantID, true).
		Order("m_date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Flyer{}, domain.NotFoundError{Resource: "flyer"}
		}
		return domain.Flyer{}, err
	}
	return flyerToDomain(record), nil
}

// RecordView logs the view and bumps the counter in one transaction.
func (r *FlyerRepository) RecordView(ctx context.Context, flyerID int64, viewerIP string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := models.FlyerView{
			FlyerID:  flyerID,
			ViewerIP: viewerIP,
		}
		if err := tx.Create(&view).Error; err != nil {
			return errors.Wrap(err, "create flyer view")
		}
		return tx.Model(&models.Flyer{}).
			Where("id = ?", flyerID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
}

func (r *FlyerRepository) ListViews(ctx context.Context, flyerID int64, limit int) ([]domain.FlyerView, error) {
	query := r.db.WithContext(ctx).
		Where("flyer_id = ?", flyerID).
		Order("viewed_on DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.FlyerView
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.FlyerView, 0, len(records))
	for _, record := range records {
		out = append(out, domain.FlyerView{
			ID:       record.ID,
			FlyerID:  record.FlyerID,
			ViewerIP: record.ViewerIP,
			ViewedOn: record.ViewedOn,
		})
	}
	return out, nil
}
