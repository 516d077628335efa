package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type LanguageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

func (r *LanguageRepository) ListByContext(ctx context.Context, contextID int64) ([]domain.FeatureLanguage, error) {
	var records []models.FeatureLanguage
	err := r.db.WithContext(ctx).
		Where("context_id = ?", contextID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.FeatureLanguage, 0, len(records))
	for _, record := range records {
		out = append(out, domain.FeatureLanguage{
			ID:         record.ID,
			ContextID:  record.ContextID,
			FeatureKey: record.FeatureKey,
			Variant:    record.Variant,
			Value:      record.Value,
		})
	}
	return out, nil
}
