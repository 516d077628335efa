package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type InstitutionRepository struct {
	db *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

func institutionToDomain(m models.Institution) domain.Institution {
	return domain.Institution{
		ID:               m.ID,
		ContextID:        m.ContextID,
		Name:             m.Name,
		Username:         m.Username,
		PasswordHash:     m.PasswordHash,
		ParticipantLimit: m.ParticipantLimit,
	}
}

func (r *InstitutionRepository) Get(ctx context.Context, id int64) (domain.Institution, error) {
	var record models.Institution
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Institution{}, domain.NotFoundError{Resource: "institution"}
		}
		return domain.Institution{}, err
	}
	return institutionToDomain(record), nil
}

func (r *InstitutionRepository) GetByUsername(ctx context.Context, username string) (domain.Institution, error) {
	var record models.Institution
	err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Institution{}, domain.NotFoundError{Resource: "institution"}
		}
		return domain.Institution{}, err
	}
	return institutionToDomain(record), nil
}
