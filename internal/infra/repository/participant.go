package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func participantToDomain(m models.Participant) domain.Participant {
	return domain.Participant{
		ID:              m.ID,
		ContextID:       m.ContextID,
		ResponsibleID:   m.ResponsibleID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		RealName:        m.RealName,
		Address:         m.Address,
		Telephone:       m.Telephone,
		Email:           m.Email,
		SocialMedia:     m.SocialMedia,
		IsWorking:       m.IsWorking,
		AmountBorrowed:  m.AmountBorrowed,
		AmountRepaid:    m.AmountRepaid,
		Status:          domain.Status(m.Status),
		StatusScore:     m.StatusScore,
		StatusNote:      m.StatusNote,
		StatusUpdatedAt: m.StatusUpdatedAt,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	record := models.Participant{
		ContextID:     p.ContextID,
		ResponsibleID: p.ResponsibleID,
		Username:      p.Username,
		PasswordHash:  p.PasswordHash,
		RealName:      p.RealName,
		Address:       p.Address,
		Telephone:     p.Telephone,
		Email:         p.Email,
		SocialMedia:   p.SocialMedia,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Participant{}, errors.Wrap(err, "create participant")
	}
	return participantToDomain(record), nil
}

func (r *ParticipantRepository) Get(ctx context.Context, id int64) (domain.Participant, error) {
	var record models.Participant
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Participant{}, domain.NotFoundError{Resource: "participant"}
		}
		return domain.Participant{}, err
	}
	return participantToDomain(record), nil
}

func (r *ParticipantRepository) GetByUsername(ctx context.Context, username string) (domain.Participant, error) {
	var record models.Participant
	err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Participant{}, domain.NotFoundError{Resource: "participant"}
		}
		return domain.Participant{}, err
	}
	return participantToDomain(record), nil
}

func (r *ParticipantRepository) ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.Participant, error) {
	var records []models.Participant
	err := r.db.WithContext(ctx).
		Where("responsible_id = ?", responsibleID).
		Order("username ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Participant, 0, len(records))
	for _, record := range records {
		out = append(out, participantToDomain(record))
	}
	return out, nil
}

func (r *ParticipantRepository) CountByResponsible(ctx context.Context, responsibleID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("responsible_id = ?", responsibleID).
		Count(&count).Error
	return count, err
}

func (r *ParticipantRepository) Update(ctx context.Context, p domain.Participant) error {
	return r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"real_name":    p.RealName,
			"address":      p.Address,
			"telephone":    p.Telephone,
			"email":        p.Email,
			"social_media": p.SocialMedia,
		}).Error
}

func (r *ParticipantRepository) UpdateAmounts(ctx context.Context, id int64, borrowed, repaid float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"amount_borrowed": borrowed,
			"amount_repaid":   repaid,
		}).Error
}

func (r *ParticipantRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, score int, note string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            string(status),
			"status_score":      score,
			"status_note":       note,
			"status_updated_at": at,
		}).Error
}

func (r *ParticipantRepository) SetWorking(ctx context.Context, id int64, working bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("is_working", working).Error
}

func (r *ParticipantRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Participant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "participant"}
	}
	return nil
}
