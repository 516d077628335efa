package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type CommunicationRepository struct {
	db *gorm.DB
}

func NewCommunicationRepository(db *gorm.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

func communicationToDomain(m models.Communication) domain.Communication {
	return domain.Communication{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		Initiator:     domain.Initiator(m.Initiator),
		Proactive:     m.Proactive,
		Subject:       m.Subject,
		Body:          m.Body,
		AnsweredAt:    m.AnsweredAt,
		CreatedAt:     m.CDate,
	}
}

func (r *CommunicationRepository) Create(ctx context.Context, c domain.Communication) (domain.Communication, error) {
	record := models.Communication{
		ParticipantID: c.ParticipantID,
		Initiator:     string(c.Initiator),
		Proactive:     c.Proactive,
		Subject:       c.Subject,
		Body:          c.Body,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Communication{}, errors.Wrap(err, "create communication")
	}
	return communicationToDomain(record), nil
}

func (r *CommunicationRepository) Get(ctx context.Context, id int64) (domain.Communication, error) {
	var record models.Communication
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Communication{}, domain.NotFoundError{Resource: "communication"}
		}
		return domain.Communication{}, err
	}
	return communicationToDomain(record), nil
}

func (r *CommunicationRepository) List(ctx context.Context, participantID int64, limit int) ([]domain.Communication, error) {
	query := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("c_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Communication
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return communicationsToDomain(records), nil
}

func (r *CommunicationRepository) ListByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, limit int) ([]domain.Communication, error) {
	query := r.db.WithContext(ctx).
		Where("participant_id = ? AND initiator = ?", participantID, string(initiator)).
		Order("c_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Communication
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return communicationsToDomain(records), nil
}

func (r *CommunicationRepository) CountProactiveSince(ctx context.Context, participantID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Communication{}).
		Where("participant_id = ? AND initiator = ? AND proactive = ? AND c_date >= ?",
			participantID, string(domain.InitiatorParticipant), true, since).
		Count(&count).Error
	return count, err
}

func (r *CommunicationRepository) CountByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, proactive bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Communication{}).
		Where("participant_id = ? AND initiator = ? AND proactive = ?",
			participantID, string(initiator), proactive).
		Count(&count).Error
	return count, err
}

func (r *CommunicationRepository) MarkAnswered(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Communication{}).
		Where("id = ?", id).
		Update("answered_at", at).Error
}

func communicationsToDomain(records []models.Communication) []domain.Communication {
	out := make([]domain.Communication, 0, len(records))
	for _, record := range records {
		out = append(out, communicationToDomain(record))
	}
	return out
}
