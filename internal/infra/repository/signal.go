package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type SignalRepository struct {
	db *gorm.DB
}

func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

func signalToDomain(m models.Signal) domain.Signal {
	return domain.Signal{
		ID:             m.ID,
		ParticipantID:  m.ParticipantID,
		WorkActivityID: m.WorkActivityID,
		ActivityName:   m.WorkActivity.Name,
		Outcome:        domain.SignalOutcome(m.Outcome),
		Note:           m.Note,
		SignalDate:     m.SignalDate,
		CreatedAt:      m.CDate,
	}
}

func (r *SignalRepository) Create(ctx context.Context, s domain.Signal) (domain.Signal, error) {
	record := models.Signal{
		ParticipantID:  s.ParticipantID,
		WorkActivityID: s.WorkActivityID,
		Outcome:        string(s.Outcome),
		Note:           s.Note,
		SignalDate:     s.SignalDate,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Signal{}, errors.Wrap(err, "create signal")
	}
	return signalToDomain(record), nil
}

func (r *SignalRepository) Get(ctx context.Context, id int64) (domain.Signal, error) {
	var record models.Signal
	err := r.db.WithContext(ctx).Preload("WorkActivity").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Signal{}, domain.NotFoundError{Resource: "signal"}
		}
		return domain.Signal{}, err
	}
	return signalToDomain(record), nil
}

func (r *SignalRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Signal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "signal"}
	}
	return nil
}

func (r *SignalRepository) ListByParticipant(ctx context.Context, participantID int64, since time.Time, limit int) ([]domain.Signal, error) {
	query := r.db.WithContext(ctx).
		Preload("WorkActivity").
		Where("participant_id = ?", participantID).
		Order("signal_date DESC")
	if !since.IsZero() {
		query = query.Where("signal_date >= ?", since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Signal
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return signalsToDomain(records), nil
}

func (r *SignalRepository) ListByResponsible(ctx context.Context, responsibleID int64, since time.Time) ([]domain.Signal, error) {
	var records []models.Signal
	err := r.db.WithContext(ctx).
		Preload("WorkActivity").
		Joins("JOIN participants p ON p.id = signals.participant_id").
		Where("p.responsible_id = ? AND signals.signal_date >= ?", responsibleID, since).
		Order("signals.signal_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return signalsToDomain(records), nil
}

func (r *SignalRepository) CountWorseSince(ctx context.Context, participantID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Signal{}).
		Where("participant_id = ? AND outcome = ? AND signal_date >= ?",
			participantID, string(domain.OutcomeWorse), since).
		Count(&count).Error
	return count, err
}

func signalsToDomain(records []models.Signal) []domain.Signal {
	out := make([]domain.Signal, 0, len(records))
	for _, record := range records {
		out = append(out, signalToDomain(record))
	}
	return out
}
