package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func paymentToDomain(m models.Payment) domain.Payment {
	return domain.Payment{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		Amount:        m.Amount,
		DueOn:         m.DueOn,
		PaidOn:        m.PaidOn,
		DaysLate:      m.DaysLate,
		CreatedAt:     m.CDate,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	record := models.Payment{
		ParticipantID: p.ParticipantID,
		Amount:        p.Amount,
		DueOn:         p.DueOn,
		PaidOn:        p.PaidOn,
		DaysLate:      p.DaysLate,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Payment{}, errors.Wrap(err, "create payment")
	}
	return paymentToDomain(record), nil
}

func (r *PaymentRepository) Get(ctx context.Context, id int64) (domain.Payment, error) {
	var record models.Payment
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return domain.Payment{}, err
	}
	return paymentToDomain(record), nil
}

func (r *PaymentRepository) Update(ctx context.Context, p domain.Payment) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"amount":    p.Amount,
			"due_on":    p.DueOn,
			"paid_on":   p.PaidOn,
			"days_late": p.DaysLate,
		}).Error
}

func (r *PaymentRepository) ListRecent(ctx context.Context, participantID int64, limit int) ([]domain.Payment, error) {
	query := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("paid_on DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Payment
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(records))
	for _, record := range records {
		out = append(out, paymentToDomain(record))
	}
	return out, nil
}
