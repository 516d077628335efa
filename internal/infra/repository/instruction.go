package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/infra/database/models"
)

type InstructionRepository struct {
	db *gorm.DB
}

func NewInstructionRepository(db *gorm.DB) *InstructionRepository {
	return &InstructionRepository{db: db}
}

func instructionToDomain(m models.Instruction) domain.Instruction {
	return domain.Instruction{
		ID:               m.ID,
		ResponsibleID:    m.ResponsibleID,
		ContextID:        m.ContextID,
		Subject:          m.Subject,
		Body:             m.Body,
		ResponseTemplate: domain.ResponseTemplate(m.ResponseTemplate),
		SentBy:           m.SentBy,
		CreatedAt:        m.CDate,
	}
}

func recipientToDomain(m models.InstructionRecipient) domain.InstructionRecipient {
	return domain.InstructionRecipient{
		ID:            m.ID,
		InstructionID: m.InstructionID,
		ParticipantID: m.ParticipantID,
		IsRead:        m.IsRead,
		ReadOn:        m.ReadOn,
		Response:      m.Response,
		RespondedOn:   m.RespondedOn,
	}
}

// Create stores the instruction and fans out one delivery record per
// recipient inside a single transaction.
func (r *InstructionRepository) Create(ctx context.Context, ins domain.Instruction, participantIDs []int64) (domain.Instruction, error) {
	record := models.Instruction{
		ResponsibleID:    ins.ResponsibleID,
		ContextID:        ins.ContextID,
		Subject:          ins.Subject,
		Body:             ins.Body,
		ResponseTemplate: string(ins.ResponseTemplate),
		SentBy:           ins.SentBy,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return errors.Wrap(err, "create instruction")
		}
		for _, pid := range participantIDs {
			recipient := models.InstructionRecipient{
				InstructionID: record.ID,
				ParticipantID: pid,
			}
			if err := tx.Create(&recipient).Error; err != nil {
				return errors.Wrap(err, "create instruction recipient")
			}
		}
		return nil
	})
	if err != nil {
		return domain.Instruction{}, err
	}
	return instructionToDomain(record), nil
}

func (r *InstructionRepository) Get(ctx context.Context, id int64) (domain.Instruction, error) {
	var record models.Instruction
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Instruction{}, domain.NotFoundError{Resource: "instruction"}
		}
		return domain.Instruction{}, err
	}
	return instructionToDomain(record), nil
}

func (r *InstructionRepository) ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.InstructionStats, error) {
	type statsRow struct {
		models.Instruction
		TotalRecipients int `gorm:"column:total_recipients"`
		ReadCount       int `gorm:"column:read_count"`
		RespondedCount  int `gorm:"column:responded_count"`
	}

	var rows []statsRow
	err := r.db.WithContext(ctx).
		Model(&models.Instruction{}).
		Select("instructions.*, " +
			"COUNT(ir.id) AS total_recipients, " +
			"COUNT(ir.id) FILTER (WHERE ir.is_read) AS read_count, " +
			"COUNT(ir.id) FILTER (WHERE ir.response <> '') AS responded_count").
		Joins("LEFT JOIN instruction_recipients ir ON ir.instruction_id = instructions.id").
		Where("instructions.responsible_id = ?", responsibleID).
		Group("instructions.id").
		Order("instructions.c_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.InstructionStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.InstructionStats{
			Instruction:     instructionToDomain(row.Instruction),
			TotalRecipients: row.TotalRecipients,
			ReadCount:       row.ReadCount,
			RespondedCount:  row.RespondedCount,
		})
	}
	return out, nil
}

func (r *InstructionRepository) Recipients(ctx context.Context, instructionID int64) ([]domain.InstructionRecipient, error) {
	var records []models.InstructionRecipient
	err := r.db.WithContext(ctx).
		Where("instruction_id = ?", instructionID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.InstructionRecipient, 0, len(records))
	for _, record := range records {
		out = append(out, recipientToDomain(record))
	}
	return out, nil
}

func (r *InstructionRepository) Inbox(ctx context.Context, participantID int64) ([]domain.InboxItem, error) {
	var records []models.InstructionRecipient
	err := r.db.WithContext(ctx).
		Preload("Instruction").
		Joins("JOIN instructions i ON i.id = instruction_recipients.instruction_id").
		Where("instruction_recipients.participant_id = ?", participantID).
		Order("i.c_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.InboxItem, 0, len(records))
	for _, record := range records {
		out = append(out, domain.InboxItem{
			Instruction: instructionToDomain(record.Instruction),
			Recipient:   recipientToDomain(record),
		})
	}
	return out, nil
}

func (r *InstructionRepository) GetRecipient(ctx context.Context, instructionID, participantID int64) (domain.InstructionRecipient, error) {
	var record models.InstructionRecipient
	err := r.db.WithContext(ctx).
		First(&record, "instruction_id = ? AND participant_id = ?", instructionID, participantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InstructionRecipient{}, domain.NotFoundError{Resource: "instruction"}
		}
		return domain.InstructionRecipient{}, err
	}
	return recipientToDomain(record), nil
}

func (r *InstructionRepository) MarkRead(ctx context.Context, recipientID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.InstructionRecipient{}).
		Where("id = ?", recipientID).
		Updates(map[string]any{
			"is_read": true,
			"read_on": at,
		}).Error
}

func (r *InstructionRepository) SetResponse(ctx context.Context, recipientID int64, response string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.InstructionRecipient{}).
		Where("id = ?", recipientID).
		Updates(map[string]any{
			"response":     response,
			"responded_on": at,
		}).Error
}

func (r *InstructionRepository) CountUnread(ctx context.Context, participantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InstructionRecipient{}).
		Where("participant_id = ? AND is_read = ?", participantID, false).
		Count(&count).Error
	return count, err
}

func (r *InstructionRepository) CountPendingResponses(ctx context.Context, participantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InstructionRecipient{}).
		Joins("JOIN instructions i ON i.id = instruction_recipients.instruction_id").
		Where("instruction_recipients.participant_id = ?", participantID).
		Where("instruction_recipients.response = ''").
		Where("i.response_template <> ?", string(domain.ResponseNone)).
		Count(&count).Error
	return count, err
}
