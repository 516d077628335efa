package usecase

import (
	"context"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

// ComposeInstructionInput is the institution-side compose form.
type ComposeInstructionInput struct {
	Recipients       []int64
	Subject          string
	Body             string
	ResponseTemplate domain.ResponseTemplate
	SentBy           string
}

// InstructionDetails pairs a sent instruction with all its recipients.
type InstructionDetails struct {
	Instruction domain.Instruction            `json:"instruction"`
	Recipients  []domain.InstructionRecipient `json:"recipients"`
}

type InstructionUsecase struct {
	instructions InstructionRepository
	participants ParticipantRepository
}

func NewInstructionUsecase(instructions InstructionRepository, participants ParticipantRepository) *InstructionUsecase {
	return &InstructionUsecase{instructions: instructions, participants: participants}
}

// Compose validates recipients against the sender's tenant and creates
// the instruction with one delivery record per recipient.
func (uc *InstructionUsecase) Compose(ctx context.Context, responsibleID, contextID int64, input ComposeInstructionInput) (domain.Instruction, error) {
	if len(input.Recipients) == 0 {
		return domain.Instruction{}, domain.DeniedError{Reason: "at least one recipient is required"}
	}
	if input.Subject == "" || input.Body == "" {
		return domain.Instruction{}, domain.DeniedError{Reason: "subject and content are required"}
	}
	if input.ResponseTemplate == "" {
		input.ResponseTemplate = domain.ResponseNone
	}
	if !domain.ValidResponseTemplate(input.ResponseTemplate) {
		return domain.Instruction{}, domain.DeniedError{Reason: "invalid response template"}
	}

	for _, pid := range input.Recipients {
		participant, err := uc.participants.Get(ctx, pid)
		if err != nil {
			return domain.Instruction{}, err
		}
		if participant.ResponsibleID != responsibleID {
			return domain.Instruction{}, domain.ErrDenied
		}
	}

	return uc.instructions.Create(ctx, domain.Instruction{
		ResponsibleID:    responsibleID,
		ContextID:        contextID,
		Subject:          input.Subject,
		Body:             input.Body,
		ResponseTemplate: input.ResponseTemplate,
		SentBy:           input.SentBy,
	}, input.Recipients)
}

// Sent lists the institution's instructions with delivery stats.
func (uc *InstructionUsecase) Sent(ctx context.Context, responsibleID int64) ([]domain.InstructionStats, error) {
	return uc.instructions.ListByResponsible(ctx, responsibleID)
}

// Details returns one sent instruction and all recipient states.
func (uc *InstructionUsecase) Details(ctx context.Context, responsibleID, instructionID int64) (InstructionDetails, error) {
	instruction, err := uc.instructions.Get(ctx, instructionID)
	if err != nil {
		return InstructionDetails{}, err
	}
	if instruction.ResponsibleID != responsibleID {
		return InstructionDetails{}, domain.ErrDenied
	}

	recipients, err := uc.instructions.Recipients(ctx, instructionID)
	if err != nil {
		return InstructionDetails{}, err
	}
	return InstructionDetails{Instruction: instruction, Recipients: recipients}, nil
}

// Inbox lists everything delivered to a participant, newest first.
func (uc *InstructionUsecase) Inbox(ctx context.Context, participantID int64) ([]domain.InboxItem, error) {
	return uc.instructions.Inbox(ctx, participantID)
}

// Read loads one inbox item and marks it read on first open.
func (uc *InstructionUsecase) Read(ctx context.Context, participantID, instructionID int64) (domain.InboxItem, error) {
	recipient, err := uc.instructions.GetRecipient(ctx, instructionID, participantID)
	if err != nil {
		return domain.InboxItem{}, err
	}

	instruction, err := uc.instructions.Get(ctx, instructionID)
	if err != nil {
		return domain.InboxItem{}, err
	}

	if !recipient.IsRead {
		now := time.Now()
		if err := uc.instructions.MarkRead(ctx, recipient.ID, now); err != nil {
			return domain.InboxItem{}, err
		}
		recipient.IsRead = true
		recipient.ReadOn = &now
	}

	return domain.InboxItem{Instruction: instruction, Recipient: recipient}, nil
}

// Respond stores the participant's response after validating it against
// the instruction's template. A recipient responds at most once.
func (uc *InstructionUsecase) Respond(ctx context.Context, participantID, instructionID int64, response string) error {
	recipient, err := uc.instructions.GetRecipient(ctx, instructionID, participantID)
	if err != nil {
		return err
	}
	if recipient.Responded() {
		return domain.DeniedError{Reason: "response already submitted"}
	}

	instruction, err := uc.instructions.Get(ctx, instructionID)
	if err != nil {
		return err
	}

	switch instruction.ResponseTemplate {
	case domain.ResponseNone:
		return domain.DeniedError{Reason: "this message does not expect a response"}
	case domain.ResponseCheckboxRead:
		if response != "true" {
			return domain.DeniedError{Reason: "confirmation required"}
		}
	case domain.ResponseAcceptDecline:
		if response != "ACCEPT" && response != "DECLINE" {
			return domain.DeniedError{Reason: "response must be ACCEPT or DECLINE"}
		}
	case domain.ResponseText:
		if response == "" {
			return domain.DeniedError{Reason: "response text is required"}
		}
	}

	return uc.instructions.SetResponse(ctx, recipient.ID, response, time.Now())
}
