package usecase

import (
	"context"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

// ParticipantRepository defines persistence/lookup for participant accounts.
type ParticipantRepository interface {
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)
	Get(ctx context.Context, id int64) (domain.Participant, error)
	GetByUsername(ctx context.Context, username string) (domain.Participant, error)
	ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.Participant, error)
	CountByResponsible(ctx context.Context, responsibleID int64) (int64, error)
	Update(ctx context.Context, p domain.Participant) error
	UpdateAmounts(ctx context.Context, id int64, borrowed, repaid float64) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status, score int, note string, at time.Time) error
	SetWorking(ctx context.Context, id int64, working bool) error
	Delete(ctx context.Context, id int64) error
}

// InstitutionRepository defines lookup for institution accounts.
type InstitutionRepository interface {
	Get(ctx context.Context, id int64) (domain.Institution, error)
	GetByUsername(ctx context.Context, username string) (domain.Institution, error)
}

// PaymentRepository defines persistence for repayment events.
type PaymentRepository interface {
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)
	Get(ctx context.Context, id int64) (domain.Payment, error)
	Update(ctx context.Context, p domain.Payment) error
	ListRecent(ctx context.Context, participantID int64, limit int) ([]domain.Payment, error)
}

// CommunicationRepository defines persistence for logged interactions.
type CommunicationRepository interface {
	Create(ctx context.Context, c domain.Communication) (domain.Communication, error)
	Get(ctx context.Context, id int64) (domain.Communication, error)
	List(ctx context.Context, participantID int64, limit int) ([]domain.Communication, error)
	ListByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, limit int) ([]domain.Communication, error)
	CountProactiveSince(ctx context.Context, participantID int64, since time.Time) (int64, error)
	CountByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, proactive bool) (int64, error)
	MarkAnswered(ctx context.Context, id int64, at time.Time) error
}

// ActivityRepository defines persistence for work activities.
type ActivityRepository interface {
	Create(ctx context.Context, a domain.WorkActivity) (domain.WorkActivity, error)
	Get(ctx context.Context, id int64) (domain.WorkActivity, error)
	Update(ctx context.Context, a domain.WorkActivity) error
	Delete(ctx context.Context, id int64) error
	ListByParticipant(ctx context.Context, participantID int64) ([]domain.WorkActivity, error)
	ListActive(ctx context.Context, participantID int64) ([]domain.WorkActivity, error)
}

// SignalRepository defines persistence for execution signals.
type SignalRepository interface {
	Create(ctx context.Context, s domain.Signal) (domain.Signal, error)
	Get(ctx context.Context, id int64) (domain.Signal, error)
	Delete(ctx context.Context, id int64) error
	ListByParticipant(ctx context.Context, participantID int64, since time.Time, limit int) ([]domain.Signal, error)
	ListByResponsible(ctx context.Context, responsibleID int64, since time.Time) ([]domain.Signal, error)
	CountWorseSince(ctx context.Context, participantID int64, since time.Time) (int64, error)
}

// InstructionRepository defines persistence for instructions and their
// per-recipient delivery records.
type InstructionRepository interface {
	Create(ctx context.Context, ins domain.Instruction, participantIDs []int64) (domain.Instruction, error)
	Get(ctx context.Context, id int64) (domain.Instruction, error)
	ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.InstructionStats, error)
	Recipients(ctx context.Context, instructionID int64) ([]domain.InstructionRecipient, error)
	Inbox(ctx context.Context, participantID int64) ([]domain.InboxItem, error)
	GetRecipient(ctx context.Context, instructionID, participantID int64) (domain.InstructionRecipient, error)
	MarkRead(ctx context.Context, recipientID int64, at time.Time) error
	SetResponse(ctx context.Context, recipientID int64, response string, at time.Time) error
	CountUnread(ctx context.Context, participantID int64) (int64, error)
	CountPendingResponses(ctx context.Context, participantID int64) (int64, error)
}

// FlyerRepository defines persistence for flyers and their view log.
type FlyerRepository interface {
	Create(ctx context.Context, f domain.Flyer) (domain.Flyer, error)
	Get(ctx context.Context, id int64) (domain.Flyer, error)
	Update(ctx context.Context, f domain.Flyer) error
	Delete(ctx context.Context, id int64) error
	ListByParticipant(ctx context.Context, participantID int64) ([]domain.Flyer, error)
	GetPublicByParticipant(ctx context.Context, participantID int64) (domain.Flyer, error)
	RecordView(ctx context.Context, flyerID int64, viewerIP string) error
	ListViews(ctx context.Context, flyerID int64, limit int) ([]domain.FlyerView, error)
}

// LanguageRepository loads per-context label overrides for portal
// mechanics.
type LanguageRepository interface {
	ListByContext(ctx context.Context, contextID int64) ([]domain.FeatureLanguage, error)
}

// EventPublisher pushes realtime events to the feed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
