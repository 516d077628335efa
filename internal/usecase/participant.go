package usecase

import (
	"context"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

// ParticipantDashboard is the self-service landing page payload.
type ParticipantDashboard struct {
	Participant      domain.Participant    `json:"participant"`
	Balance          float64               `json:"balance"`
	Activities       []domain.WorkActivity `json:"activities"`
	RecentSignals    []domain.Signal       `json:"recentSignals"`
	UnreadInbox      []domain.InboxItem    `json:"unreadInbox"`
	PendingResponses []domain.InboxItem    `json:"pendingResponses"`
}

// ProfileInput is the self-editable subset of a participant account.
type ProfileInput struct {
	RealName    string
	Address     string
	Telephone   string
	Email       string
	SocialMedia string
}

type ParticipantUsecase struct {
	participants ParticipantRepository
	activities   ActivityRepository
	signals      SignalRepository
	instructions InstructionRepository
	comms        CommunicationRepository
	events       EventPublisher
}

func NewParticipantUsecase(
	participants ParticipantRepository,
	activities ActivityRepository,
	signals SignalRepository,
	instructions InstructionRepository,
	comms CommunicationRepository,
	events EventPublisher,
) *ParticipantUsecase {
	return &ParticipantUsecase{
		participants: participants,
		activities:   activities,
		signals:      signals,
		instructions: instructions,
		comms:        comms,
		events:       events,
	}
}

// Dashboard assembles recent signals (7 days), unread and
// pending-response instructions, activities and the outstanding balance.
func (uc *ParticipantUsecase) Dashboard(ctx context.Context, participantID int64) (ParticipantDashboard, error) {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return ParticipantDashboard{}, err
	}

	activities, err := uc.activities.ListByParticipant(ctx, participantID)
	if err != nil {
		return ParticipantDashboard{}, err
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	recent, err := uc.signals.ListByParticipant(ctx, participantID, sevenDaysAgo, 10)
	if err != nil {
		return ParticipantDashboard{}, err
	}

	inbox, err := uc.instructions.Inbox(ctx, participantID)
	if err != nil {
		return ParticipantDashboard{}, err
	}

	unread := []domain.InboxItem{}
	pending := []domain.InboxItem{}
	for _, item := range inbox {
		if !item.Recipient.IsRead {
			unread = append(unread, item)
		}
		if item.Instruction.ResponseTemplate != domain.ResponseNone && !item.Recipient.Responded() {
			pending = append(pending, item)
		}
	}

	return ParticipantDashboard{
		Participant:      participant,
		Balance:          participant.Balance(),
		Activities:       activities,
		RecentSignals:    recent,
		UnreadInbox:      unread,
		PendingResponses: pending,
	}, nil
}

// Profile returns the participant's own record.
func (uc *ParticipantUsecase) Profile(ctx context.Context, participantID int64) (domain.Participant, error) {
	return uc.participants.Get(ctx, participantID)
}

// UpdateProfile edits the self-service profile fields.
func (uc *ParticipantUsecase) UpdateProfile(ctx context.Context, participantID int64, input ProfileInput) error {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return err
	}

	participant.RealName = input.RealName
	participant.Address = input.Address
	participant.Telephone = input.Telephone
	participant.Email = input.Email
	participant.SocialMedia = input.SocialMedia
	return uc.participants.Update(ctx, participant)
}

// ToggleWorking flips the is-working flag and returns the new value.
func (uc *ParticipantUsecase) ToggleWorking(ctx context.Context, participantID int64) (bool, error) {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return false, err
	}
	next := !participant.IsWorking
	if err := uc.participants.SetWorking(ctx, participantID, next); err != nil {
		return false, err
	}
	return next, nil
}

// SendMessage logs a participant-initiated communication and pushes it
// on the realtime feed. Proactive marks an unprompted check-in.
func (uc *ParticipantUsecase) SendMessage(ctx context.Context, participantID int64, body string, proactive bool) (domain.Communication, error) {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return domain.Communication{}, err
	}

	comm, err := uc.comms.Create(ctx, domain.Communication{
		ParticipantID: participantID,
		Initiator:     domain.InitiatorParticipant,
		Proactive:     proactive,
		Body:          body,
	})
	if err != nil {
		return domain.Communication{}, err
	}

	_ = uc.events.Publish(ctx, domain.Event{
		Type:          domain.EventMessageSent,
		ResponsibleID: participant.ResponsibleID,
		ParticipantID: participantID,
		Timestamp:     time.Now(),
	})

	return comm, nil
}
