package usecase

import (
	"context"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

// SignalsOverview splits a window of signals for the institution view.
type SignalsOverview struct {
	All    []domain.Signal `json:"all"`
	Better []domain.Signal `json:"better"`
	Worse  []domain.Signal `json:"worse"`
}

type SignalUsecase struct {
	signals      SignalRepository
	activities   ActivityRepository
	participants ParticipantRepository
	events       EventPublisher
}

func NewSignalUsecase(
	signals SignalRepository,
	activities ActivityRepository,
	participants ParticipantRepository,
	events EventPublisher,
) *SignalUsecase {
	return &SignalUsecase{
		signals:      signals,
		activities:   activities,
		participants: participants,
		events:       events,
	}
}

// Report appends a signal. The target activity must belong to the
// participant and be active; the event is pushed on the realtime feed.
func (uc *SignalUsecase) Report(ctx context.Context, participantID, activityID int64, outcome domain.SignalOutcome, note string, signalDate time.Time) (domain.Signal, error) {
	if !domain.ValidOutcome(outcome) {
		return domain.Signal{}, domain.DeniedError{Reason: "invalid outcome"}
	}

	activity, err := uc.activities.Get(ctx, activityID)
	if err != nil {
		return domain.Signal{}, err
	}
	if activity.ParticipantID != participantID {
		return domain.Signal{}, domain.ErrDenied
	}
	if !activity.IsActive {
		return domain.Signal{}, domain.DeniedError{Reason: "work activity is not active"}
	}

	if signalDate.IsZero() {
		signalDate = time.Now()
	}

	signal, err := uc.signals.Create(ctx, domain.Signal{
		ParticipantID:  participantID,
		WorkActivityID: activityID,
		Outcome:        outcome,
		Note:           note,
		SignalDate:     signalDate,
	})
	if err != nil {
		return domain.Signal{}, err
	}

	if participant, err := uc.participants.Get(ctx, participantID); err == nil {
		_ = uc.events.Publish(ctx, domain.Event{
			Type:          domain.EventSignalReported,
			ResponsibleID: participant.ResponsibleID,
			ParticipantID: participantID,
			Outcome:       outcome,
			Timestamp:     time.Now(),
		})
	}

	return signal, nil
}

// History lists the participant's own signals, newest first.
func (uc *SignalUsecase) History(ctx context.Context, participantID int64, limit int) ([]domain.Signal, error) {
	return uc.signals.ListByParticipant(ctx, participantID, time.Time{}, limit)
}

// Delete removes a signal; only its owner may do so.
func (uc *SignalUsecase) Delete(ctx context.Context, participantID, signalID int64) error {
	signal, err := uc.signals.Get(ctx, signalID)
	if err != nil {
		return err
	}
	if signal.ParticipantID != participantID {
		return domain.ErrDenied
	}
	return uc.signals.Delete(ctx, signalID)
}

// Overview returns the trailing week of signals across all participants
// of an institution, split by outcome.
func (uc *SignalUsecase) Overview(ctx context.Context, responsibleID int64) (SignalsOverview, error) {
	cutoff := time.Now().AddDate(0, 0, -7)
	signals, err := uc.signals.ListByResponsible(ctx, responsibleID, cutoff)
	if err != nil {
		return SignalsOverview{}, err
	}

	overview := SignalsOverview{All: signals, Better: []domain.Signal{}, Worse: []domain.Signal{}}
	for _, s := range signals {
		switch s.Outcome {
		case domain.OutcomeBetter:
			overview.Better = append(overview.Better, s)
		case domain.OutcomeWorse:
			overview.Worse = append(overview.Worse, s)
		}
	}
	return overview, nil
}
