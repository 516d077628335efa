package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

const (
	paymentWindow     = 6   // payments examined
	minPaymentHistory = 3   // below this the payment score is neutral
	maxDaysLateVar    = 1.5 // days-late variance below this counts as a consistent pattern

	contactWindow  = 5 // institution-initiated contacts examined
	answerDeadline = 48 * time.Hour

	proactiveWindow = 90 * 24 * time.Hour
)

const (
	neutralPaymentScore = 1
	neutralContactScore = 1
)

// StatusInput is everything the classifier looks at.
type StatusInput struct {
	Payments          []domain.Payment       // newest first, at most paymentWindow
	Contacts          []domain.Communication // institution-initiated, newest first, at most contactWindow
	RecentProactive   int64                  // participant-initiated proactive contacts in the trailing window
	TotalNonProactive int64                  // participant-initiated non-proactive contacts on file
	PreviousStatus    domain.Status
}

// Classification is the computed traffic-light result.
type Classification struct {
	Status             domain.Status `json:"status"`
	PaymentScore       int           `json:"paymentScore"`
	CommunicationScore int           `json:"communicationScore"`
	ProactivityScore   int           `json:"proactivityScore"`
	TotalScore         int           `json:"totalScore"`
	Note               string        `json:"note"`
	Changed            bool          `json:"changed"`
	PreviousStatus     domain.Status `json:"previousStatus,omitempty"`
}

// Evaluate applies the classification rules to already-loaded rows.
// Every branch has a neutral fallback for missing data, so it cannot
// fail.
func Evaluate(input StatusInput) Classification {
	c := Classification{
		PaymentScore:       scorePayments(input.Payments),
		CommunicationScore: scoreContacts(input.Contacts),
		ProactivityScore:   scoreProactivity(input.RecentProactive, input.TotalNonProactive),
		PreviousStatus:     input.PreviousStatus,
	}
	c.TotalScore = c.PaymentScore + c.CommunicationScore + c.ProactivityScore

	switch {
	case c.TotalScore >= 6:
		c.Status = domain.StatusGreen
	case c.TotalScore >= 4:
		c.Status = domain.StatusYellow
	default:
		c.Status = domain.StatusRed
	}

	c.Changed = input.PreviousStatus != domain.StatusNone && input.PreviousStatus != c.Status

	c.Note = fmt.Sprintf("payment %d/3, responsiveness %d/2, proactivity %d/2; total %d/7 %s",
		c.PaymentScore, c.CommunicationScore, c.ProactivityScore, c.TotalScore, c.Status)
	if c.Changed {
		c.Note += fmt.Sprintf("; changed from %s to %s", input.PreviousStatus, c.Status)
	}

	return c
}

func scorePayments(payments []domain.Payment) int {
	if len(payments) > paymentWindow {
		payments = payments[:paymentWindow]
	}
	if len(payments) < minPaymentHistory {
		return neutralPaymentScore
	}

	onTime := 0
	for _, p := range payments {
		if p.OnTime() {
			onTime++
		}
	}
	consistent := daysLateVariance(payments) < maxDaysLateVar

	switch {
	case onTime >= 5 || (onTime >= 4 && consistent):
		return 3
	case onTime >= 4:
		return 2
	case onTime >= 2 || consistent:
		return 1
	default:
		return 0
	}
}

// daysLateVariance is the population variance of days-late across the
// examined payments. A consistently late payer still scores as
// low-variance.
func daysLateVariance(payments []domain.Payment) float64 {
	if len(payments) == 0 {
		return 0
	}
	mean := 0.0
	for _, p := range payments {
		mean += float64(p.DaysLate)
	}
	mean /= float64(len(payments))

	variance := 0.0
	for _, p := range payments {
		d := float64(p.DaysLate) - mean
		variance += d * d
	}
	return variance / float64(len(payments))
}

func scoreContacts(contacts []domain.Communication) int {
	if len(contacts) > contactWindow {
		contacts = contacts[:contactWindow]
	}
	if len(contacts) == 0 {
		return neutralContactScore
	}

	answered := 0
	for _, c := range contacts {
		if c.AnsweredWithin(answerDeadline) {
			answered++
		}
	}
	fraction := float64(answered) / float64(len(contacts))

	switch {
	case fraction >= 0.8:
		return 2
	case fraction >= 0.5:
		return 1
	default:
		return 0
	}
}

func scoreProactivity(recentProactive, totalNonProactive int64) int {
	switch {
	case recentProactive >= 2:
		return 2
	case recentProactive >= 1:
		return 1
	case totalNonProactive >= 2:
		return 1
	default:
		return 0
	}
}

// StatusUsecase recomputes and persists the traffic-light status of a
// participant. This is the only place a derived computation mutates a
// record.
type StatusUsecase struct {
	participants   ParticipantRepository
	payments       PaymentRepository
	communications CommunicationRepository
}

func NewStatusUsecase(
	participants ParticipantRepository,
	payments PaymentRepository,
	communications CommunicationRepository,
) *StatusUsecase {
	return &StatusUsecase{
		participants:   participants,
		payments:       payments,
		communications: communications,
	}
}

// Refresh loads the participant's recent rows, classifies them and
// overwrites the stored status fields.
func (uc *StatusUsecase) Refresh(ctx context.Context, participantID int64) (Classification, error) {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return Classification{}, err
	}

	payments, err := uc.payments.ListRecent(ctx, participantID, paymentWindow)
	if err != nil {
		return Classification{}, err
	}

	contacts, err := uc.communications.ListByInitiator(ctx, participantID, domain.InitiatorInstitution, contactWindow)
	if err != nil {
		return Classification{}, err
	}

	now := time.Now()
	recentProactive, err := uc.communications.CountProactiveSince(ctx, participantID, now.Add(-proactiveWindow))
	if err != nil {
		return Classification{}, err
	}

	totalNonProactive, err := uc.communications.CountByInitiator(ctx, participantID, domain.InitiatorParticipant, false)
	if err != nil {
		return Classification{}, err
	}

	result := Evaluate(StatusInput{
		Payments:          payments,
		Contacts:          contacts,
		RecentProactive:   recentProactive,
		TotalNonProactive: totalNonProactive,
		PreviousStatus:    participant.Status,
	})

	err = uc.participants.UpdateStatus(ctx, participantID, result.Status, result.TotalScore, result.Note, now)
	if err != nil {
		return Classification{}, err
	}

	return result, nil
}
