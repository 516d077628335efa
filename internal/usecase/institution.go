package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/wingedflyer/portal/internal/domain"
)

const generatedPasswordLength = 8

// ParticipantSummary is one row of the institution dashboard.
type ParticipantSummary struct {
	Participant        domain.Participant `json:"participant"`
	RecentWorseSignals int64              `json:"recentWorseSignals"`
	UnreadInstructions int64              `json:"unreadInstructions"`
	PendingResponses   int64              `json:"pendingResponses"`
	NeedsAttention     bool               `json:"needsAttention"`
}

// InstitutionDashboard is the rollup over all owned participants.
type InstitutionDashboard struct {
	Institution  domain.Institution   `json:"institution"`
	Participants []ParticipantSummary `json:"participants"`
	CanCreate    bool                 `json:"canCreate"`
}

// CreateParticipantInput carries the institution-supplied fields for a
// new participant account.
type CreateParticipantInput struct {
	Username    string
	Password    string // optional; generated when empty
	RealName    string
	Address     string
	Telephone   string
	Email       string
	SocialMedia string
}

// CreatedParticipant is returned once; GeneratedPassword is only set
// when the institution left the password empty.
type CreatedParticipant struct {
	Participant       domain.Participant `json:"participant"`
	GeneratedPassword string             `json:"generatedPassword,omitempty"`
}

type InstitutionUsecase struct {
	institutions InstitutionRepository
	participants ParticipantRepository
	signals      SignalRepository
	instructions InstructionRepository
	payments     PaymentRepository
	comms        CommunicationRepository
}

func NewInstitutionUsecase(
	institutions InstitutionRepository,
	participants ParticipantRepository,
	signals SignalRepository,
	instructions InstructionRepository,
	payments PaymentRepository,
	comms CommunicationRepository,
) *InstitutionUsecase {
	return &InstitutionUsecase{
		institutions: institutions,
		participants: participants,
		signals:      signals,
		instructions: instructions,
		payments:     payments,
		comms:        comms,
	}
}

// Dashboard builds the per-participant rollup for the institution
// landing page.
func (uc *InstitutionUsecase) Dashboard(ctx context.Context, responsibleID int64) (InstitutionDashboard, error) {
	institution, err := uc.institutions.Get(ctx, responsibleID)
	if err != nil {
		return InstitutionDashboard{}, err
	}

	participants, err := uc.participants.ListByResponsible(ctx, responsibleID)
	if err != nil {
		return InstitutionDashboard{}, err
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	summaries := make([]ParticipantSummary, 0, len(participants))
	for _, p := range participants {
		worse, err := uc.signals.CountWorseSince(ctx, p.ID, sevenDaysAgo)
		if err != nil {
			return InstitutionDashboard{}, err
		}
		unread, err := uc.instructions.CountUnread(ctx, p.ID)
		if err != nil {
			return InstitutionDashboard{}, err
		}
		pending, err := uc.instructions.CountPendingResponses(ctx, p.ID)
		if err != nil {
			return InstitutionDashboard{}, err
		}
		summaries = append(summaries, ParticipantSummary{
			Participant:        p,
			RecentWorseSignals: worse,
			UnreadInstructions: unread,
			PendingResponses:   pending,
			NeedsAttention:     worse > 2 || pending > 0,
		})
	}

	return InstitutionDashboard{
		Institution:  institution,
		Participants: summaries,
		CanCreate:    len(participants) < institution.ParticipantLimit,
	}, nil
}

// CreateParticipant enforces the account limit and generates a one-time
// password when none was supplied.
func (uc *InstitutionUsecase) CreateParticipant(ctx context.Context, responsibleID int64, input CreateParticipantInput) (CreatedParticipant, error) {
	institution, err := uc.institutions.Get(ctx, responsibleID)
	if err != nil {
		return CreatedParticipant{}, err
	}

	count, err := uc.participants.CountByResponsible(ctx, responsibleID)
	if err != nil {
		return CreatedParticipant{}, err
	}
	if count >= int64(institution.ParticipantLimit) {
		return CreatedParticipant{}, domain.LimitError{Limit: institution.ParticipantLimit}
	}

	generated := ""
	password := input.Password
	if password == "" {
		generated, err = randomPassword(generatedPasswordLength)
		if err != nil {
			return CreatedParticipant{}, errors.Wrap(err, "generate password")
		}
		password = generated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return CreatedParticipant{}, errors.Wrap(err, "hash password")
	}

	participant, err := uc.participants.Create(ctx, domain.Participant{
		ContextID:     institution.ContextID,
		ResponsibleID: responsibleID,
		Username:      input.Username,
		PasswordHash:  string(hash),
		RealName:      input.RealName,
		Address:       input.Address,
		Telephone:     input.Telephone,
		Email:         input.Email,
		SocialMedia:   input.SocialMedia,
	})
	if err != nil {
		return CreatedParticipant{}, err
	}

	return CreatedParticipant{Participant: participant, GeneratedPassword: generated}, nil
}

// GetParticipant loads a participant after an ownership check.
func (uc *InstitutionUsecase) GetParticipant(ctx context.Context, responsibleID, participantID int64) (domain.Participant, error) {
	participant, err := uc.participants.Get(ctx, participantID)
	if err != nil {
		return domain.Participant{}, err
	}
	if participant.ResponsibleID != responsibleID {
		return domain.Participant{}, domain.ErrDenied
	}
	return participant, nil
}

// UpdateParticipant edits the profile fields of an owned participant.
func (uc *InstitutionUsecase) UpdateParticipant(ctx context.Context, responsibleID int64, p domain.Participant) error {
	current, err := uc.GetParticipant(ctx, responsibleID, p.ID)
	if err != nil {
		return err
	}

	current.RealName = p.RealName
	current.Address = p.Address
	current.Telephone = p.Telephone
	current.Email = p.Email
	current.SocialMedia = p.SocialMedia
	return uc.participants.Update(ctx, current)
}

// UpdateAmounts overwrites the borrowed/repaid pair.
func (uc *InstitutionUsecase) UpdateAmounts(ctx context.Context, responsibleID, participantID int64, borrowed, repaid float64) error {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return err
	}
	return uc.participants.UpdateAmounts(ctx, participantID, borrowed, repaid)
}

// DeleteParticipant removes the account and all child rows.
func (uc *InstitutionUsecase) DeleteParticipant(ctx context.Context, responsibleID, participantID int64) error {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return err
	}
	return uc.participants.Delete(ctx, participantID)
}

// RecordPayment logs one repayment event; days-late is derived here and
// never recomputed except through CorrectPayment.
func (uc *InstitutionUsecase) RecordPayment(ctx context.Context, responsibleID, participantID int64, amount float64, dueOn, paidOn time.Time) (domain.Payment, error) {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return domain.Payment{}, err
	}
	return uc.payments.Create(ctx, domain.Payment{
		ParticipantID: participantID,
		Amount:        amount,
		DueOn:         dueOn,
		PaidOn:        paidOn,
		DaysLate:      domain.DaysLateBetween(dueOn, paidOn),
	})
}

// ListPayments returns the newest payments for an owned participant.
func (uc *InstitutionUsecase) ListPayments(ctx context.Context, responsibleID, participantID int64, limit int) ([]domain.Payment, error) {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return nil, err
	}
	return uc.payments.ListRecent(ctx, participantID, limit)
}

// CorrectPayment applies a correction edit to a recorded payment and
// recomputes its days-late.
func (uc *InstitutionUsecase) CorrectPayment(ctx context.Context, responsibleID, paymentID int64, amount float64, dueOn, paidOn time.Time) (domain.Payment, error) {
	payment, err := uc.payments.Get(ctx, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	if _, err := uc.GetParticipant(ctx, responsibleID, payment.ParticipantID); err != nil {
		return domain.Payment{}, err
	}

	payment.Amount = amount
	payment.DueOn = dueOn
	payment.PaidOn = paidOn
	payment.DaysLate = domain.DaysLateBetween(dueOn, paidOn)
	if err := uc.payments.Update(ctx, payment); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

// LogCommunication appends an institution-initiated contact record.
func (uc *InstitutionUsecase) LogCommunication(ctx context.Context, responsibleID, participantID int64, subject, body string) (domain.Communication, error) {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return domain.Communication{}, err
	}
	return uc.comms.Create(ctx, domain.Communication{
		ParticipantID: participantID,
		Initiator:     domain.InitiatorInstitution,
		Subject:       subject,
		Body:          body,
	})
}

// ListCommunications returns the newest contacts for an owned participant.
func (uc *InstitutionUsecase) ListCommunications(ctx context.Context, responsibleID, participantID int64, limit int) ([]domain.Communication, error) {
	if _, err := uc.GetParticipant(ctx, responsibleID, participantID); err != nil {
		return nil, err
	}
	return uc.comms.List(ctx, participantID, limit)
}

// MarkCommunicationAnswered stamps the answer time on a contact.
func (uc *InstitutionUsecase) MarkCommunicationAnswered(ctx context.Context, responsibleID, communicationID int64) error {
	comm, err := uc.comms.Get(ctx, communicationID)
	if err != nil {
		return err
	}
	if _, err := uc.GetParticipant(ctx, responsibleID, comm.ParticipantID); err != nil {
		return err
	}
	return uc.comms.MarkAnswered(ctx, communicationID, time.Now())
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
