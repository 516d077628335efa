package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

func paymentsWithDaysLate(daysLate ...int) []domain.Payment {
	payments := make([]domain.Payment, len(daysLate))
	for i, d := range daysLate {
		payments[i] = domain.Payment{DaysLate: d}
	}
	return payments
}

func contactsAnswered(answeredWithin48h ...bool) []domain.Communication {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	contacts := make([]domain.Communication, len(answeredWithin48h))
	for i, ok := range answeredWithin48h {
		c := domain.Communication{
			Initiator: domain.InitiatorInstitution,
			CreatedAt: base.AddDate(0, 0, -i),
		}
		if ok {
			answered := c.CreatedAt.Add(3 * time.Hour)
			c.AnsweredAt = &answered
		}
		contacts[i] = c
	}
	return contacts
}

func TestScorePaymentsInsufficientHistory(t *testing.T) {
	for _, payments := range [][]domain.Payment{
		nil,
		paymentsWithDaysLate(0),
		paymentsWithDaysLate(10, 20),
	} {
		if got := scorePayments(payments); got != 1 {
			t.Fatalf("expected neutral score 1 for %d payments, got %d", len(payments), got)
		}
	}
}

func TestScorePaymentsFiveOnTime(t *testing.T) {
	// Example from the policy table: 5 of 6 on time.
	payments := paymentsWithDaysLate(-2, 0, 1, 0, -1, 0)
	if got := scorePayments(payments); got != 3 {
		t.Fatalf("expected payment score 3, got %d", got)
	}
}

func TestScorePaymentsFourOnTimeConsistent(t *testing.T) {
	// 4 on-time with tightly clustered days-late: consistent pattern
	// upgrades 2 to 3.
	payments := paymentsWithDaysLate(0, 0, 0, 0, 1, 1)
	if got := scorePayments(payments); got != 3 {
		t.Fatalf("expected payment score 3, got %d", got)
	}
}

func TestScorePaymentsFourOnTimeScattered(t *testing.T) {
	payments := paymentsWithDaysLate(0, 0, 0, 0, 14, 9)
	if got := scorePayments(payments); got != 2 {
		t.Fatalf("expected payment score 2, got %d", got)
	}
}

func TestScorePaymentsConsistentlyLate(t *testing.T) {
	// All late but low variance: consistent pattern still earns 1.
	payments := paymentsWithDaysLate(7, 7, 8, 7, 8, 7)
	if got := scorePayments(payments); got != 1 {
		t.Fatalf("expected payment score 1 for consistently late payer, got %d", got)
	}
}

func TestScorePaymentsWorstCase(t *testing.T) {
	payments := paymentsWithDaysLate(30, 2, 15, -1, 60, 4)
	if got := scorePayments(payments); got != 0 {
		t.Fatalf("expected payment score 0, got %d", got)
	}
}

func TestScorePaymentsIgnoresBeyondWindow(t *testing.T) {
	// Only the first 6 entries (newest first) count.
	payments := paymentsWithDaysLate(0, 0, 0, 0, 0, 0, 99, 99, 99)
	if got := scorePayments(payments); got != 3 {
		t.Fatalf("expected payment score 3, got %d", got)
	}
}

func TestScoreContacts(t *testing.T) {
	cases := []struct {
		name     string
		contacts []domain.Communication
		want     int
	}{
		{"no data is neutral", nil, 1},
		{"all answered", contactsAnswered(true, true, true, true, true), 2},
		{"four of five", contactsAnswered(true, true, true, true, false), 2},
		{"three of five", contactsAnswered(true, true, true, false, false), 1},
		{"one of five", contactsAnswered(true, false, false, false, false), 0},
		{"single unanswered", contactsAnswered(false), 0},
		{"single answered", contactsAnswered(true), 2},
	}
	for _, tc := range cases {
		if got := scoreContacts(tc.contacts); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestScoreContactsLateAnswerDoesNotCount(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	answered := created.Add(49 * time.Hour)
	contacts := []domain.Communication{{CreatedAt: created, AnsweredAt: &answered}}
	if got := scoreContacts(contacts); got != 0 {
		t.Fatalf("expected answer after 48h to score 0, got %d", got)
	}
}

func TestScoreProactivity(t *testing.T) {
	cases := []struct {
		recent   int64
		nonProac int64
		want     int
	}{
		{2, 0, 2},
		{5, 0, 2},
		{1, 0, 1},
		{0, 2, 1},
		{0, 5, 1},
		{0, 1, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := scoreProactivity(tc.recent, tc.nonProac); got != tc.want {
			t.Errorf("recent=%d nonProactive=%d: expected %d, got %d", tc.recent, tc.nonProac, tc.want, got)
		}
	}
}

func TestEvaluateTotalsAndThresholds(t *testing.T) {
	cases := []struct {
		name  string
		input StatusInput
		total int
		want  domain.Status
	}{
		{
			"best case is green",
			StatusInput{
				Payments:        paymentsWithDaysLate(-2, 0, 1, 0, -1, 0),
				Contacts:        contactsAnswered(true, true, true, true, true),
				RecentProactive: 2,
			},
			7, domain.StatusGreen,
		},
		{
			"green boundary at six",
			StatusInput{
				Payments:        paymentsWithDaysLate(-2, 0, 1, 0, -1, 0),
				Contacts:        contactsAnswered(true, true, true, false, false),
				RecentProactive: 2,
			},
			6, domain.StatusGreen,
		},
		{
			"yellow boundary at four",
			StatusInput{
				Payments:        paymentsWithDaysLate(30, 2, 15, -1, 60, 4),
				Contacts:        contactsAnswered(true, true, true, true, true),
				RecentProactive: 2,
			},
			4, domain.StatusYellow,
		},
		{
			"all neutral falls red",
			StatusInput{},
			2, domain.StatusRed,
		},
		{
			"worst case is red",
			StatusInput{
				Payments: paymentsWithDaysLate(30, 2, 15, -1, 60, 4),
				Contacts: contactsAnswered(false, false, false, false, false),
			},
			0, domain.StatusRed,
		},
	}
	for _, tc := range cases {
		c := Evaluate(tc.input)
		if c.TotalScore != tc.total {
			t.Errorf("%s: expected total %d, got %d", tc.name, tc.total, c.TotalScore)
		}
		if c.TotalScore != c.PaymentScore+c.CommunicationScore+c.ProactivityScore {
			t.Errorf("%s: sub-scores do not sum to total", tc.name)
		}
		if c.TotalScore < 0 || c.TotalScore > 7 {
			t.Errorf("%s: total %d out of range", tc.name, c.TotalScore)
		}
		if c.Status != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, c.Status)
		}
	}
}

func TestEvaluateIdempotentAndChangeNote(t *testing.T) {
	input := StatusInput{
		Payments:        paymentsWithDaysLate(-2, 0, 1, 0, -1, 0),
		Contacts:        contactsAnswered(true, true, true, true, true),
		RecentProactive: 2,
	}

	first := Evaluate(input)
	if first.Changed {
		t.Fatalf("first classification must not report a change")
	}

	// Same data with the computed status already stored: identical
	// result, still no change note.
	input.PreviousStatus = first.Status
	second := Evaluate(input)
	if second.Changed {
		t.Fatalf("recomputation with identical input must not report a change")
	}
	if second.Status != first.Status || second.TotalScore != first.TotalScore {
		t.Fatalf("recomputation is not idempotent: %v vs %v", second, first)
	}

	// A stored status that differs produces the transition note.
	input.PreviousStatus = domain.StatusRed
	third := Evaluate(input)
	if !third.Changed {
		t.Fatalf("expected change to be reported")
	}
	if want := "changed from RED to GREEN"; !contains(third.Note, want) {
		t.Fatalf("expected note to mention %q, got %q", want, third.Note)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// --- Refresh wiring ---

type mockStatusParticipants struct {
	participant domain.Participant

	updatedStatus domain.Status
	updatedScore  int
	updatedNote   string
}

func (m *mockStatusParticipants) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return p, nil
}
func (m *mockStatusParticipants) Get(ctx context.Context, id int64) (domain.Participant, error) {
	return m.participant, nil
}
func (m *mockStatusParticipants) GetByUsername(ctx context.Context, username string) (domain.Participant, error) {
	return m.participant, nil
}
func (m *mockStatusParticipants) ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.Participant, error) {
	return nil, nil
}
func (m *mockStatusParticipants) CountByResponsible(ctx context.Context, responsibleID int64) (int64, error) {
	return 0, nil
}
func (m *mockStatusParticipants) Update(ctx context.Context, p domain.Participant) error { return nil }
func (m *mockStatusParticipants) UpdateAmounts(ctx context.Context, id int64, borrowed, repaid float64) error {
	return nil
}
func (m *mockStatusParticipants) UpdateStatus(ctx context.Context, id int64, status domain.Status, score int, note string, at time.Time) error {
	m.updatedStatus = status
	m.updatedScore = score
	m.updatedNote = note
	return nil
}
func (m *mockStatusParticipants) SetWorking(ctx context.Context, id int64, working bool) error {
	return nil
}
func (m *mockStatusParticipants) Delete(ctx context.Context, id int64) error { return nil }

type mockStatusPayments struct {
	payments []domain.Payment
}

func (m *mockStatusPayments) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	return p, nil
}
func (m *mockStatusPayments) Get(ctx context.Context, id int64) (domain.Payment, error) {
	return domain.Payment{}, nil
}
func (m *mockStatusPayments) Update(ctx context.Context, p domain.Payment) error { return nil }
func (m *mockStatusPayments) ListRecent(ctx context.Context, participantID int64, limit int) ([]domain.Payment, error) {
	return m.payments, nil
}

type mockStatusComms struct {
	contacts        []domain.Communication
	recentProactive int64
	nonProactive    int64
}

func (m *mockStatusComms) Create(ctx context.Context, c domain.Communication) (domain.Communication, error) {
	return c, nil
}
func (m *mockStatusComms) Get(ctx context.Context, id int64) (domain.Communication, error) {
	return domain.Communication{}, nil
}
func (m *mockStatusComms) List(ctx context.Context, participantID int64, limit int) ([]domain.Communication, error) {
	return nil, nil
}
func (m *mockStatusComms) ListByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, limit int) ([]domain.Communication, error) {
	return m.contacts, nil
}
func (m *mockStatusComms) CountProactiveSince(ctx context.Context, participantID int64, since time.Time) (int64, error) {
	return m.recentProactive, nil
}
func (m *mockStatusComms) CountByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, proactive bool) (int64, error) {
	return m.nonProactive, nil
}
func (m *mockStatusComms) MarkAnswered(ctx context.Context, id int64, at time.Time) error {
	return nil
}

func TestStatusRefreshPersistsClassification(t *testing.T) {
	participants := &mockStatusParticipants{
		participant: domain.Participant{ID: 1, Status: domain.StatusRed},
	}
	payments := &mockStatusPayments{payments: paymentsWithDaysLate(-2, 0, 1, 0, -1, 0)}
	comms := &mockStatusComms{
		contacts:        contactsAnswered(true, true, true, true, true),
		recentProactive: 2,
	}

	uc := NewStatusUsecase(participants, payments, comms)
	result, err := uc.Refresh(context.Background(), 1)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if result.Status != domain.StatusGreen || result.TotalScore != 7 {
		t.Fatalf("expected GREEN 7, got %s %d", result.Status, result.TotalScore)
	}
	if participants.updatedStatus != domain.StatusGreen {
		t.Fatalf("expected persisted status GREEN, got %s", participants.updatedStatus)
	}
	if participants.updatedScore != 7 {
		t.Fatalf("expected persisted score 7, got %d", participants.updatedScore)
	}
	if !contains(participants.updatedNote, "changed from RED to GREEN") {
		t.Fatalf("expected persisted note to record the transition, got %q", participants.updatedNote)
	}
}
