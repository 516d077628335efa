package domain

import "time"

// Payment is one repayment event. DaysLate is derived from the due and
// paid dates when the row is created and only changes on correction
// edits.
type Payment struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participantId"`
	Amount        float64   `json:"amount"`
	DueOn         time.Time `json:"dueOn"`
	PaidOn        time.Time `json:"paidOn"`
	DaysLate      int       `json:"daysLate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OnTime reports whether the payment arrived on or before its due date.
func (p Payment) OnTime() bool {
	return p.DaysLate <= 0
}

// DaysLateBetween computes whole days between due and paid dates,
// negative when paid early.
func DaysLateBetween(dueOn, paidOn time.Time) int {
	return int(paidOn.Sub(dueOn).Hours() / 24)
}

// Communication is an append-only logged interaction between the
// institution and a participant.
type Communication struct {
	ID            int64      `json:"id"`
	ParticipantID int64      `json:"participantId"`
	Initiator     Initiator  `json:"initiator"`
	Proactive     bool       `json:"proactive"`
	Subject       string     `json:"subject,omitempty"`
	Body          string     `json:"body,omitempty"`
	AnsweredAt    *time.Time `json:"answeredAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// AnsweredWithin reports whether the contact got an answer inside the
// given window.
func (c Communication) AnsweredWithin(window time.Duration) bool {
	if c.AnsweredAt == nil {
		return false
	}
	return c.AnsweredAt.Sub(c.CreatedAt) <= window
}

// WorkActivity is a participant-defined line of work that signals are
// reported against.
type WorkActivity struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participantId"`
	ContextID     int64     `json:"contextId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Signal is a self-reported daily outcome for a work activity.
// Append-only; deletable by its owner only.
type Signal struct {
	ID             int64         `json:"id"`
	ParticipantID  int64         `json:"participantId"`
	WorkActivityID int64         `json:"workActivityId"`
	ActivityName   string        `json:"activityName,omitempty"`
	Outcome        SignalOutcome `json:"outcome"`
	Note           string        `json:"note,omitempty"`
	SignalDate     time.Time     `json:"signalDate"`
	CreatedAt      time.Time     `json:"createdAt"`
}
