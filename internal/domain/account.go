package domain

import "time"

// Context is the tenancy discriminator. The same portal mechanics serve
// different deployments (microfinance, coaching, internal teams); the
// context decides which labels the UI shows.
type Context struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}

// Institution is the responsible entity that owns participant accounts.
type Institution struct {
	ID               int64  `json:"id"`
	ContextID        int64  `json:"contextId"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	PasswordHash     string `json:"-"`
	ParticipantLimit int    `json:"participantLimit"`
}

// Participant is a managed borrower/vendor account.
type Participant struct {
	ID            int64  `json:"id"`
	ContextID     int64  `json:"contextId"`
	ResponsibleID int64  `json:"responsibleId"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	RealName      string `json:"realName"`
	Address       string `json:"address,omitempty"`
	Telephone     string `json:"telephone,omitempty"`
	Email         string `json:"email,omitempty"`
	SocialMedia   string `json:"socialMedia,omitempty"`
	IsWorking     bool   `json:"isWorking"`

	AmountBorrowed float64 `json:"amountBorrowed"`
	AmountRepaid   float64 `json:"amountRepaid"`

	// Derived by the status classifier; the only fields mutated by a
	// computation rather than direct user input.
	Status          Status     `json:"status"`
	StatusScore     int        `json:"statusScore"`
	StatusNote      string     `json:"statusNote,omitempty"`
	StatusUpdatedAt *time.Time `json:"statusUpdatedAt,omitempty"`
}

// Balance is the outstanding amount still owed.
func (p Participant) Balance() float64 {
	return p.AmountBorrowed - p.AmountRepaid
}

// RepaymentPercentage is repaid/borrowed as a percentage, zero when
// nothing was borrowed.
func (p Participant) RepaymentPercentage() float64 {
	if p.AmountBorrowed <= 0 {
		return 0
	}
	return p.AmountRepaid / p.AmountBorrowed * 100
}
