package domain

import "time"

// Instruction is a message an institution sends to one or more
// participants, optionally expecting a templated response.
type Instruction struct {
	ID               int64            `json:"id"`
	ResponsibleID    int64            `json:"responsibleId"`
	ContextID        int64            `json:"contextId"`
	Subject          string           `json:"subject"`
	Body             string           `json:"body"`
	ResponseTemplate ResponseTemplate `json:"responseTemplate"`
	SentBy           string           `json:"sentBy"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// InstructionRecipient is the per-participant delivery record for an
// instruction.
type InstructionRecipient struct {
	ID            int64      `json:"id"`
	InstructionID int64      `json:"instructionId"`
	ParticipantID int64      `json:"participantId"`
	IsRead        bool       `json:"isRead"`
	ReadOn        *time.Time `json:"readOn,omitempty"`
	Response      string     `json:"response,omitempty"`
	RespondedOn   *time.Time `json:"respondedOn,omitempty"`
}

// Responded reports whether the recipient already submitted a response.
func (r InstructionRecipient) Responded() bool {
	return r.Response != ""
}

// InboxItem pairs an instruction with its delivery record for one
// participant.
type InboxItem struct {
	Instruction Instruction          `json:"instruction"`
	Recipient   InstructionRecipient `json:"recipient"`
}

// InstructionStats summarizes delivery of one sent instruction.
type InstructionStats struct {
	Instruction     Instruction `json:"instruction"`
	TotalRecipients int         `json:"totalRecipients"`
	ReadCount       int         `json:"readCount"`
	RespondedCount  int         `json:"respondedCount"`
}
