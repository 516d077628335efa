package domain

import "time"

// Event is pushed on the realtime feed when a participant reports a
// signal or sends a message.
type Event struct {
	Type          string        `json:"type"`
	ResponsibleID int64         `json:"responsibleId"`
	ParticipantID int64         `json:"participantId"`
	Outcome       SignalOutcome `json:"outcome,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

const (
	EventSignalReported = "signal.reported"
	EventMessageSent    = "message.sent"
)
