package domain

// Session context keys, set by the auth middleware.
const (
	SessionTokenCtxKey   = "wf-sessionToken"
	ActorKindCtxKey      = "wf-actorKind"
	ActorIDCtxKey        = "wf-actorId"
	ActorContextIDCtxKey = "wf-actorContextId"
	ActorDisplayCtxKey   = "wf-actorDisplay"
)

// ActorKind discriminates the two login surfaces.
type ActorKind string

const (
	ActorParticipant ActorKind = "participant"
	ActorInstitution ActorKind = "institution"
)

// Status is the traffic-light classification of a participant.
type Status string

const (
	StatusGreen  Status = "GREEN"
	StatusYellow Status = "YELLOW"
	StatusRed    Status = "RED"
	StatusNone   Status = "" // never classified yet
)

// SignalOutcome is a participant-reported daily outcome.
type SignalOutcome string

const (
	OutcomeBetter     SignalOutcome = "BETTER"
	OutcomeAsExpected SignalOutcome = "AS_EXPECTED"
	OutcomeWorse      SignalOutcome = "WORSE"
)

// ValidOutcome reports whether s is one of the three signal outcomes.
func ValidOutcome(s SignalOutcome) bool {
	switch s {
	case OutcomeBetter, OutcomeAsExpected, OutcomeWorse:
		return true
	}
	return false
}

// ResponseTemplate defines what response an instruction expects.
type ResponseTemplate string

const (
	ResponseNone          ResponseTemplate = "NONE"
	ResponseCheckboxRead  ResponseTemplate = "CHECKBOX_READ"
	ResponseAcceptDecline ResponseTemplate = "ACCEPT_DECLINE"
	ResponseText          ResponseTemplate = "TEXT_RESPONSE"
)

// ValidResponseTemplate reports whether t is a known template.
func ValidResponseTemplate(t ResponseTemplate) bool {
	switch t {
	case ResponseNone, ResponseCheckboxRead, ResponseAcceptDecline, ResponseText:
		return true
	}
	return false
}

// Initiator marks which side logged a communication.
type Initiator string

const (
	InitiatorInstitution Initiator = "institution"
	InitiatorParticipant Initiator = "participant"
)
