package models

import (
	"time"
)

type Payment struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ParticipantID int64       `json:"participantId" gorm:"index"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Amount        float64     `json:"amount" gorm:"type:numeric(12,2);not null;default:0"`
	DueOn         time.Time   `json:"dueOn" gorm:"type:timestamp with time zone;not null"`
	PaidOn        time.Time   `json:"paidOn" gorm:"type:timestamp with time zone;not null"`
	DaysLate      int         `json:"daysLate" gorm:"not null;default:0"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Communication struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ParticipantID int64       `json:"participantId" gorm:"index"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Initiator     string      `json:"initiator" gorm:"type:text;not null"`
	Proactive     bool        `json:"proactive" gorm:"not null;default:false"`
	Subject       string      `json:"subject" gorm:"type:text"`
	Body          string      `json:"body" gorm:"type:text"`
	AnsweredAt    *time.Time  `json:"answeredAt" gorm:"type:timestamp with time zone"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type WorkActivity struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ParticipantID int64       `json:"participantId" gorm:"index"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ContextID     int64       `json:"contextId" gorm:"index"`
	Name          string      `json:"name" gorm:"type:text;not null"`
	Description   string      `json:"description" gorm:"type:text"`
	IsActive      bool        `json:"isActive" gorm:"not null;default:true"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Signal struct {
	ID             int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	ParticipantID  int64        `json:"participantId" gorm:"index"`
	Participant    Participant  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	WorkActivityID int64        `json:"workActivityId" gorm:"index"`
	WorkActivity   WorkActivity `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Outcome        string       `json:"outcome" gorm:"type:text;not null;index"`
	Note           string       `json:"note" gorm:"type:text"`
	SignalDate     time.Time    `json:"signalDate" gorm:"type:timestamp with time zone;not null;index"`
	CDate          time.Time    `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
