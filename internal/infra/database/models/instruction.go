package models

import (
	"time"
)

type Instruction struct {
	ID               int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ResponsibleID    int64       `json:"responsibleId" gorm:"index"`
	Responsible      Institution `json:"-" gorm:"foreignKey:ResponsibleID;constraint:OnDelete:CASCADE;"`
	ContextID        int64       `json:"contextId" gorm:"index"`
	Subject          string      `json:"subject" gorm:"type:text;not null"`
	Body             string      `json:"body" gorm:"type:text;not null"`
	ResponseTemplate string      `json:"responseTemplate" gorm:"type:text;not null;default:'NONE'"`
	SentBy           string      `json:"sentBy" gorm:"type:text"`
	CDate            time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type InstructionRecipient struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	InstructionID int64       `json:"instructionId" gorm:"index:instruction_recipient_pair,unique"`
	Instruction   Instruction `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ParticipantID int64       `json:"participantId" gorm:"index:instruction_recipient_pair,unique"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	IsRead        bool        `json:"isRead" gorm:"not null;default:false"`
	ReadOn        *time.Time  `json:"readOn" gorm:"type:timestamp with time zone"`
	Response      string      `json:"response" gorm:"type:text;not null;default:''"`
	RespondedOn   *time.Time  `json:"respondedOn" gorm:"type:timestamp with time zone"`
}
