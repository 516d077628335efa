package models

import (
	"time"
)

type Flyer struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ParticipantID int64       `json:"participantId" gorm:"index"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ContextID     int64       `json:"contextId" gorm:"index"`
	Title         string      `json:"title" gorm:"type:text;not null;default:'Untitled Flyer'"`
	Content       string      `json:"content" gorm:"type:text;not null"`
	IsPublic      bool        `json:"isPublic" gorm:"not null;default:true"`
	ViewCount     int64       `json:"viewCount" gorm:"not null;default:0"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate         time.Time   `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp();autoUpdateTime"`
}

type FlyerView struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FlyerID  int64     `json:"flyerId" gorm:"index"`
	Flyer    Flyer     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ViewerIP string    `json:"viewerIp" gorm:"type:text"`
	ViewedOn time.Time `json:"viewedOn" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
