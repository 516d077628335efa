package models

import (
	"time"
)

type Context struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Key         string `json:"key" gorm:"type:text;uniqueIndex"`
	DisplayName string `json:"displayName" gorm:"type:text"`
}

type FeatureLanguage struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ContextID  int64   `json:"contextId" gorm:"index:feature_language_lookup,unique"`
	Context    Context `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	FeatureKey string  `json:"featureKey" gorm:"type:text;index:feature_language_lookup,unique"`
	Variant    string  `json:"variant" gorm:"type:text;index:feature_language_lookup,unique"`
	Value      string  `json:"value" gorm:"type:text"`
}

type Institution struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ContextID        int64     `json:"contextId" gorm:"index"`
	Context          Context   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Name             string    `json:"name" gorm:"type:text;not null"`
	Username         string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash     string    `json:"-" gorm:"type:text"`
	ParticipantLimit int       `json:"participantLimit" gorm:"not null;default:10"`
	CDate            time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Participant struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ContextID     int64       `json:"contextId" gorm:"index"`
	ResponsibleID int64       `json:"responsibleId" gorm:"index"`
	Responsible   Institution `json:"-" gorm:"foreignKey:ResponsibleID;constraint:OnDelete:CASCADE;"`
	Username      string      `json:"username" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash  string      `json:"-" gorm:"type:text"`
	RealName      string      `json:"realName" gorm:"type:text;not null"`
	Address       string      `json:"address" gorm:"type:text"`
	Telephone     string      `json:"telephone" gorm:"type:text"`
	Email         string      `json:"email" gorm:"type:text"`
	SocialMedia   string      `json:"socialMedia" gorm:"type:text"`
	IsWorking     bool        `json:"isWorking" gorm:"not null;default:false"`

	AmountBorrowed float64 `json:"amountBorrowed" gorm:"type:numeric(12,2);not null;default:0"`
	AmountRepaid   float64 `json:"amountRepaid" gorm:"type:numeric(12,2);not null;default:0"`

	Status          string     `json:"status" gorm:"type:text;not null;default:''"`
	StatusScore     int        `json:"statusScore" gorm:"not null;default:0"`
	StatusNote      string     `json:"statusNote" gorm:"type:text;not null;default:''"`
	StatusUpdatedAt *time.Time `json:"statusUpdatedAt" gorm:"type:timestamp with time zone"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
