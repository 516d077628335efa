package domain

import "time"

// Flyer is a participant-published markdown page, publicly viewable
// when IsPublic is set.
type Flyer struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participantId"`
	ContextID     int64     `json:"contextId"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	IsPublic      bool      `json:"isPublic"`
	ViewCount     int64     `json:"viewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FlyerView is an append-only record of one public page view.
type FlyerView struct {
	ID       int64     `json:"id"`
	FlyerID  int64     `json:"flyerId"`
	ViewerIP string    `json:"viewerIp"`
	ViewedOn time.Time `json:"viewedOn"`
}

// FeatureLanguage overrides the label shown for a portal mechanic in a
// given context.
type FeatureLanguage struct {
	ID         int64  `json:"id"`
	ContextID  int64  `json:"contextId"`
	FeatureKey string `json:"featureKey"`
	Variant    string `json:"variant"`
	Value      string `json:"value"`
}
