package model

import (
	"time"

	"gorm.io/datatypes"
)

// User is an account created on first Google SSO login, keyed by email.
// Diseases keeps insertion order and permits duplicates; SavedReports holds
// whole report objects and removal matches by deep equality.
type User struct {
	ID           uint                             `gorm:"primaryKey" json:"id"`
	Email        string                           `gorm:"size:128;not null;uniqueIndex" json:"email"`
	SSOProfile   datatypes.JSON                   `json:"userSSO"`
	Diseases     datatypes.JSONSlice[string]      `json:"diseases"`
	SavedReports datatypes.JSONSlice[SavedReport] `json:"savedReports"`
	CreatedAt    time.Time                        `json:"created_at"`
	UpdatedAt    time.Time                        `json:"updated_at"`
}

// SavedReport is a report a user chose to keep. ImgURL is the only field the
// API requires; the rest travels along when present.
type SavedReport struct {
	ImgURL            string   `json:"imgURL"`
	FoodName          string   `json:"foodName,omitempty"`
	RelatedConditions []string `json:"relatedConditions,omitempty"`
	Message           string   `json:"message,omitempty"`
}
