package model

import (
	"time"

	"gorm.io/datatypes"
)

// FoodCondition maps a display-form food name ("Apple pie") to the health
// conditions associated with it. Read-only at request time; rows are seeded
// out of band.
type FoodCondition struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	FoodName  string                      `gorm:"size:64;not null;uniqueIndex" json:"foodName"`
	Diseases  datatypes.JSONSlice[string] `json:"diseases"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
