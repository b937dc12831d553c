package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportLog is one generated report, persisted asynchronously by the worker
// as an audit trail. Rows are append-only.
type ReportLog struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	Email      string                      `gorm:"size:128;not null;index" json:"email"`
	FoodName   string                      `gorm:"size:64;not null" json:"foodName"`
	Conditions datatypes.JSONSlice[string] `json:"conditions"`
	Degraded   bool                        `json:"degraded"`
	CreatedAt  time.Time                   `json:"created_at"`
}
