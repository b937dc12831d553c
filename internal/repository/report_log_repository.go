package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Xenowa/foodifire-backend/internal/model"
)

type ReportLogRepository struct {
	db *gorm.DB
}

func NewReportLogRepository(db *gorm.DB) *ReportLogRepository {
	return &ReportLogRepository{db: db}
}

func (r *ReportLogRepository) Create(entry *model.ReportLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create report log failed: %w", err)
	}
	return nil
}

func (r *ReportLogRepository) ListByEmail(email string, limit int) ([]model.ReportLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var entries []model.ReportLog
	if err := r.db.Where("email = ?", email).Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list report logs failed: %w", err)
	}
	return entries, nil
}
