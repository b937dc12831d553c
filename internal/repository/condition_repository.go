package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Xenowa/foodifire-backend/internal/model"
)

type ConditionRepository struct {
	db *gorm.DB
}

func NewConditionRepository(db *gorm.DB) *ConditionRepository {
	return &ConditionRepository{db: db}
}

// GetByFoodName looks up the condition record for a display-form food name
// ("Apple pie"). Returns nil without error when no record exists.
func (r *ConditionRepository) GetByFoodName(foodName string) (*model.FoodCondition, error) {
	var record model.FoodCondition
	if err := r.db.Where("food_name = ?", foodName).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query food condition failed: %w", err)
	}
	return &record, nil
}
