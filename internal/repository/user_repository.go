package repository

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/Xenowa/foodifire-backend/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

// AppendDisease pushes a condition onto the user's list. Duplicates are
// allowed and insertion order is kept.
func (r *UserRepository) AppendDisease(email, condition string) error {
	return r.mutate(email, "append disease", func(user *model.User) {
		user.Diseases = append(user.Diseases, condition)
	})
}

// RemoveDisease drops every occurrence of condition from the user's list.
func (r *UserRepository) RemoveDisease(email, condition string) error {
	return r.mutate(email, "remove disease", func(user *model.User) {
		kept := user.Diseases[:0]
		for _, d := range user.Diseases {
			if d != condition {
				kept = append(kept, d)
			}
		}
		user.Diseases = kept
	})
}

func (r *UserRepository) AppendReport(email string, report model.SavedReport) error {
	return r.mutate(email, "append report", func(user *model.User) {
		user.SavedReports = append(user.SavedReports, report)
	})
}

// RemoveReport drops every saved report deep-equal to the given one.
func (r *UserRepository) RemoveReport(email string, report model.SavedReport) error {
	return r.mutate(email, "remove report", func(user *model.User) {
		kept := user.SavedReports[:0]
		for _, saved := range user.SavedReports {
			if !reflect.DeepEqual(saved, report) {
				kept = append(kept, saved)
			}
		}
		user.SavedReports = kept
	})
}

// DeleteByEmail removes the account row. Deleting a missing account is a
// no-op, matching the gateway's fire-and-forget contract.
func (r *UserRepository) DeleteByEmail(email string) error {
	if err := r.db.Where("email = ?", email).Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	return nil
}

// mutate runs a read-modify-write on the user's JSON columns inside a
// transaction. A missing user is a no-op, not an error.
func (r *UserRepository) mutate(email, op string, apply func(*model.User)) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		apply(&user)

		return tx.Model(&user).
			Select("diseases", "saved_reports").
			Updates(map[string]any{
				"diseases":      user.Diseases,
				"saved_reports": user.SavedReports,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return nil
}
