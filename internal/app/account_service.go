package app

import (
	"encoding/json"
	"fmt"

	"github.com/Xenowa/foodifire-backend/internal/model"
	"github.com/Xenowa/foodifire-backend/internal/pkg/datauri"
)

// AccountStore mutates the per-user condition and saved-report lists.
// Mutations against a missing account are acknowledged no-ops.
type AccountStore interface {
	AppendDisease(email, condition string) error
	RemoveDisease(email, condition string) error
	AppendReport(email string, report model.SavedReport) error
	RemoveReport(email string, report model.SavedReport) error
	DeleteByEmail(email string) error
}

// AccountService is the CRUD gateway over user accounts. Inputs arrive as
// raw JSON values so that numeric submissions can be rejected with the
// specific numeric reason.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) AddCondition(email string, condition any) error {
	if err := datauri.ValidateValue(condition); err != nil {
		return err
	}
	return s.store.AppendDisease(email, condition.(string))
}

func (s *AccountService) RemoveCondition(email string, condition any) error {
	if err := datauri.ValidateValue(condition); err != nil {
		return err
	}
	return s.store.RemoveDisease(email, condition.(string))
}

// AddReport validates the report's imgURL with the full image rules
// (empty, numeric, data-URL format) and appends the whole object.
func (s *AccountService) AddReport(email string, report map[string]any) error {
	if err := datauri.ValidateImage(report["imgURL"]); err != nil {
		return err
	}
	saved, err := toSavedReport(report)
	if err != nil {
		return err
	}
	return s.store.AppendReport(email, saved)
}

// RemoveReport checks only empty and numeric on imgURL; the data-URL format
// requirement deliberately does not apply on removal. Matching is by deep
// equality against the stored object.
func (s *AccountService) RemoveReport(email string, report map[string]any) error {
	if err := datauri.ValidateValue(report["imgURL"]); err != nil {
		return err
	}
	saved, err := toSavedReport(report)
	if err != nil {
		return err
	}
	return s.store.RemoveReport(email, saved)
}

func (s *AccountService) DeleteAccount(email any) error {
	if err := datauri.ValidateValue(email); err != nil {
		return err
	}
	return s.store.DeleteByEmail(email.(string))
}

func toSavedReport(report map[string]any) (model.SavedReport, error) {
	var saved model.SavedReport
	blob, err := json.Marshal(report)
	if err != nil {
		return saved, fmt.Errorf("marshal report failed: %w", err)
	}
	if err := json.Unmarshal(blob, &saved); err != nil {
		return saved, fmt.Errorf("unmarshal report failed: %w", err)
	}
	return saved, nil
}
