package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Xenowa/foodifire-backend/internal/model"
	"github.com/Xenowa/foodifire-backend/internal/pkg/datauri"
)

// ErrClassificationFailed covers any decode or inference failure. It aborts
// the pipeline; the caller surfaces a generic internal error.
var ErrClassificationFailed = errors.New("classification failed")

// degradedLookupMessage is the client-facing text on the soft-failure path.
const degradedLookupMessage = "Error!, Database not functional!"

// Classifier is the classify(bytes) -> label capability. The underlying
// model technology is swappable without touching the pipeline.
type Classifier interface {
	Classify(imageData []byte) (string, error)
}

// ConditionStore looks up the conditions associated with a food name.
type ConditionStore interface {
	GetByFoodName(foodName string) (*model.FoodCondition, error)
}

// ImageStore keeps the last submitted image per user for /userImage.
type ImageStore interface {
	Store(ctx context.Context, email, dataURL string) error
}

// ReportEventPublisher receives an audit event for every generated report.
type ReportEventPublisher interface {
	Publish(ctx context.Context, entry model.ReportLog) error
}

// Report is the assembled pipeline result. When Degraded is set the lookup
// soft-failed and Message replaces RelatedConditions in the response.
type Report struct {
	FoodName          string
	RelatedConditions []string
	Degraded          bool
	Message           string
}

// ReportService runs the report pipeline: validate, classify, normalize the
// label, look up conditions, assemble. No retries; the first failed external
// call is surfaced immediately.
type ReportService struct {
	classifier Classifier
	conditions ConditionStore
	images     ImageStore
	publisher  ReportEventPublisher
}

func NewReportService(classifier Classifier, conditions ConditionStore, images ImageStore, publisher ReportEventPublisher) *ReportService {
	return &ReportService{
		classifier: classifier,
		conditions: conditions,
		images:     images,
		publisher:  publisher,
	}
}

// GenerateReport produces a report for the image submitted by email's user.
// Validation errors are returned as datauri sentinels; classification
// failures as ErrClassificationFailed. A missing or failing condition lookup
// is NOT an error: the report comes back degraded with an explanatory
// message, and the caller must still answer with HTTP success.
func (s *ReportService) GenerateReport(ctx context.Context, email string, image any) (*Report, error) {
	if err := datauri.ValidateImage(image); err != nil {
		return nil, err
	}
	dataURL := image.(string)

	// Remember the image for /userImage. Best-effort: a cache failure must
	// not fail the report.
	if s.images != nil {
		if err := s.images.Store(ctx, email, dataURL); err != nil {
			log.Printf("cache last image for %s failed: %v", email, err)
		}
	}

	raw, err := datauri.Decode(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	label, err := s.classifier.Classify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	foodName := NormalizeLabel(label)

	report := s.lookup(foodName)
	s.audit(ctx, email, report)
	return report, nil
}

func (s *ReportService) lookup(foodName string) *Report {
	record, err := s.conditions.GetByFoodName(foodName)
	if err != nil {
		log.Printf("condition lookup for %q failed: %v", foodName, err)
	}
	if err != nil || record == nil {
		return &Report{
			FoodName: foodName,
			Degraded: true,
			Message:  degradedLookupMessage,
		}
	}
	return &Report{
		FoodName:          foodName,
		RelatedConditions: record.Diseases,
	}
}

func (s *ReportService) audit(ctx context.Context, email string, report *Report) {
	if s.publisher == nil {
		return
	}
	entry := model.ReportLog{
		Email:      email,
		FoodName:   report.FoodName,
		Conditions: report.RelatedConditions,
		Degraded:   report.Degraded,
	}
	if err := s.publisher.Publish(ctx, entry); err != nil {
		log.Printf("publish report log failed: %v", err)
	}
}

// NormalizeLabel turns a raw classifier token into display form: underscores
// become spaces and only the first character of the whole string is
// uppercased ("apple_pie" -> "Apple pie"). Idempotent on normalized input.
func NormalizeLabel(label string) string {
	s := strings.ReplaceAll(label, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
