package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feedback-collector/backend/internal/models"
	"github.com/feedback-collector/backend/internal/types"
)

// ErrNotFound is returned when a feedback id has no matching record.
var ErrNotFound = errors.New("feedback not found")

// ValidationErrors carries every violated field rule for one submission.
type ValidationErrors []types.FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// emailRe matches the local@domain.tld shape checked by the dashboard form.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) IFeedbackService {
	return &FeedbackService{db: db}
}

// ValidateFeedback checks every field rule and returns all violations
// together, so a caller can display them at once. A nil return means the
// submission is valid.
func ValidateFeedback(req *types.CreateFeedbackRequest) ValidationErrors {
	var errs ValidationErrors

	if len(strings.TrimSpace(req.Name)) < 2 {
		errs = append(errs, types.FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		errs = append(errs, types.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if len(strings.TrimSpace(req.Message)) < 10 {
		errs = append(errs, types.FieldError{Field: "message", Message: "Message must be at least 10 characters"})
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		errs = append(errs, types.FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if req.Category != "" && !models.ValidCategory(req.Category) {
		errs = append(errs, types.FieldError{Field: "category", Message: "Category must be one of: " + strings.Join(models.Categories, ", ")})
	}

	return errs
}

// CreateFeedback validates the submission, applies rating/category defaults
// and persists exactly one record. Nothing is persisted when validation fails.
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest) (*models.Feedback, error) {
	if errs := ValidateFeedback(req); errs != nil {
		return nil, errs
	}

	feedback := &models.Feedback{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Message:  strings.TrimSpace(req.Message),
		Rating:   models.DefaultRating,
		Category: models.CategoryGeneral,
	}
	if req.Rating != nil {
		feedback.Rating = *req.Rating
	}
	if req.Category != "" {
		feedback.Category = req.Category
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

// ListFeedback returns the requested page of the filtered set, newest first,
// together with the total count of records matching the filter.
func (s *FeedbackService) ListFeedback(ctx context.Context, filters models.ListFilters) ([]models.Feedback, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Scopes(filters.Scope()).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	offset, limit := filters.Window()
	feedback := make([]models.Feedback, 0, limit)
	err = s.db.WithContext(ctx).
		Scopes(filters.Scope()).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedback).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	return feedback, total, nil
}

// DeleteFeedback permanently removes a record. Deleting an unknown id,
// including a second delete of the same id, returns ErrNotFound.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Feedback{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
