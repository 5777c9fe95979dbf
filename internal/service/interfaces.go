package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedback-collector/backend/internal/models"
	"github.com/feedback-collector/backend/internal/types"
)

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filters models.ListFilters) ([]models.Feedback, int64, error)
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}
