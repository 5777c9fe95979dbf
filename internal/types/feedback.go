package types

import (
	"github.com/feedback-collector/backend/internal/models"
)

// CreateFeedbackRequest is the POST /api/feedback body. Rating is a pointer
// so an omitted rating can be told apart from an explicit zero.
type CreateFeedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Rating   *int   `json:"rating,omitempty"`
	Category string `json:"category,omitempty"`
}

// FieldError describes a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListFeedbackResponse is the GET /api/feedback envelope. Total and the
// page figures always reflect the filtered set.
type ListFeedbackResponse struct {
	Feedback    []models.Feedback `json:"feedback"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Total       int64             `json:"total"`
}

// CreateFeedbackResponse is the 201 body for a successful submission.
type CreateFeedbackResponse struct {
	Message  string          `json:"message"`
	Feedback models.Feedback `json:"feedback"`
}

// ValidationErrorResponse is the 400 body carrying every violated rule.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is a bare acknowledgment or error body.
type MessageResponse struct {
	Message string `json:"message"`
	// Error carries the underlying detail, populated only in development.
	Error string `json:"error,omitempty"`
}

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
