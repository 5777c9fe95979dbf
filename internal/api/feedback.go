package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feedback-collector/backend/internal/models"
	"github.com/feedback-collector/backend/internal/service"
	"github.com/feedback-collector/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	logger          *zap.SugaredLogger
}

func NewFeedbackHandler(feedbackService service.IFeedbackService, logger *zap.SugaredLogger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.GET("", h.ListFeedback)
		feedback.POST("", h.CreateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}
}

// ListFeedback returns one page of the filtered feedback collection together
// with pagination figures for the whole filtered set.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	filters := models.ParseListFilters(c.Request.URL.Query())

	feedback, total, err := h.feedbackService.ListFeedback(c.Request.Context(), filters)
	if err != nil {
		h.logger.Errorw("get feedback failed", "error", err)
		c.JSON(http.StatusInternalServerError, types.MessageResponse{Message: "Server error while fetching feedback"})
		return
	}

	c.JSON(http.StatusOK, types.ListFeedbackResponse{
		Feedback:    feedback,
		TotalPages:  filters.TotalPages(total),
		CurrentPage: filters.Page,
		Total:       total,
	})
}

// CreateFeedback validates and persists a new submission. All violated rules
// are returned together so the form can render every problem at once.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "Invalid request body"})
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{Errors: verrs})
			return
		}
		h.logger.Errorw("create feedback failed", "error", err)
		c.JSON(http.StatusInternalServerError, types.MessageResponse{Message: "Server error while creating feedback"})
		return
	}

	c.JSON(http.StatusCreated, types.CreateFeedbackResponse{
		Message:  "Feedback submitted successfully",
		Feedback: *feedback,
	})
}

// DeleteFeedback permanently removes one record. A second delete of the same
// id reports not-found rather than silently succeeding.
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.MessageResponse{Message: "Feedback not found"})
		return
	}

	if err := h.feedbackService.DeleteFeedback(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, types.MessageResponse{Message: "Feedback not found"})
			return
		}
		h.logger.Errorw("delete feedback failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, types.MessageResponse{Message: "Server error while deleting feedback"})
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Feedback deleted successfully"})
}
