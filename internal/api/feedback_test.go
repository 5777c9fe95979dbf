package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/feedback-collector/backend/internal/models"
	"github.com/feedback-collector/backend/internal/service"
	"github.com/feedback-collector/backend/internal/types"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feedback{}))

	router := gin.New()
	handler := NewFeedbackHandler(service.NewFeedbackService(db), zap.NewNop().Sugar())
	apiGroup := router.Group("/api")
	apiGroup.GET("/health", HealthCheck)
	handler.RegisterRoutes(apiGroup)

	return router, db
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateFeedbackEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	w := performRequest(router, "POST", "/api/feedback", map[string]interface{}{
		"name":    "Alice Example",
		"email":   "Alice@Example.com",
		"message": "This application works really well for me.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.CreateFeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Feedback submitted successfully", resp.Message)
	assert.NotEqual(t, uuid.Nil, resp.Feedback.ID)
	assert.Equal(t, 5, resp.Feedback.Rating)
	assert.Equal(t, "general", resp.Feedback.Category)
	assert.Equal(t, "alice@example.com", resp.Feedback.Email)

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateFeedbackEndpointValidation(t *testing.T) {
	router, db := setupTestRouter(t)

	w := performRequest(router, "POST", "/api/feedback", map[string]interface{}{
		"name":    "x",
		"email":   "bad",
		"message": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp types.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 3)

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateFeedbackEndpointMalformedBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/api/feedback", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFeedbackEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Feedback{
			Name:    fmt.Sprintf("User %02d", i),
			Email:   fmt.Sprintf("user%02d@example.com", i),
			Message: "a message with enough length",
		}).Error)
	}

	w := performRequest(router, "GET", "/api/feedback", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ListFeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Feedback, 10)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)

	w = performRequest(router, "GET", "/api/feedback?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Feedback, 2)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestListFeedbackEndpointEmpty(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, "GET", "/api/feedback?category=bug", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// an empty result is a valid response, not an error
	var resp types.ListFeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Feedback)
	assert.Empty(t, resp.Feedback)
	assert.Equal(t, int64(0), resp.Total)
}

func TestListFeedbackEndpointFilters(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&models.Feedback{Name: "Alice", Email: "a@example.com", Message: "about the search box", Category: "bug"}).Error)
	require.NoError(t, db.Create(&models.Feedback{Name: "Bob", Email: "b@example.com", Message: "love the new design", Category: "compliment"}).Error)

	w := performRequest(router, "GET", "/api/feedback?category=bug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.ListFeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Feedback, 1)
	assert.Equal(t, "Alice", resp.Feedback[0].Name)

	w = performRequest(router, "GET", "/api/feedback?search=ALICE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
}

func TestDeleteFeedbackEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	fb := models.Feedback{Name: "Alice", Email: "a@example.com", Message: "a message with enough length"}
	require.NoError(t, db.Create(&fb).Error)

	w := performRequest(router, "DELETE", "/api/feedback/"+fb.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Feedback deleted successfully", resp.Message)

	// second delete reports not-found
	w = performRequest(router, "DELETE", "/api/feedback/"+fb.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFeedbackEndpointMalformedID(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, "DELETE", "/api/feedback/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Feedback Collector API is running!", resp.Message)
	assert.NotEmpty(t, resp.Timestamp)
}
