package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feedback-collector/backend/config"
	"github.com/feedback-collector/backend/internal/models"
	"github.com/feedback-collector/backend/internal/server"
	"github.com/feedback-collector/backend/internal/types"
	"github.com/feedback-collector/backend/pkg/client"
)

// setupPostgres starts a throwaway postgres container and returns a migrated
// gorm handle. Skipped when Docker is unavailable.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("SKIP_INTEGRATION set")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("could not start postgres container (is Docker running?): %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, mappedPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feedback{}))

	return db
}

// TestFeedbackLifecycle exercises the full stack against real postgres:
// submit through the client gateway, list with filters, delete, verify.
func TestFeedbackLifecycle(t *testing.T) {
	db := setupPostgres(t)
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:     "localhost",
		ServerPort:     "8080",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	srv := server.New(cfg, db, zap.NewNop().Sugar())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	api := client.New(ts.URL)
	ctx := context.Background()

	// create three submissions across categories
	for i, category := range []string{"bug", "general", "bug"} {
		_, err := api.Create(ctx, client.CreateParams{
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Message:  "a sufficiently long integration test message",
			Category: category,
		})
		require.NoError(t, err)
	}

	// unfiltered list sees all three, newest first
	all, err := api.List(ctx, client.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	require.Len(t, all.Feedback, 3)
	assert.Equal(t, "User 2", all.Feedback[0].Name)
	assert.Equal(t, 5, all.Feedback[0].Rating)

	// category filter narrows the set and its pagination figures
	bugs, err := api.List(ctx, client.ListParams{Category: "bug"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bugs.Total)
	for _, fb := range bugs.Feedback {
		assert.Equal(t, "bug", fb.Category)
	}

	// search matches across fields case-insensitively
	found, err := api.List(ctx, client.ListParams{Search: "USER 1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Total)

	// delete one record; it disappears from subsequent lists
	target := all.Feedback[0].ID
	require.NoError(t, api.Delete(ctx, target))

	remaining, err := api.List(ctx, client.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining.Total)
	for _, fb := range remaining.Feedback {
		assert.NotEqual(t, target, fb.ID)
	}

	// a second delete of the same id reports not-found
	err = api.Delete(ctx, target)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

// TestValidationRoundTrip confirms the server rejects an invalid submission
// with the full error list and persists nothing.
func TestValidationRoundTrip(t *testing.T) {
	db := setupPostgres(t)
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:     "localhost",
		ServerPort:     "8080",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	srv := server.New(cfg, db, zap.NewNop().Sugar())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body, _ := json.Marshal(map[string]string{
		"name":    "x",
		"email":   "not-an-email",
		"message": "short",
	})
	resp, err := http.Post(ts.URL+"/api/feedback", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload types.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Errors, 3)

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
