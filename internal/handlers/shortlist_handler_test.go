package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/models"
)

// stubShortlistService captures the arguments HandleRun forwards.
type stubShortlistService struct {
	runThreshold float64
	runCVIDs     []uuid.UUID
	runCalls     int
}

func (s *stubShortlistService) ProcessCVUpload(context.Context, string, []byte, string, string) (*models.CV, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubShortlistService) ProcessJobDescription(context.Context, string, *models.CreateJobRequest) (*models.JobDescription, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubShortlistService) UpdateJobDescription(context.Context, string, uuid.UUID, *models.UpdateJobRequest) (*models.JobDescription, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubShortlistService) Run(_ context.Context, _ string, _ uuid.UUID, cvIDs []uuid.UUID, threshold float64) (*models.ShortlistReport, error) {
	s.runCalls++
	s.runCVIDs = cvIDs
	s.runThreshold = threshold
	return &models.ShortlistReport{Threshold: threshold}, nil
}

func (s *stubShortlistService) Report(context.Context, string, uuid.UUID) (*models.ShortlistReport, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubShortlistService) DeleteCV(context.Context, string, uuid.UUID) (*models.CV, error) {
	return nil, fmt.Errorf("not implemented")
}

func newShortlistTestApp(service *stubShortlistService) *fiber.App {
	handler := NewShortlistHandler(nil, service, config.AuthConfig{
		DefaultShortlistThresh: 0.6,
	})

	app := fiber.New()
	app.Post("/shortlists", handler.HandleRun)
	return app
}

func postShortlist(t *testing.T, app *fiber.App, body string) int {
	t.Helper()

	req := httptest.NewRequest("POST", "/shortlists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHandleRunOmittedThresholdUsesDefault(t *testing.T) {
	service := &stubShortlistService{}
	app := newShortlistTestApp(service)

	body := fmt.Sprintf(`{"job_description_id": %q, "cv_ids": [%q]}`, uuid.New(), uuid.New())

	status := postShortlist(t, app, body)
	assert.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, 1, service.runCalls)
	assert.Equal(t, 0.6, service.runThreshold)
}

func TestHandleRunExplicitZeroThresholdKept(t *testing.T) {
	service := &stubShortlistService{}
	app := newShortlistTestApp(service)

	// 0.0 is a valid threshold, not a request for the default.
	body := fmt.Sprintf(`{"job_description_id": %q, "cv_ids": [%q], "threshold": 0.0}`, uuid.New(), uuid.New())

	status := postShortlist(t, app, body)
	assert.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, 1, service.runCalls)
	assert.Equal(t, 0.0, service.runThreshold)
}

func TestHandleRunExplicitThresholdKept(t *testing.T) {
	service := &stubShortlistService{}
	app := newShortlistTestApp(service)

	body := fmt.Sprintf(`{"job_description_id": %q, "cv_ids": [%q], "threshold": 0.25}`, uuid.New(), uuid.New())

	status := postShortlist(t, app, body)
	assert.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, 1, service.runCalls)
	assert.Equal(t, 0.25, service.runThreshold)
}

func TestHandleRunInvalidBody(t *testing.T) {
	service := &stubShortlistService{}
	app := newShortlistTestApp(service)

	assert.Equal(t, fiber.StatusBadRequest, postShortlist(t, app, `{"cv_ids": []}`))
	assert.Equal(t, fiber.StatusBadRequest, postShortlist(t, app, `{"job_description_id": "not-a-uuid", "cv_ids": ["also-not"]}`))
	assert.Zero(t, service.runCalls)
}
