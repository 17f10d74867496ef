package middleware

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hirematch/internal/models"
)

type stubAuthService struct {
	verifyAccessToken func(token string) (*models.AccessToken, *models.APIClient, error)
	verifyUserToken   func(token, tokenType string) (string, error)
}

func (s *stubAuthService) RegisterUser(*models.RegisterRequest) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) AuthenticateUser(string, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) CreateUserTokens(string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (s *stubAuthService) VerifyUserToken(token, tokenType string) (string, error) {
	if s.verifyUserToken != nil {
		return s.verifyUserToken(token, tokenType)
	}
	return "", models.ErrUnauthorized
}

func (s *stubAuthService) CreateClient(string, string, []string, int, uuid.UUID) (*models.APIClient, string, error) {
	return nil, "", errors.New("not implemented")
}

func (s *stubAuthService) VerifyClientCredentials(string, string) (*models.APIClient, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) IssueClientToken(*models.APIClient, []string) (string, *models.AccessToken, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubAuthService) VerifyAccessToken(token string) (*models.AccessToken, *models.APIClient, error) {
	if s.verifyAccessToken != nil {
		return s.verifyAccessToken(token)
	}
	return nil, nil, models.ErrUnauthorized
}

func (s *stubAuthService) RevokeToken(string) (bool, error) {
	return false, errors.New("not implemented")
}

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(*models.User) error { return errors.New("not implemented") }

func (s *stubUserRepo) FindByID(uuid.UUID) (*models.User, error) {
	return nil, models.ErrNotFound
}

func (s *stubUserRepo) FindByUsername(username string) (*models.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubUserRepo) FindByEmail(string) (*models.User, error) {
	return nil, models.ErrNotFound
}

func (s *stubUserRepo) Count() (int64, error) { return 0, nil }

type stubUsageRepo struct {
	logged []*models.APIUsage
	count  int64
}

func (s *stubUsageRepo) Log(usage *models.APIUsage) error {
	s.logged = append(s.logged, usage)
	return nil
}

func (s *stubUsageRepo) CountSince(string, time.Time) (int64, error) {
	return s.count, nil
}

func statusFromSentinel(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		code = fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, models.ErrRateLimited):
		code = fiber.StatusTooManyRequests
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func newTestApp(auth *Auth, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: statusFromSentinel})

	handlers := append([]fiber.Handler{auth.RequireCaller()}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		caller := CallerFromCtx(c)
		return c.JSON(fiber.Map{"owner_id": caller.OwnerID()})
	})

	app.Get("/protected", handlers...)
	return app
}

func TestRequireCallerMissingToken(t *testing.T) {
	auth := NewAuth(&stubAuthService{}, &stubUserRepo{}, &stubUsageRepo{})
	app := newTestApp(auth)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireCallerClientToken(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true, RateLimitPerHour: 100}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(raw string) (*models.AccessToken, *models.APIClient, error) {
		if raw == "hm_access_valid" {
			return token, client, nil
		}
		return nil, nil, models.ErrUnauthorized
	}}

	auth := NewAuth(service, &stubUserRepo{}, &stubUsageRepo{})
	app := newTestApp(auth)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireCallerUserJWTFallback(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "jane", IsActive: true}

	service := &stubAuthService{
		verifyUserToken: func(raw, tokenType string) (string, error) {
			if raw == "user-jwt" && tokenType == "access" {
				return "jane", nil
			}
			return "", models.ErrUnauthorized
		},
	}

	auth := NewAuth(service, &stubUserRepo{user: user}, &stubUsageRepo{})
	app := newTestApp(auth)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireCallerInactiveUser(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "jane", IsActive: false}

	service := &stubAuthService{
		verifyUserToken: func(string, string) (string, error) { return "jane", nil },
	}

	auth := NewAuth(service, &stubUserRepo{user: user}, &stubUsageRepo{})
	app := newTestApp(auth)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireScopeRejectsMissingScope(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true, RateLimitPerHour: 100}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(string) (*models.AccessToken, *models.APIClient, error) {
		return token, client, nil
	}}

	auth := NewAuth(service, &stubUserRepo{}, &stubUsageRepo{})
	app := newTestApp(auth, auth.RequireScope(models.ScopeWrite))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminRejectsClient(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead, models.ScopeWrite}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(string) (*models.AccessToken, *models.APIClient, error) {
		return token, client, nil
	}}

	auth := NewAuth(service, &stubUserRepo{}, &stubUsageRepo{})
	app := newTestApp(auth, auth.RequireAdmin())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestTrackUsageRateLimit(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true, RateLimitPerHour: 10}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(string) (*models.AccessToken, *models.APIClient, error) {
		return token, client, nil
	}}

	usageRepo := &stubUsageRepo{count: 10}
	auth := NewAuth(service, &stubUserRepo{}, usageRepo)
	app := newTestApp(auth, auth.TrackUsage())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Empty(t, usageRepo.logged, "rejected requests are not logged")
}

func TestTrackUsageLogsClientRequests(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true, RateLimitPerHour: 100}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(string) (*models.AccessToken, *models.APIClient, error) {
		return token, client, nil
	}}

	usageRepo := &stubUsageRepo{}
	auth := NewAuth(service, &stubUserRepo{}, usageRepo)
	app := newTestApp(auth, auth.TrackUsage())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, usageRepo.logged, 1)
	usage := usageRepo.logged[0]
	assert.Equal(t, "hm_abc", usage.ClientID)
	assert.Equal(t, "/protected", usage.Endpoint)
	assert.Equal(t, "GET", usage.Method)
	assert.Equal(t, fiber.StatusOK, usage.StatusCode)
}

func TestTrackUsageLogsMappedErrorStatus(t *testing.T) {
	client := &models.APIClient{ClientID: "hm_abc", IsActive: true, RateLimitPerHour: 100}
	token := &models.AccessToken{ClientID: "hm_abc", Scopes: models.StringList{models.ScopeRead}, IsActive: true}

	service := &stubAuthService{verifyAccessToken: func(string) (*models.AccessToken, *models.APIClient, error) {
		return token, client, nil
	}}

	usageRepo := &stubUsageRepo{}
	auth := NewAuth(service, &stubUserRepo{}, usageRepo)

	app := fiber.New(fiber.Config{ErrorHandler: statusFromSentinel})
	app.Get("/missing", auth.RequireCaller(), auth.TrackUsage(), func(c *fiber.Ctx) error {
		return fmt.Errorf("cv abc: %w", models.ErrNotFound)
	})

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set("Authorization", "Bearer hm_access_valid")

	_, err := app.Test(req)
	require.NoError(t, err)

	// The usage row carries the status the error maps to, not the
	// pre-error-handler response status.
	require.Len(t, usageRepo.logged, 1)
	assert.Equal(t, fiber.StatusNotFound, usageRepo.logged[0].StatusCode)
}

func TestTrackUsageSkipsUsers(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "jane", IsActive: true}

	service := &stubAuthService{
		verifyUserToken: func(string, string) (string, error) { return "jane", nil },
	}

	usageRepo := &stubUsageRepo{count: 1 << 30}
	auth := NewAuth(service, &stubUserRepo{user: user}, usageRepo)
	app := newTestApp(auth, auth.TrackUsage())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, usageRepo.logged)
}
