package middleware

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

const callerLocalKey = "caller"

// Auth resolves the caller identity at the HTTP boundary. Every protected
// route sees a models.Caller in locals; handlers never inspect tokens.
type Auth struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
	usageRepo   repositories.UsageRepository
}

func NewAuth(
	authService services.AuthService,
	userRepo repositories.UserRepository,
	usageRepo repositories.UsageRepository,
) *Auth {
	return &Auth{
		authService: authService,
		userRepo:    userRepo,
		usageRepo:   usageRepo,
	}
}

// RequireCaller authenticates the Bearer token. Opaque client tokens are
// tried first, then the legacy user JWT.
func (a *Auth) RequireCaller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fmt.Errorf("missing bearer token: %w", models.ErrUnauthorized)
		}

		// OAuth2 client access token
		if dbToken, client, err := a.authService.VerifyAccessToken(token); err == nil {
			c.Locals(callerLocalKey, models.Caller{
				Kind:   models.CallerClient,
				Client: client,
				Token:  dbToken,
			})
			return c.Next()
		}

		// Legacy user JWT
		username, err := a.authService.VerifyUserToken(token, "access")
		if err != nil {
			return fmt.Errorf("could not validate credentials: %w", models.ErrUnauthorized)
		}

		user, err := a.userRepo.FindByUsername(username)
		if err != nil || !user.IsActive {
			return fmt.Errorf("could not validate credentials: %w", models.ErrUnauthorized)
		}

		c.Locals(callerLocalKey, models.Caller{
			Kind: models.CallerUser,
			User: user,
		})
		return c.Next()
	}
}

// RequireScope rejects client callers whose token lacks the scope. User
// callers always pass.
func (a *Auth) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFromCtx(c)
		if !caller.HasScope(scope) {
			return fmt.Errorf("%w: insufficient scope, required: %s", models.ErrForbidden, scope)
		}
		return c.Next()
	}
}

// RequireAdmin restricts a route to admin users.
func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFromCtx(c)
		if !caller.IsAdmin() {
			return fmt.Errorf("%w: admin privileges required", models.ErrForbidden)
		}
		return c.Next()
	}
}

// TrackUsage enforces the per-client hourly request cap and logs one usage
// row per client request. User traffic is neither capped nor logged here.
func (a *Auth) TrackUsage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFromCtx(c)
		if caller.Kind != models.CallerClient || caller.Client == nil {
			return c.Next()
		}

		oneHourAgo := time.Now().Add(-1 * time.Hour)
		count, err := a.usageRepo.CountSince(caller.Client.ClientID, oneHourAgo)
		if err != nil {
			return err
		}
		if count >= int64(caller.Client.RateLimitPerHour) {
			return fmt.Errorf("%w: %d requests/hour", models.ErrRateLimited, caller.Client.RateLimitPerHour)
		}

		start := time.Now()
		err = c.Next()

		// The app error handler runs after this middleware, so a returned
		// error has not been written to the response yet.
		status := c.Response().StatusCode()
		if err != nil {
			status = statusForError(err)
		}

		usage := &models.APIUsage{
			ID:             uuid.New(),
			ClientID:       caller.Client.ClientID,
			Endpoint:       c.Path(),
			Method:         c.Method(),
			StatusCode:     status,
			ResponseTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
			IPAddress:      c.IP(),
			RequestTime:    start,
		}
		if logErr := a.usageRepo.Log(usage); logErr != nil {
			log.Printf("⚠️  Failed to log api usage: %v\n", logErr)
		}

		return err
	}
}

// statusForError mirrors the app-level error handler's sentinel mapping.
func statusForError(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}

	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrNoTextContent), errors.Is(err, models.ErrNoCandidates):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, models.ErrProvider):
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

// CallerFromCtx returns the caller resolved by RequireCaller. Zero value
// when the route is unprotected.
func CallerFromCtx(c *fiber.Ctx) models.Caller {
	caller, _ := c.Locals(callerLocalKey).(models.Caller)
	return caller
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
