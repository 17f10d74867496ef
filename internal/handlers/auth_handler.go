package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/services"
)

var validate = validator.New()

type AuthHandler struct {
	authService services.AuthService
	authCfg     config.AuthConfig
}

func NewAuthHandler(authService services.AuthService, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authCfg:     authCfg,
	}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.authService.RegisterUser(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.authService.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		return err
	}

	access, refresh, err := h.authService.CreateUserTokens(user.Username)
	if err != nil {
		return err
	}

	return c.JSON(models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// HandleRefresh handles POST /auth/refresh
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req models.RefreshRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	username, err := h.authService.VerifyUserToken(req.RefreshToken, "refresh")
	if err != nil {
		return err
	}

	access, refresh, err := h.authService.CreateUserTokens(username)
	if err != nil {
		return err
	}

	return c.JSON(models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// HandleClientToken handles POST /auth/token, the OAuth2 client credentials
// grant. Credentials come from the form body per RFC 6749.
func (h *AuthHandler) HandleClientToken(c *fiber.Ctx) error {
	grantType := c.FormValue("grant_type")
	if grantType != "client_credentials" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":             "unsupported_grant_type",
			"error_description": "Only client_credentials grant is supported",
		})
	}

	clientID := c.FormValue("client_id")
	clientSecret := c.FormValue("client_secret")
	if clientID == "" || clientSecret == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":             "invalid_request",
			"error_description": "client_id and client_secret are required",
		})
	}

	client, err := h.authService.VerifyClientCredentials(clientID, clientSecret)
	if err != nil {
		return err
	}

	var scopes []string
	if raw := c.FormValue("scope"); raw != "" {
		scopes = strings.Fields(raw)
	}

	token, dbToken, err := h.authService.IssueClientToken(client, scopes)
	if err != nil {
		return err
	}

	return c.JSON(models.ClientCredentialsTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.authCfg.ClientTokenExpirySecs,
		Scope:       strings.Join(dbToken.Scopes, " "),
	})
}

// HandleRevoke handles POST /auth/revoke
func (h *AuthHandler) HandleRevoke(c *fiber.Ctx) error {
	var req models.RevokeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	revoked, err := h.authService.RevokeToken(req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"revoked": revoked,
	})
}

// HandleLogout handles POST /auth/logout. Client tokens are revoked
// server-side; user JWTs are stateless and simply discarded by the caller.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)

	if caller.Kind == models.CallerClient && caller.Token != nil {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 {
			if _, err := h.authService.RevokeToken(strings.TrimSpace(parts[1])); err != nil {
				return err
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// HandleMe handles GET /auth/me
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)

	switch caller.Kind {
	case models.CallerUser:
		return c.JSON(fiber.Map{
			"type": "user",
			"user": caller.User,
		})
	case models.CallerClient:
		return c.JSON(fiber.Map{
			"type":   "client",
			"client": caller.Client,
			"scopes": caller.Token.Scopes,
		})
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Not authenticated",
	})
}
