package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

// ClientHandler manages OAuth2 API client registrations. Admin only.
type ClientHandler struct {
	authService services.AuthService
	clientRepo  repositories.ClientRepository
	authCfg     config.AuthConfig
}

func NewClientHandler(
	authService services.AuthService,
	clientRepo repositories.ClientRepository,
	authCfg config.AuthConfig,
) *ClientHandler {
	return &ClientHandler{
		authService: authService,
		clientRepo:  clientRepo,
		authCfg:     authCfg,
	}
}

// HandleCreate handles POST /clients. The plain secret appears in this
// response and nowhere else.
func (h *ClientHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateClientRequest

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

	caller := middleware.CallerFromCtx(c)

	rateLimit := req.RateLimitPerHour
	if rateLimit <= 0 {
		rateLimit = h.authCfg.DefaultRateLimitPerHr
	}

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = []string{models.ScopeRead, models.ScopeWrite}
	}

	client, secret, err := h.authService.CreateClient(req.Name, req.Description, scopes, rateLimit, caller.User.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.ClientCredentialsResponse{
		Client:       client,
		ClientSecret: secret,
	})
}

// HandleList handles GET /clients
func (h *ClientHandler) HandleList(c *fiber.Ctx) error {
	clients, err := h.clientRepo.FindAll()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"clients": clients,
		"total":   len(clients),
	})
}

// HandleGet handles GET /clients/:client_id
func (h *ClientHandler) HandleGet(c *fiber.Ctx) error {
	client, err := h.clientRepo.FindByClientID(c.Params("client_id"))
	if err != nil {
		return err
	}

	return c.JSON(client)
}

// HandleUpdate handles PATCH /clients/:client_id
func (h *ClientHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateClientRequest

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

	client, err := h.clientRepo.FindByClientID(c.Params("client_id"))
	if err != nil {
		return err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Description != nil {
		client.Description = *req.Description
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if req.RateLimitPerHour != nil {
		client.RateLimitPerHour = *req.RateLimitPerHour
	}

	if err := h.clientRepo.Update(client); err != nil {
		return err
	}

	return c.JSON(client)
}

// HandleDeactivate handles DELETE /clients/:client_id. Clients are
// deactivated rather than deleted so usage history stays intact.
func (h *ClientHandler) HandleDeactivate(c *fiber.Ctx) error {
	client, err := h.clientRepo.FindByClientID(c.Params("client_id"))
	if err != nil {
		return err
	}

	client.IsActive = false
	if err := h.clientRepo.Update(client); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "Client deactivated",
		"client_id": client.ClientID,
	})
}
