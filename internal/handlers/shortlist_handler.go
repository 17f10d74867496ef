package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

type ShortlistHandler struct {
	shortlistRepo    repositories.ShortlistRepository
	shortlistService services.ShortlistService
	authCfg          config.AuthConfig
}

func NewShortlistHandler(
	shortlistRepo repositories.ShortlistRepository,
	shortlistService services.ShortlistService,
	authCfg config.AuthConfig,
) *ShortlistHandler {
	return &ShortlistHandler{
		shortlistRepo:    shortlistRepo,
		shortlistService: shortlistService,
		authCfg:          authCfg,
	}
}

// HandleRun handles POST /shortlists. The full matching run executes
// synchronously; the response is the complete report.
func (h *ShortlistHandler) HandleRun(c *fiber.Ctx) error {
	var req models.CreateShortlistRequest

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

	jobID, err := uuid.Parse(req.JobDescriptionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_description_id format",
		})
	}

	cvIDs := make([]uuid.UUID, 0, len(req.CVIDs))
	for _, raw := range req.CVIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid cv id format: " + raw,
			})
		}
		cvIDs = append(cvIDs, id)
	}

	threshold := h.authCfg.DefaultShortlistThresh
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	caller := middleware.CallerFromCtx(c)

	report, err := h.shortlistService.Run(c.Context(), caller.OwnerID(), jobID, cvIDs, threshold)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleList handles GET /shortlists
func (h *ShortlistHandler) HandleList(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)

	shortlists, err := h.shortlistRepo.FindAllByOwner(caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"shortlists": shortlists,
		"total":      len(shortlists),
	})
}

// HandleGet handles GET /shortlists/:id
func (h *ShortlistHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid shortlist id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	shortlist, err := h.shortlistRepo.FindByIDAndOwner(id, caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(shortlist)
}

// HandleReport handles GET /shortlists/:id/report. Rebuilds the report
// from the persisted run without re-invoking any model.
func (h *ShortlistHandler) HandleReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid shortlist id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	report, err := h.shortlistService.Report(c.Context(), caller.OwnerID(), id)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleDelete handles DELETE /shortlists/:id
func (h *ShortlistHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid shortlist id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	if err := h.shortlistRepo.Delete(id, caller.OwnerID()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Shortlist deleted",
		"id":      id.String(),
	})
}
