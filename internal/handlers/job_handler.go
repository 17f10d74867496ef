package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

type JobHandler struct {
	jobRepo          repositories.JobRepository
	shortlistService services.ShortlistService
}

func NewJobHandler(jobRepo repositories.JobRepository, shortlistService services.ShortlistService) *JobHandler {
	return &JobHandler{
		jobRepo:          jobRepo,
		shortlistService: shortlistService,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest

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

	job, err := h.shortlistService.ProcessJobDescription(c.Context(), caller.OwnerID(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)

	jobs, err := h.jobRepo.FindAllByOwner(caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	job, err := h.jobRepo.FindByIDAndOwner(id, caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(job)
}

// HandleUpdate handles PUT /jobs/:id
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	var req models.UpdateJobRequest

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

	job, err := h.shortlistService.UpdateJobDescription(c.Context(), caller.OwnerID(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(job)
}

// HandleDelete handles DELETE /jobs/:id
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	if err := h.jobRepo.Delete(id, caller.OwnerID()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job description deleted",
		"id":      id.String(),
	})
}
