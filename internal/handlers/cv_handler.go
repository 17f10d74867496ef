package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

type CVHandler struct {
	cvRepo           repositories.CVRepository
	shortlistService services.ShortlistService
	storageService   services.StorageService
	maxFileSize      int64
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	shortlistService services.ShortlistService,
	storageService services.StorageService,
	maxFileSize int64,
) *CVHandler {
	return &CVHandler{
		cvRepo:           cvRepo,
		shortlistService: shortlistService,
		storageService:   storageService,
		maxFileSize:      maxFileSize,
	}
}

// HandleUpload handles POST /cvs/upload
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Send the CV as multipart field 'file'.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	storedFilename, _, err := h.storageService.SaveFile(data, fileHeader.Filename)
	if err != nil {
		return err
	}

	caller := middleware.CallerFromCtx(c)

	cv, err := h.shortlistService.ProcessCVUpload(c.Context(), caller.OwnerID(), data, fileHeader.Filename, storedFilename)
	if err != nil {
		// Orphaned file cleanup when ingestion fails
		h.storageService.DeleteFile(storedFilename)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cv)
}

// HandleList handles GET /cvs
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)

	cvs, err := h.cvRepo.FindAllByOwner(caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"cvs":   cvs,
		"total": len(cvs),
	})
}

// HandleGet handles GET /cvs/:id
func (h *CVHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	cv, err := h.cvRepo.FindByIDAndOwner(id, caller.OwnerID())
	if err != nil {
		return err
	}

	return c.JSON(cv)
}

// HandleDelete handles DELETE /cvs/:id
func (h *CVHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV id format",
		})
	}

	caller := middleware.CallerFromCtx(c)

	cv, err := h.shortlistService.DeleteCV(c.Context(), caller.OwnerID(), id)
	if err != nil {
		return err
	}

	if cv.StoredFilename != "" {
		h.storageService.DeleteFile(cv.StoredFilename)
	}

	return c.JSON(fiber.Map{
		"message": "CV deleted",
		"id":      cv.ID.String(),
	})
}
