package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type JobRepository interface {
	Create(job *models.JobDescription) error
	FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.JobDescription, error)
	FindAllByOwner(ownerID string) ([]models.JobDescription, error)
	Update(job *models.JobDescription) error
	Delete(id uuid.UUID, ownerID string) error
	CountByOwner(ownerID string) (int64, error)
	Count() (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.JobDescription) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// FindByIDAndOwner implements JobRepository. Ownership is part of the key;
// another caller's job resolves to not-found, never forbidden.
func (r *jobRepository) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.JobDescription, error) {
	var job models.JobDescription
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job description %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &job, nil
}

// FindAllByOwner implements JobRepository.
func (r *jobRepository) FindAllByOwner(ownerID string) ([]models.JobDescription, error) {
	var jobs []models.JobDescription
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jobs, nil
}

// Update implements JobRepository.
func (r *jobRepository) Update(job *models.JobDescription) error {
	if err := r.db.Save(job).Error; err != nil {
		return fmt.Errorf("failed to update job description: %w", err)
	}
	return nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(id uuid.UUID, ownerID string) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.JobDescription{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job description: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job description %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// CountByOwner implements JobRepository.
func (r *jobRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobDescription{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count job descriptions: %w", err)
	}
	return count, nil
}

// Count implements JobRepository.
func (r *jobRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.JobDescription{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count job descriptions: %w", err)
	}
	return count, nil
}
