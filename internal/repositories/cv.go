package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type CVRepository interface {
	Create(cv *models.CV) error
	FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.CV, error)
	FindByIDsAndOwner(ids []uuid.UUID, ownerID string) ([]models.CV, error)
	FindAllByOwner(ownerID string) ([]models.CV, error)
	Delete(id uuid.UUID, ownerID string) error
	CountByOwner(ownerID string) (int64, error)
	Count() (int64, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(cv *models.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}

// FindByIDAndOwner implements CVRepository.
func (r *cvRepository) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.CV, error) {
	var cv models.CV
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&cv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cv %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &cv, nil
}

// FindByIDsAndOwner implements CVRepository. Ids not owned by ownerID are
// simply absent from the result; the caller decides whether that is fatal.
func (r *cvRepository) FindByIDsAndOwner(ids []uuid.UUID, ownerID string) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.Where("id IN ? AND owner_id = ?", ids, ownerID).Find(&cvs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cvs: %w", err)
	}
	return cvs, nil
}

// FindAllByOwner implements CVRepository.
func (r *cvRepository) FindAllByOwner(ownerID string) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&cvs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	return cvs, nil
}

// Delete implements CVRepository.
func (r *cvRepository) Delete(id uuid.UUID, ownerID string) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.CV{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cv: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cv %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// CountByOwner implements CVRepository.
func (r *cvRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CV{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cvs: %w", err)
	}
	return count, nil
}

// Count implements CVRepository.
func (r *cvRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.CV{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cvs: %w", err)
	}
	return count, nil
}
