package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type ShortlistRepository interface {
	CreateRun(shortlist *models.Shortlist, results []models.ShortlistResult) error
	FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.Shortlist, error)
	FindAllByOwner(ownerID string) ([]models.Shortlist, error)
	Delete(id uuid.UUID, ownerID string) error
	CountByOwner(ownerID string) (int64, error)
	Count() (int64, error)
}

type shortlistRepository struct {
	db *gorm.DB
}

func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

// CreateRun implements ShortlistRepository. The shortlist row and all its
// result rows commit in one transaction; a failure leaves nothing behind.
func (r *shortlistRepository) CreateRun(shortlist *models.Shortlist, results []models.ShortlistResult) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shortlist).Error; err != nil {
			return fmt.Errorf("failed to create shortlist: %w", err)
		}

		for i := range results {
			results[i].ShortlistID = shortlist.ID
		}

		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return fmt.Errorf("failed to create shortlist results: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist shortlist run: %w", err)
	}
	return nil
}

// FindByIDAndOwner implements ShortlistRepository. Results come preloaded
// with their CVs in insertion order.
func (r *shortlistRepository) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.Shortlist, error) {
	var shortlist models.Shortlist
	err := r.db.
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("shortlist_results.position ASC")
		}).
		Preload("Results.CV").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&shortlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shortlist %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find shortlist: %w", err)
	}
	return &shortlist, nil
}

// FindAllByOwner implements ShortlistRepository.
func (r *shortlistRepository) FindAllByOwner(ownerID string) ([]models.Shortlist, error) {
	var shortlists []models.Shortlist
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&shortlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlists: %w", err)
	}
	return shortlists, nil
}

// Delete implements ShortlistRepository. Removes the run and its results;
// other runs' results are untouched.
func (r *shortlistRepository) Delete(id uuid.UUID, ownerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var shortlist models.Shortlist
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&shortlist).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("shortlist %s: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to find shortlist: %w", err)
		}

		if err := tx.Where("shortlist_id = ?", id).Delete(&models.ShortlistResult{}).Error; err != nil {
			return fmt.Errorf("failed to delete shortlist results: %w", err)
		}

		if err := tx.Delete(&shortlist).Error; err != nil {
			return fmt.Errorf("failed to delete shortlist: %w", err)
		}

		return nil
	})
}

// CountByOwner implements ShortlistRepository.
func (r *shortlistRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Shortlist{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count shortlists: %w", err)
	}
	return count, nil
}

// Count implements ShortlistRepository.
func (r *shortlistRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Shortlist{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count shortlists: %w", err)
	}
	return count, nil
}
