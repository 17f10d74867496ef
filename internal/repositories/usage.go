package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type UsageRepository interface {
	Log(usage *models.APIUsage) error
	CountSince(clientID string, since time.Time) (int64, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

// Log implements UsageRepository.
func (r *usageRepository) Log(usage *models.APIUsage) error {
	if err := r.db.Create(usage).Error; err != nil {
		return fmt.Errorf("failed to log api usage: %w", err)
	}
	return nil
}

// CountSince implements UsageRepository. Drives the per-client hourly cap.
func (r *usageRepository) CountSince(clientID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.APIUsage{}).
		Where("client_id = ? AND request_time >= ?", clientID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count api usage: %w", err)
	}
	return count, nil
}
