package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type ClientRepository interface {
	Create(client *models.APIClient) error
	FindByClientID(clientID string) (*models.APIClient, error)
	FindAll() ([]models.APIClient, error)
	Update(client *models.APIClient) error
	TouchLastUsed(clientID string) error
	Count() (int64, error)
	CountActive() (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create implements ClientRepository.
func (r *clientRepository) Create(client *models.APIClient) error {
	if err := r.db.Create(client).Error; err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}
	return nil
}

// FindByClientID implements ClientRepository.
func (r *clientRepository) FindByClientID(clientID string) (*models.APIClient, error) {
	var client models.APIClient
	if err := r.db.Where("client_id = ?", clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("api client %q: %w", clientID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find api client: %w", err)
	}
	return &client, nil
}

// FindAll implements ClientRepository.
func (r *clientRepository) FindAll() ([]models.APIClient, error) {
	var clients []models.APIClient
	if err := r.db.Order("created_at ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list api clients: %w", err)
	}
	return clients, nil
}

// Update implements ClientRepository.
func (r *clientRepository) Update(client *models.APIClient) error {
	if err := r.db.Save(client).Error; err != nil {
		return fmt.Errorf("failed to update api client: %w", err)
	}
	return nil
}

// TouchLastUsed implements ClientRepository.
func (r *clientRepository) TouchLastUsed(clientID string) error {
	result := r.db.Model(&models.APIClient{}).
		Where("client_id = ?", clientID).
		Update("last_used_at", time.Now())

	if result.Error != nil {
		return fmt.Errorf("failed to update last_used_at: %w", result.Error)
	}
	return nil
}

// Count implements ClientRepository.
func (r *clientRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.APIClient{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count api clients: %w", err)
	}
	return count, nil
}

// CountActive implements ClientRepository.
func (r *clientRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.APIClient{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active api clients: %w", err)
	}
	return count, nil
}
