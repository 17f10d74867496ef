package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/hirematch/internal/models"
)

type TokenRepository interface {
	Create(token *models.AccessToken) error
	FindActiveByHash(tokenHash string) (*models.AccessToken, error)
	Revoke(tokenHash string) (bool, error)
	TouchLastUsed(tokenHash string) error
	CountActive() (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create implements TokenRepository.
func (r *tokenRepository) Create(token *models.AccessToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	return nil
}

// FindActiveByHash implements TokenRepository. Only unrevoked, unexpired
// tokens resolve.
func (r *tokenRepository) FindActiveByHash(tokenHash string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, time.Now()).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("access token: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find access token: %w", err)
	}
	return &token, nil
}

// Revoke implements TokenRepository. Returns false when no active token
// matched, so revoking twice reports false the second time.
func (r *tokenRepository) Revoke(tokenHash string) (bool, error) {
	result := r.db.Model(&models.AccessToken{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("is_active", false)

	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke access token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// TouchLastUsed implements TokenRepository.
func (r *tokenRepository) TouchLastUsed(tokenHash string) error {
	result := r.db.Model(&models.AccessToken{}).
		Where("token_hash = ?", tokenHash).
		Update("last_used_at", time.Now())

	if result.Error != nil {
		return fmt.Errorf("failed to update token last_used_at: %w", result.Error)
	}
	return nil
}

// CountActive implements TokenRepository.
func (r *tokenRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.AccessToken{}).
		Where("is_active = ? AND expires_at > ?", true, time.Now()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active tokens: %w", err)
	}
	return count, nil
}
