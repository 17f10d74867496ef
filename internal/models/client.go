package models

import (
	"time"

	"github.com/google/uuid"
)

// APIClient is an OAuth2 client-credentials consumer. The plain secret is
// returned exactly once at creation; only its hash is stored.
type APIClient struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID         string     `gorm:"type:text;uniqueIndex" json:"client_id"`
	SecretHash       string     `gorm:"type:text" json:"-"`
	Name             string     `gorm:"type:text" json:"name"`
	Description      string     `gorm:"type:text" json:"description"`
	Scopes           StringList `gorm:"type:jsonb" json:"scopes"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RateLimitPerHour int        `gorm:"default:1000" json:"rate_limit_per_hour"`
	LastUsedAt       *time.Time `gorm:"type:timestamp" json:"last_used_at,omitempty"`
	CreatedBy        uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (c *APIClient) TableName() string {
	return "api_clients"
}

// AccessToken is an opaque bearer token issued to an APIClient. Stored as a
// SHA-256 hash; the token itself never touches the database.
type AccessToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TokenHash  string     `gorm:"type:text;uniqueIndex" json:"-"`
	ClientID   string     `gorm:"type:text;index" json:"client_id"`
	Scopes     StringList `gorm:"type:jsonb" json:"scopes"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	ExpiresAt  time.Time  `gorm:"type:timestamp" json:"expires_at"`
	LastUsedAt *time.Time `gorm:"type:timestamp" json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (t *AccessToken) TableName() string {
	return "access_tokens"
}

// APIUsage is one logged API request, used for analytics and the
// per-client hourly rate cap.
type APIUsage struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID       string    `gorm:"type:text;index" json:"client_id"`
	Endpoint       string    `gorm:"type:text" json:"endpoint"`
	Method         string    `gorm:"type:text" json:"method"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	IPAddress      string    `gorm:"type:text" json:"ip_address"`
	RequestTime    time.Time `gorm:"type:timestamp;index;default:now()" json:"request_time"`
}

func (u *APIUsage) TableName() string {
	return "api_usage"
}
