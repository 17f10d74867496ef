package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email          string    `gorm:"type:text;uniqueIndex" json:"email"`
	Username       string    `gorm:"type:text;uniqueIndex" json:"username"`
	HashedPassword string    `gorm:"type:text" json:"-"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsAdmin        bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (u *User) TableName() string {
	return "users"
}
