package models

import (
	"time"

	"github.com/google/uuid"
)

type CV struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID        string       `gorm:"type:text;index" json:"owner_id"`
	Filename       string       `gorm:"type:text" json:"filename"`
	StoredFilename string       `gorm:"type:text" json:"-"`
	CandidateName  *string      `gorm:"type:text" json:"candidate_name"`
	ContactInfo    *ContactInfo `gorm:"type:jsonb" json:"contact_info"`
	Content        string       `gorm:"type:text" json:"content"`
	Embedding      Vector       `gorm:"type:jsonb" json:"-"`
	CreatedAt      time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (c *CV) TableName() string {
	return "cvs"
}
