package models

import (
	"time"

	"github.com/google/uuid"
)

type JobDescription struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID         string     `gorm:"type:text;index" json:"owner_id"`
	Title           string     `gorm:"type:text" json:"title"`
	Summary         string     `gorm:"type:text" json:"summary"`
	KeyRequirements StringList `gorm:"type:jsonb" json:"key_requirements"`
	Content         string     `gorm:"type:text" json:"content"`
	CreatedAt       time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (j *JobDescription) TableName() string {
	return "job_descriptions"
}
