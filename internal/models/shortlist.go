package models

import (
	"time"

	"github.com/google/uuid"
)

// Shortlist is one invocation of the matching pipeline. Immutable once
// created; deleting it cascades to its results.
type Shortlist struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID          string            `gorm:"type:text;index" json:"owner_id"`
	JobDescriptionID uuid.UUID         `gorm:"type:uuid;not null" json:"job_description_id"`
	Threshold        float64           `gorm:"default:0.6" json:"threshold"`
	CreatedAt        time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	Results          []ShortlistResult `gorm:"foreignKey:ShortlistID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
}

func (s *Shortlist) TableName() string {
	return "shortlists"
}

// ShortlistResult is the assessment of one CV within one run. Created once
// per (shortlist, CV) pair and never mutated.
type ShortlistResult struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ShortlistID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"shortlist_id"`
	CVID           uuid.UUID  `gorm:"type:uuid;not null" json:"cv_id"`
	Position       int        `gorm:"not null;default:0" json:"-"`
	Score          float64    `json:"score"`
	MatchSummary   string     `gorm:"type:text" json:"match_summary"`
	Strengths      StringList `gorm:"type:jsonb" json:"strengths"`
	Gaps           StringList `gorm:"type:jsonb" json:"gaps"`
	Reasoning      string     `gorm:"type:text" json:"reasoning"`
	Recommendation string     `gorm:"type:text" json:"recommendation"`
	CreatedAt      time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	CV *CV `gorm:"foreignKey:CVID" json:"cv,omitempty"`
}

func (r *ShortlistResult) TableName() string {
	return "shortlist_results"
}
