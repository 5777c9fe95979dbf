package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Valid feedback categories
const (
	CategoryGeneral    = "general"
	CategoryBug        = "bug"
	CategoryFeature    = "feature"
	CategoryComplaint  = "complaint"
	CategoryCompliment = "compliment"
)

// Categories lists every valid feedback category.
var Categories = []string{
	CategoryGeneral,
	CategoryBug,
	CategoryFeature,
	CategoryComplaint,
	CategoryCompliment,
}

// DefaultRating is applied when a submission omits the rating.
const DefaultRating = 5

// Feedback is a single feedback submission. JSON keys are camelCase to match
// the wire contract the dashboard consumes.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Rating    int       `gorm:"default:5" json:"rating"`
	Category  string    `gorm:"default:'general';index" json:"category"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}

// BeforeCreate assigns the record id so the model works on any gorm dialect.
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ValidCategory reports whether c is one of the fixed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
