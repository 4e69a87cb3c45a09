package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Topic is one persisted generation result. Rows are written once by the
// generation service and never updated afterwards; the only mutation is
// deletion.
type Topic struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string         `gorm:"column:title;not null;index" json:"title"`
	Subject          string         `gorm:"column:subject" json:"subject"`
	Difficulty       string         `gorm:"column:difficulty;index" json:"difficulty"`
	ContentType      string         `gorm:"column:content_type;index" json:"content_type"`
	GeneratedContent datatypes.JSON `gorm:"column:generated_content" json:"generated_content"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Topic) TableName() string { return "topic" }
