package types

import (
	"time"

	"github.com/google/uuid"
)

// AICallLog records one upstream completion call for cost and latency
// inspection. Written best-effort; a failed insert never fails the call.
type AICallLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Model            string    `gorm:"column:model;index" json:"model"`
	Tier             string    `gorm:"column:tier" json:"tier"`
	LatencyMS        int64     `gorm:"column:latency_ms" json:"latency_ms"`
	PromptTokens     int       `gorm:"column:prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int       `gorm:"column:completion_tokens" json:"completion_tokens"`
	Failed           bool      `gorm:"column:failed;index" json:"failed"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }
