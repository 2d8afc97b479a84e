package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SentimentPrediction records the raw model output for a prompt, written by
// the pub/sub consumer worker.
type SentimentPrediction struct {
	Id        uuid.UUID
	Prompt    string
	Result    json.RawMessage
	Source    string // "api" | "pubsub"
	CreatedAt time.Time
}
