package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SentimentPrediction struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Prompt    string         `gorm:"type:text;not null"`
	Result    datatypes.JSON `gorm:"type:jsonb"`
	Source    string         `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (SentimentPrediction) TableName() string {
	return "sentiment_predictions"
}
