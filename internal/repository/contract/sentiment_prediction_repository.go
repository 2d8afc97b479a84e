package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
)

type SentimentPredictionRepository interface {
	Create(ctx context.Context, prediction *entity.SentimentPrediction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SentimentPrediction, error)
}
