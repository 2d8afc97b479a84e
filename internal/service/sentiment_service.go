// FILE: internal/service/sentiment_service.go
package service

import (
	"context"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/sentiment"

	"github.com/google/uuid"
)

type ISentimentService interface {
	Predict(ctx context.Context, req *dto.SentimentRequest) (*dto.SentimentResponse, error)
	PredictAndStore(ctx context.Context, prompt, source string) (*dto.SentimentResponse, error)
}

type sentimentService struct {
	uowFactory unitofwork.RepositoryFactory
	client     *sentiment.Client
	log        logger.ILogger
}

func NewSentimentService(uowFactory unitofwork.RepositoryFactory, client *sentiment.Client, log logger.ILogger) ISentimentService {
	return &sentimentService{
		uowFactory: uowFactory,
		client:     client,
		log:        log,
	}
}

// Predict runs the model synchronously without persisting the result. Used
// by the direct API endpoint.
func (s *sentimentService) Predict(ctx context.Context, req *dto.SentimentRequest) (*dto.SentimentResponse, error) {
	if !s.client.Available() {
		return nil, ErrModelUnavailable
	}

	result, err := s.client.Predict(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}

	return &dto.SentimentResponse{
		Prompt: req.Prompt,
		Result: result,
	}, nil
}

// PredictAndStore runs the model and records the prediction. Used by the
// pub/sub worker path.
func (s *sentimentService) PredictAndStore(ctx context.Context, prompt, source string) (*dto.SentimentResponse, error) {
	if !s.client.Available() {
		return nil, ErrModelUnavailable
	}

	result, err := s.client.Predict(ctx, prompt)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	prediction := entity.SentimentPrediction{
		Id:        uuid.New(),
		Prompt:    prompt,
		Result:    result,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if err := uow.SentimentPredictionRepository().Create(ctx, &prediction); err != nil {
		return nil, err
	}

	return &dto.SentimentResponse{
		Prompt: prompt,
		Result: result,
	}, nil
}
