// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	sentimentService ISentimentService
	log              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sentimentService ISentimentService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		sentimentService: sentimentService,
		log:              log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var task dto.SentimentTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		cs.log.Error("consumer", "failed to unmarshal sentiment task", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if task.Prompt == "" {
		cs.log.Warn("consumer", "sentiment task has empty prompt, skipping", nil)
		msg.Ack()
		return
	}

	_, err := cs.sentimentService.PredictAndStore(ctx, task.Prompt, "pubsub")
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			// No model server configured, retrying is pointless.
			cs.log.Warn("consumer", "sentiment model unavailable, dropping task", nil)
			msg.Ack()
			return
		}
		cs.log.Error("consumer", "sentiment prediction failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "sentiment task processed", map[string]interface{}{
		"event": task.Event,
	})
	msg.Ack()
}
