package dto

import "encoding/json"

type SentimentRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type SentimentResponse struct {
	Prompt string          `json:"prompt"`
	Result json.RawMessage `json:"result"`
}

// PubSubEnvelope is the push-delivery wrapper: {"message": {"data": base64}}.
type PubSubEnvelope struct {
	Message *PubSubMessage `json:"message"`
}

type PubSubMessage struct {
	Data string `json:"data"`
}

// SentimentTask is the decoded task payload published to the worker topic.
type SentimentTask struct {
	Event  string `json:"event"`
	Prompt string `json:"prompt"`
}
