package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
)

type SentimentMapper struct{}

func NewSentimentMapper() *SentimentMapper {
	return &SentimentMapper{}
}

func (m *SentimentMapper) ToModel(p *entity.SentimentPrediction) *model.SentimentPrediction {
	if p == nil {
		return nil
	}

	return &model.SentimentPrediction{
		Id:        p.Id,
		Prompt:    p.Prompt,
		Result:    datatypes.JSON(p.Result),
		Source:    p.Source,
		CreatedAt: p.CreatedAt,
	}
}

func (m *SentimentMapper) ToEntity(p *model.SentimentPrediction) *entity.SentimentPrediction {
	if p == nil {
		return nil
	}

	return &entity.SentimentPrediction{
		Id:        p.Id,
		Prompt:    p.Prompt,
		Result:    []byte(p.Result),
		Source:    p.Source,
		CreatedAt: p.CreatedAt,
	}
}
