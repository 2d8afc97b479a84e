package implementation

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SentimentPredictionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SentimentMapper
}

func NewSentimentPredictionRepository(db *gorm.DB) contract.SentimentPredictionRepository {
	return &SentimentPredictionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSentimentMapper(),
	}
}

func (r *SentimentPredictionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SentimentPredictionRepositoryImpl) Create(ctx context.Context, prediction *entity.SentimentPrediction) error {
	m := r.mapper.ToModel(prediction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prediction = *r.mapper.ToEntity(m)
	return nil
}

func (r *SentimentPredictionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SentimentPrediction, error) {
	var models []*model.SentimentPrediction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SentimentPrediction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
