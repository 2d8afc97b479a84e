package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewMediaRepository(db *gorm.DB) contract.MediaRepository {
	return &MediaRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *MediaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MediaRepositoryImpl) Create(ctx context.Context, media *entity.Media) error {
	m := r.mapper.ToModel(media)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*media = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error) {
	var m model.Media
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MediaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error) {
	var models []*model.Media
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Media, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Media{}, "id = ?", id).Error
}

func (r *MediaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Media{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
