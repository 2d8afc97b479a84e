package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
