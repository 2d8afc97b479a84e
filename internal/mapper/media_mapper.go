package mapper

import (
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ToEntity(md *model.Media) *entity.Media {
	if md == nil {
		return nil
	}

	var updatedAt *time.Time
	if !md.UpdatedAt.IsZero() {
		t := md.UpdatedAt
		updatedAt = &t
	}

	return &entity.Media{
		Id:          md.Id,
		Title:       md.Title,
		Description: md.Description,
		Path:        md.Path,
		CreatedAt:   md.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MediaMapper) ToModel(md *entity.Media) *model.Media {
	if md == nil {
		return nil
	}

	var updatedAt time.Time
	if md.UpdatedAt != nil {
		updatedAt = *md.UpdatedAt
	}

	return &model.Media{
		Id:          md.Id,
		Title:       md.Title,
		Description: md.Description,
		Path:        md.Path,
		CreatedAt:   md.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
