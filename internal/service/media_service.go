// FILE: internal/service/media_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/storage"

	"github.com/google/uuid"
)

// ErrMediaNotFound means no media record exists for the given id.
var ErrMediaNotFound = errors.New("media not found")

const mediaURLExpiry = 15 * time.Minute

type IMediaService interface {
	Upload(ctx context.Context, req *dto.UploadMediaRequest, file *multipart.FileHeader) (*dto.MediaResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MediaResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[dto.MediaResponse], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaService struct {
	uowFactory unitofwork.RepositoryFactory
	store      storage.Storage
	log        logger.ILogger
}

func NewMediaService(uowFactory unitofwork.RepositoryFactory, store storage.Storage, log logger.ILogger) IMediaService {
	return &mediaService{
		uowFactory: uowFactory,
		store:      store,
		log:        log,
	}
}

func (s *mediaService) Upload(ctx context.Context, req *dto.UploadMediaRequest, file *multipart.FileHeader) (*dto.MediaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	id := uuid.New()
	key := fmt.Sprintf("media/%s%s", id, filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := s.store.Write(ctx, key, src, file.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	media := entity.Media{
		Id:        id,
		Title:     req.Title,
		Path:      &key,
		CreatedAt: time.Now(),
	}
	media.Description = req.Description

	if err := uow.MediaRepository().Create(ctx, &media); err != nil {
		// Best effort cleanup of the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("media", "failed to remove orphaned object", map[string]interface{}{
				"key":   key,
				"error": delErr.Error(),
			})
		}
		return nil, err
	}

	return s.toResponse(ctx, &media)
}

func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*dto.MediaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	media, err := uow.MediaRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}

	return s.toResponse(ctx, media)
}

func (s *mediaService) List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[dto.MediaResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page = page.Normalize()

	total, err := uow.MediaRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	records, err := uow.MediaRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: page.Size, Offset: page.Offset()},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MediaResponse, 0, len(records))
	for _, media := range records {
		res, err := s.toResponse(ctx, media)
		if err != nil {
			return nil, err
		}
		items = append(items, *res)
	}

	return &dto.PageResponse[dto.MediaResponse]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	media, err := uow.MediaRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}

	if media.Path != nil {
		if err := s.store.Delete(ctx, *media.Path); err != nil {
			return err
		}
	}

	return uow.MediaRepository().Delete(ctx, id)
}

func (s *mediaService) toResponse(ctx context.Context, media *entity.Media) (*dto.MediaResponse, error) {
	var link string
	if media.Path != nil {
		url, err := s.store.GetURL(ctx, *media.Path, mediaURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve media link: %w", err)
		}
		link = url
	}

	return &dto.MediaResponse{
		Id:          media.Id,
		Title:       media.Title,
		Description: media.Description,
		Link:        link,
		CreatedAt:   media.CreatedAt,
	}, nil
}
