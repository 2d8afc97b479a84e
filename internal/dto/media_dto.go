package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadMediaRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

type MediaResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}
