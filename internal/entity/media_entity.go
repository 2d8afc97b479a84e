package entity

import (
	"time"

	"github.com/google/uuid"
)

// Media holds metadata of an uploaded object; Path is the storage key and the
// public link is resolved through the storage client at read time.
type Media struct {
	Id          uuid.UUID
	Title       *string
	Description *string
	Path        *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
