package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID
	Email     string
	IsActive  bool
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
