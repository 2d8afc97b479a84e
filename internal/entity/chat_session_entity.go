package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is owned exclusively by its creating user. Title stays nil until
// the first user message arrives, then holds a derived prefix of that message
// and is never auto-overwritten again.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     *string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
