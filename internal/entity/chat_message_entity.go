package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created. AuthorId is nil for assistant
// messages; ordering inside a session is by CreatedAt ascending.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	AuthorId      *uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
}
