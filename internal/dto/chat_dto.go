package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}

type UpdateSessionRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    uuid.UUID  `json:"user_id"`
	Title     *string    `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id        uuid.UUID  `json:"id"`
	SessionId uuid.UUID  `json:"session_id"`
	AuthorId  *uuid.UUID `json:"author_id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// SendMessageRequest initiates one chat turn. Role defaults to "user" and is
// the only role accepted from clients.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Role    string `json:"role"`
}

// ChatTurnResponse is the result of one completed turn.
type ChatTurnResponse struct {
	SessionId        uuid.UUID        `json:"session_id"`
	UserMessage      *MessageResponse `json:"user_message"`
	AssistantMessage *MessageResponse `json:"assistant_message"`
}
