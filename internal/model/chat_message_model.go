package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuthorId      *uuid.UUID `gorm:"type:uuid"` // nil for assistant-authored replies
	Role          string     `gorm:"type:varchar(16);not null"`
	Content       string     `gorm:"type:text;not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index"`

	// FK so a message can never reference a missing session.
	Session *ChatSession `gorm:"foreignKey:ChatSessionId;references:Id;constraint:OnDelete:CASCADE"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
