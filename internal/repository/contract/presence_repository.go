package contract

import (
	"context"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
)

// PresenceRepository tracks one record per active realtime connection,
// keyed by user and connection id.
type PresenceRepository interface {
	Save(ctx context.Context, record *entity.Presence) error
	Exists(ctx context.Context, userId uuid.UUID, connectionId string) (bool, error)
	Delete(ctx context.Context, userId uuid.UUID, connectionId string) error
}
