package memory

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PresenceRepository is the in-process fallback used when Redis is not
// configured (local dev, tests).
type PresenceRepository struct {
	cache *cache.Cache
}

func NewPresenceRepository() contract.PresenceRepository {
	// Default expiration of 24 hours, purge sweep every 10 minutes
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &PresenceRepository{cache: c}
}

func (r *PresenceRepository) key(userId uuid.UUID, connectionId string) string {
	return fmt.Sprintf("user_id:%s:session:%s", userId, connectionId)
}

func (r *PresenceRepository) Save(_ context.Context, record *entity.Presence) error {
	r.cache.Set(r.key(record.UserId, record.ConnectionId), record, cache.DefaultExpiration)
	return nil
}

func (r *PresenceRepository) Exists(_ context.Context, userId uuid.UUID, connectionId string) (bool, error) {
	_, found := r.cache.Get(r.key(userId, connectionId))
	return found, nil
}

func (r *PresenceRepository) Delete(_ context.Context, userId uuid.UUID, connectionId string) error {
	r.cache.Delete(r.key(userId, connectionId))
	return nil
}
