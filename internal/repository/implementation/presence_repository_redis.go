package implementation

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// presenceTTL guards against leaked records from connections that died
// without running cleanup.
const presenceTTL = 24 * time.Hour

type RedisPresenceRepository struct {
	rdb *redis.Client
}

func NewRedisPresenceRepository(rdb *redis.Client) contract.PresenceRepository {
	return &RedisPresenceRepository{rdb: rdb}
}

func presenceKey(userId uuid.UUID, connectionId string) string {
	return fmt.Sprintf("user_id:%s:session:%s", userId, connectionId)
}

func (r *RedisPresenceRepository) Save(ctx context.Context, record *entity.Presence) error {
	key := presenceKey(record.UserId, record.ConnectionId)
	return r.rdb.Set(ctx, key, record.ConnectedAt.Format(time.RFC3339), presenceTTL).Err()
}

func (r *RedisPresenceRepository) Exists(ctx context.Context, userId uuid.UUID, connectionId string) (bool, error) {
	n, err := r.rdb.Exists(ctx, presenceKey(userId, connectionId)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisPresenceRepository) Delete(ctx context.Context, userId uuid.UUID, connectionId string) error {
	return r.rdb.Del(ctx, presenceKey(userId, connectionId)).Err()
}
