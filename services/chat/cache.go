package chat

import (
	"context"
	"encoding/json"
	"time"

	"brightsite/models"
	"brightsite/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionListCache holds the admin session list between edits so the inbox
// poll doesn't rebuild it from Mongo on every request. Any write to any
// session invalidates the whole list.
type SessionListCache interface {
	Get(ctx context.Context) ([]models.AdminSessionView, bool)
	Set(ctx context.Context, views []models.AdminSessionView)
	Invalidate(ctx context.Context)
}

const sessionListCacheKey = "chat:admin_sessions"

// RedisSessionListCache stores the serialized list in the generic cache DB.
// Every failure degrades to a miss; the cache is never load-bearing.
type RedisSessionListCache struct {
	ttl time.Duration
}

func NewRedisSessionListCache(ttl time.Duration) *RedisSessionListCache {
	return &RedisSessionListCache{ttl: ttl}
}

func (c *RedisSessionListCache) Get(ctx context.Context) ([]models.AdminSessionView, bool) {
	data, err := utils.GetCacheClient().Get(ctx, sessionListCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("session list cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var views []models.AdminSessionView
	if err := json.Unmarshal(data, &views); err != nil {
		utils.GetLogger().Warn("session list cache held unreadable data", zap.Error(err))
		return nil, false
	}
	return views, true
}

func (c *RedisSessionListCache) Set(ctx context.Context, views []models.AdminSessionView) {
	data, err := json.Marshal(views)
	if err != nil {
		utils.GetLogger().Warn("failed to serialize session list for cache", zap.Error(err))
		return
	}
	if err := utils.GetCacheClient().Set(ctx, sessionListCacheKey, data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("session list cache write failed", zap.Error(err))
	}
}

func (c *RedisSessionListCache) Invalidate(ctx context.Context) {
	if err := utils.GetCacheClient().Del(ctx, sessionListCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("session list cache invalidation failed", zap.Error(err))
	}
}
