package service

import (
	"bamboo/internal/pkg/consts"
	"bamboo/internal/pkg/redis"
	"context"
	"time"
)

const feedCacheTTL = 5 * time.Minute

// redisLocker 把编号互斥锁落在 Redis 上
type redisLocker struct{}

func NewRedisNumberLocker() NumberLocker {
	return redisLocker{}
}

func (redisLocker) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	return redis.TryLock(ctx, key, value, expiration, retryTimes)
}

func (redisLocker) UnLock(ctx context.Context, key string, value interface{}) {
	redis.UnLock(ctx, key, value)
}

// redisFeedCache RSS 渲染结果的 Redis 缓存
type redisFeedCache struct{}

func NewRedisFeedCache() FeedCache {
	return redisFeedCache{}
}

func (redisFeedCache) Get(ctx context.Context) (string, error) {
	return redis.GetValue(ctx, consts.FeedCacheKey)
}

func (redisFeedCache) Set(ctx context.Context, xml string) error {
	return redis.SetWithExpiration(ctx, consts.FeedCacheKey, xml, feedCacheTTL)
}
