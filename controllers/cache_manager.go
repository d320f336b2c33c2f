package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learnhub-backend/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	LessonListCachePrefix = "lessons:v:"
	CacheVersionKey       = "lessons:version"

	DefaultCacheTTL = 5 * time.Minute
)

// CacheManager handles the Redis caching of the lesson catalog.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetLessonList retrieves a cached lesson list for the given search query.
// An empty query addresses the full catalog.
func (cm *CacheManager) GetLessonList(ctx context.Context, query string) ([]models.Lesson, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cacheKey := cm.listCacheKey(version, query)
	cachedData, err := cm.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var lessons []models.Lesson
	if err := json.Unmarshal([]byte(cachedData), &lessons); err != nil {
		zap.L().Warn("Failed to unmarshal cached lesson list", zap.Error(err))
		return nil, false
	}

	return lessons, true
}

// SetLessonListAsync caches a lesson list asynchronously.
func (cm *CacheManager) SetLessonListAsync(query string, lessons []models.Lesson) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		cacheKey := cm.listCacheKey(version, query)
		jsonBytes, err := json.Marshal(lessons)
		if err != nil {
			zap.L().Warn("Failed to marshal lesson list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cacheKey, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache lesson list", zap.Error(err))
		}
	}()
}

// Invalidate invalidates all lesson caches by bumping the version
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Info("Lesson cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// InvalidateAsync bumps the cache version without blocking the request.
func (cm *CacheManager) InvalidateAsync() {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.Invalidate(bgCtx); err != nil {
			zap.L().Warn("Failed to invalidate lesson cache", zap.Error(err))
		}
	}()
}

// getCacheVersion retrieves the current cache version with retry logic
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			// Initialize version key if it doesn't exist
			if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (cm *CacheManager) listCacheKey(version int64, query string) string {
	return fmt.Sprintf("%s%d:q:%s", LessonListCachePrefix, version, query)
}
