package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/util"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetSummary(ctx context.Context, summary *model.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return util.LogError("ошибка сериализации записи", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(summary.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetSummary(ctx context.Context, uuid string) (*model.Summary, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения записи из Redis", err)
	}

	var summary model.Summary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, util.LogError("ошибка десериализации записи из кэша", err)
	}
	return &summary, nil
}

func (r *CacheRepository) DeleteSummary(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления записи из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("summary:%s", uuid)
}
