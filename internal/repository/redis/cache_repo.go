package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/match-backend/pkg/clients"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo хранит готовые ранжированные списки по целевой сущности.
// Кэш вспомогательный: любая ошибка чтения трактуется как промах.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.MatchResultConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.MatchResultConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetMatches возвращает закэшированный список, (nil, nil) при промахе
func (c *CacheRepo) GetMatches(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.MatchResult, error) {
	data, err := c.client.Client.Get(ctx, c.matchKey(entityType, entityID)).Bytes()
	if err == r.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.MatchResultRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), c.matchKey(entityType, entityID)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return c.conv.ToArrEntity(models), nil
}

// SetMatches кэширует список с TTL из конфигурации.
// Ошибки записи логируются и не прерывают вызывающего.
func (c *CacheRepo) SetMatches(ctx context.Context, entityType domain.EntityType, entityID int64, results []domain.MatchResult) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(results))
	if err != nil {
		c.logger.Warnf("Failed to marshal matches for caching (%s %d): %v", entityType, entityID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, c.matchKey(entityType, entityID), data, c.cfg.MatchTTL).Err(); err != nil {
		c.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteMatches инвалидирует список целевой сущности
func (c *CacheRepo) DeleteMatches(ctx context.Context, entityType domain.EntityType, entityID int64) error {
	if err := c.client.Client.Del(ctx, c.matchKey(entityType, entityID)).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// matchKey возвращает Redis-ключ списка для целевой сущности
func (c *CacheRepo) matchKey(entityType domain.EntityType, entityID int64) string {
	return fmt.Sprintf("matches:%s:%d", strings.ToLower(string(entityType)), entityID)
}
