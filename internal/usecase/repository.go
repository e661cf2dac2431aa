package usecase

import (
	"context"

	"github.com/DRSN-tech/match-backend/internal/domain"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.MatchProfile) error
	Get(ctx context.Context, entityType domain.EntityType, entityID int64) (*domain.MatchProfile, error)
	GetMany(ctx context.Context, entityType domain.EntityType, ids []int64) ([]domain.MatchProfile, error)
	ListByType(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.MatchProfile, error)
}

type PreferenceRepository interface {
	// ReplaceSet заменяет весь набор критериев сущности целиком
	ReplaceSet(ctx context.Context, entityType domain.EntityType, entityID int64, criteria []domain.PreferenceCriterion) error
	GetSet(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.PreferenceCriterion, error)
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *domain.Embedding) error
	// Get возвращает (nil, nil), если эмбеддинг ещё не вычислен
	Get(ctx context.Context, entityType domain.EntityType, entityID int64, modelVersion string) (*domain.Embedding, error)
}

type VectorIndexRepository interface {
	Upsert(ctx context.Context, embedding *domain.Embedding) error
	SearchNearest(ctx context.Context, entityType domain.EntityType, vector []float32, limit int) ([]int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetMatches возвращает (nil, nil) при отсутствии записи в кэше
	GetMatches(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.MatchResult, error)
	SetMatches(ctx context.Context, entityType domain.EntityType, entityID int64, results []domain.MatchResult) error
	DeleteMatches(ctx context.Context, entityType domain.EntityType, entityID int64) error
}
