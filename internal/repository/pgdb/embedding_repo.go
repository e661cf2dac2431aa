package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// EmbeddingRepo — авторитетное хранилище эмбеддингов поверх PostgreSQL.
type EmbeddingRepo struct {
	pool *pgxpool.Pool
	conv converter.EmbeddingConverter
}

func NewEmbeddingRepo(pool *pgxpool.Pool, conv converter.EmbeddingConverter) *EmbeddingRepo {
	return &EmbeddingRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert заменяет эмбеддинг по ключу (entity_type, entity_id, model_version).
// Атомарность обеспечивается ON CONFLICT: последняя завершённая запись побеждает,
// истории не остаётся.
func (r *EmbeddingRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	model := r.conv.ToModel(embedding)

	query := `
		INSERT INTO embeddings (entity_type, entity_id, model_version, vector)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity_type, entity_id, model_version)
		DO UPDATE SET
			vector = EXCLUDED.vector,
			updated_at = NOW();
	`

	_, err := r.pool.Exec(ctx, query,
		model.EntityType, model.EntityID, model.ModelVersion, model.Vector,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает (nil, nil), если эмбеддинг для сущности ещё не вычислен.
// Битые байты вектора поднимаются как e.ErrMalformedEmbedding.
func (r *EmbeddingRepo) Get(ctx context.Context, entityType domain.EntityType, entityID int64, modelVersion string) (*domain.Embedding, error) {
	query := `
		SELECT entity_type, entity_id, model_version, vector, created_at, updated_at
		FROM embeddings
		WHERE entity_type = $1 AND entity_id = $2 AND model_version = $3;
	`

	var model converter.EmbeddingModel
	err := r.pool.QueryRow(ctx, query, string(entityType), entityID, modelVersion).Scan(
		&model.EntityType, &model.EntityID, &model.ModelVersion,
		&model.Vector, &model.CreatedAt, &model.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	entity, err := r.conv.ToEntity(&model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return entity, nil
}
