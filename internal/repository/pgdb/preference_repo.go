package pgdb

import (
	"context"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// PreferenceRepo хранит наборы критериев предпочтений поверх PostgreSQL.
type PreferenceRepo struct {
	pool *pgxpool.Pool
	conv converter.CriterionConverter
}

func NewPreferenceRepo(pool *pgxpool.Pool, conv converter.CriterionConverter) *PreferenceRepo {
	return &PreferenceRepo{
		pool: pool,
		conv: conv,
	}
}

// ReplaceSet заменяет набор критериев сущности целиком внутри текущей транзакции.
// Частичных обновлений по полю нет: форма присылает весь набор при каждом сохранении.
func (r *PreferenceRepo) ReplaceSet(ctx context.Context, entityType domain.EntityType, entityID int64, criteria []domain.PreferenceCriterion) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	deleteQuery := `
		DELETE FROM preference_criteria
		WHERE entity_type = $1 AND entity_id = $2;
	`
	if _, err := tx.Exec(ctx, deleteQuery, string(entityType), entityID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	insertQuery := `
		INSERT INTO preference_criteria (entity_type, entity_id, kind, value, priority)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, model := range r.conv.ToArrModel(criteria) {
		if _, err := tx.Exec(ctx, insertQuery,
			string(entityType), entityID, model.Kind, model.Value, model.Priority,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

// GetSet возвращает набор критериев сущности; пустой набор — не ошибка.
func (r *PreferenceRepo) GetSet(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.PreferenceCriterion, error) {
	query := `
		SELECT kind, value, priority
		FROM preference_criteria
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY kind;
	`

	rows, err := r.pool.Query(ctx, query, string(entityType), entityID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.CriterionModel, 0)
	for rows.Next() {
		var model converter.CriterionModel
		if err := rows.Scan(&model.Kind, &model.Value, &model.Priority); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), nil
}
