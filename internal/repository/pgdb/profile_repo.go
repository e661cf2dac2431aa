package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const profileColumns = `
	id, job_category, education_levels, years_experience, work_settings,
	travel, company_size, employment_type, salary_min_cents, salary_max_cents,
	summary, created_at, updated_at`

// ProfileRepo хранит срезы сопоставляемых атрибутов соискателей и вакансий.
// Навигационных ссылок между сущностями нет: стороны связаны только
// числовыми идентификаторами.
type ProfileRepo struct {
	pool *pgxpool.Pool
	conv converter.MatchProfileConverter
}

func NewProfileRepo(pool *pgxpool.Pool, conv converter.MatchProfileConverter) *ProfileRepo {
	return &ProfileRepo{
		pool: pool,
		conv: conv,
	}
}

// tableFor возвращает имя таблицы для типа сущности.
// Имя подставляется в запрос только из этого белого списка.
func tableFor(entityType domain.EntityType) (string, error) {
	switch entityType {
	case domain.EntitySeeker:
		return "seekers", nil
	case domain.EntityPosition:
		return "positions", nil
	default:
		return "", e.Wrap(string(entityType), e.ErrUnknownEntityType)
	}
}

// Upsert идемпотентно сохраняет срез атрибутов внутри текущей транзакции.
func (r *ProfileRepo) Upsert(ctx context.Context, profile *domain.MatchProfile) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	table, err := tableFor(profile.EntityType)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(profile)
	query := `
		INSERT INTO ` + table + ` (
			id, job_category, education_levels, years_experience, work_settings,
			travel, company_size, employment_type, salary_min_cents, salary_max_cents, summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id)
		DO UPDATE SET
			job_category = EXCLUDED.job_category,
			education_levels = EXCLUDED.education_levels,
			years_experience = EXCLUDED.years_experience,
			work_settings = EXCLUDED.work_settings,
			travel = EXCLUDED.travel,
			company_size = EXCLUDED.company_size,
			employment_type = EXCLUDED.employment_type,
			salary_min_cents = EXCLUDED.salary_min_cents,
			salary_max_cents = EXCLUDED.salary_max_cents,
			summary = EXCLUDED.summary,
			updated_at = NOW();
	`

	_, err = tx.Exec(ctx, query,
		model.ID, model.JobCategory, model.EducationLevels, model.YearsExperience,
		model.WorkSettings, model.Travel, model.CompanySize, model.EmploymentType,
		model.SalaryMinCents, model.SalaryMaxCents, model.Summary,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает (nil, nil), если срез атрибутов сущности не сохранялся.
func (r *ProfileRepo) Get(ctx context.Context, entityType domain.EntityType, entityID int64) (*domain.MatchProfile, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + profileColumns + ` FROM ` + table + ` WHERE id = $1;`

	var model converter.MatchProfileModel
	err = r.pool.QueryRow(ctx, query, entityID).Scan(
		&model.ID, &model.JobCategory, &model.EducationLevels, &model.YearsExperience,
		&model.WorkSettings, &model.Travel, &model.CompanySize, &model.EmploymentType,
		&model.SalaryMinCents, &model.SalaryMaxCents, &model.Summary,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(entityType, &model), nil
}

// GetMany возвращает профили по списку идентификаторов; отсутствующие пропускаются.
func (r *ProfileRepo) GetMany(ctx context.Context, entityType domain.EntityType, ids []int64) ([]domain.MatchProfile, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + profileColumns + ` FROM ` + table + ` WHERE id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return r.scanProfiles(entityType, rows)
}

// ListByType возвращает общий пул профилей, когда подбор через индекс недоступен.
func (r *ProfileRepo) ListByType(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.MatchProfile, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + profileColumns + ` FROM ` + table + ` ORDER BY id LIMIT $1;`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return r.scanProfiles(entityType, rows)
}

func (r *ProfileRepo) scanProfiles(entityType domain.EntityType, rows pgx.Rows) ([]domain.MatchProfile, error) {
	result := make([]domain.MatchProfile, 0)
	for rows.Next() {
		var model converter.MatchProfileModel
		if err := rows.Scan(
			&model.ID, &model.JobCategory, &model.EducationLevels, &model.YearsExperience,
			&model.WorkSettings, &model.Travel, &model.CompanySize, &model.EmploymentType,
			&model.SalaryMinCents, &model.SalaryMaxCents, &model.Summary,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *r.conv.ToEntity(entityType, &model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
