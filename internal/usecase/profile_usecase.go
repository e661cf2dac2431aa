package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/DRSN-tech/match-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileUseCase обрабатывает сохранение профилей и пересчёт эмбеддингов.
type ProfileUseCase struct {
	profileRepo   ProfileRepository
	prefRepo      PreferenceRepository
	embeddingRepo EmbeddingRepository
	vectorIndex   VectorIndexRepository
	outboxRepo    OutboxRepository
	cacheRepo     CacheRepository
	embedder      EmbedderInfra
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewProfileUC(
	profileRepo ProfileRepository,
	prefRepo PreferenceRepository,
	embeddingRepo EmbeddingRepository,
	vectorIndex VectorIndexRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	embedder EmbedderInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:   profileRepo,
		prefRepo:      prefRepo,
		embeddingRepo: embeddingRepo,
		vectorIndex:   vectorIndex,
		outboxRepo:    outboxRepo,
		cacheRepo:     cacheRepo,
		embedder:      embedder,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// SaveProfile атомарно сохраняет срез атрибутов, заменяет набор предпочтений
// целиком и ставит в outbox задание на пересчёт эмбеддинга.
// Сигнал пересчёта разделяет транзакцию сохранения: либо сохранились и
// атрибуты, и задание, либо ничего.
func (p *ProfileUseCase) SaveProfile(ctx context.Context, req *SaveProfileReq) error {
	const op = "ProfileUseCase.SaveProfile"

	var err error
	if err = p.validateProfile(req.Profile); err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.ContextWithTx(ctx, tx.Transaction())

	if err = p.profileRepo.Upsert(ctx, req.Profile); err != nil {
		return e.Wrap(op, err)
	}

	if err = p.prefRepo.ReplaceSet(ctx, req.Profile.EntityType, req.Profile.EntityID, req.Criteria); err != nil {
		return e.Wrap(op, err)
	}

	if err = p.enqueueRefresh(ctx, req.Profile.EntityType, req.Profile.EntityID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	// Удаление устаревших ранжированных списков сущности
	if err := p.cacheRepo.DeleteMatches(ctx, req.Profile.EntityType, req.Profile.EntityID); err != nil {
		p.logger.Warnf("failed to invalidate match cache: %v", e.Wrap(op, err))
	}

	return nil
}

// RefreshEmbedding пересчитывает эмбеддинг по ТЕКУЩИМ атрибутам сущности.
// Задание могло устареть, поэтому снимок из очереди не используется.
// Операция идемпотентна: повторная доставка перезапишет ту же строку.
func (p *ProfileUseCase) RefreshEmbedding(ctx context.Context, req *RefreshEmbeddingReq) error {
	const op = "ProfileUseCase.RefreshEmbedding"

	profile, err := p.profileRepo.Get(ctx, req.EntityType, req.EntityID)
	if err != nil {
		return e.Wrap(op, err)
	}
	if profile == nil {
		// Сущность удалена после постановки задания — задание сбрасывается
		p.logger.Infof("%s %d no longer exists, refresh job dropped", req.EntityType, req.EntityID)
		return nil
	}

	res, err := p.embedder.EmbedText(ctx, NewEmbedReq(profileText(profile)))
	if err != nil {
		return e.Wrap(op, err)
	}
	if len(res.Vector) == 0 {
		return e.Wrap(op, e.ErrEmptyVector)
	}

	embedding := domain.NewEmbedding(req.EntityType, req.EntityID, res.Vector, res.ModelVersion)
	if err := p.embeddingRepo.Upsert(ctx, embedding); err != nil {
		return e.Wrap(op, err)
	}

	// Индекс вторичен: при сбое останется устаревшая точка до следующего пересчёта
	if err := p.vectorIndex.Upsert(ctx, embedding); err != nil {
		p.logger.Warnf("vector index upsert failed for %s %d: %v", req.EntityType, req.EntityID, err)
	}

	if err := p.cacheRepo.DeleteMatches(ctx, req.EntityType, req.EntityID); err != nil {
		p.logger.Warnf("failed to invalidate match cache: %v", e.Wrap(op, err))
	}

	return nil
}

// enqueueRefresh кладёт конверт задания пересчёта в outbox внутри текущей транзакции.
func (p *ProfileUseCase) enqueueRefresh(ctx context.Context, entityType domain.EntityType, entityID int64) error {
	payload, err := domain.NewRefreshJob(entityType, entityID).MarshalEnvelope()
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(
		uuid.NewString(),
		EmbeddingRefreshRequested,
		entityType,
		entityID,
		payload,
	))

	return err
}

// profileText собирает текст для векторизации из сопоставляемых атрибутов.
func profileText(profile *domain.MatchProfile) string {
	parts := make([]string, 0, 6)
	for _, s := range []string{
		profile.JobCategory,
		strings.Join(profile.EducationLevels, ", "),
		strings.Join(profile.WorkSettings, ", "),
		profile.EmploymentType,
		profile.Summary,
	} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	if profile.YearsExperience > 0 {
		parts = append(parts, strconv.Itoa(profile.YearsExperience)+" years of experience")
	}

	return strings.Join(parts, "\n")
}

func (p *ProfileUseCase) validateProfile(profile *domain.MatchProfile) error {
	if profile == nil || profile.EntityID <= 0 {
		return e.ErrInvalidEntityID
	}

	if _, err := domain.ParseEntityType(string(profile.EntityType)); err != nil {
		return err
	}

	if profile.SalaryMinCents > 0 && profile.SalaryMaxCents > 0 &&
		profile.SalaryMinCents > profile.SalaryMaxCents {
		return e.ErrInvalidSalary
	}

	return nil
}
