package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	config "github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/DRSN-tech/match-backend/pkg/vec"
)

// MatchUseCase реализует ранжирование пар кандидат/вакансия.
type MatchUseCase struct {
	profileRepo   ProfileRepository
	prefRepo      PreferenceRepository
	embeddingRepo EmbeddingRepository
	vectorIndex   VectorIndexRepository
	cacheRepo     CacheRepository
	logger        logger.Logger
	cfg           *config.MatchingCfg
}

func NewMatchUC(
	profileRepo ProfileRepository,
	prefRepo PreferenceRepository,
	embeddingRepo EmbeddingRepository,
	vectorIndex VectorIndexRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
	cfg *config.MatchingCfg,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo:   profileRepo,
		prefRepo:      prefRepo,
		embeddingRepo: embeddingRepo,
		vectorIndex:   vectorIndex,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cfg:           cfg,
	}
}

// RankCandidatesForPosition возвращает ранжированный список кандидатов для вакансии.
func (m *MatchUseCase) RankCandidatesForPosition(ctx context.Context, req *RankReq) (*RankRes, error) {
	const op = "MatchUseCase.RankCandidatesForPosition"

	res, err := m.rank(ctx, domain.EntityPosition, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// RankPositionsForSeeker возвращает ранжированный список вакансий для соискателя.
func (m *MatchUseCase) RankPositionsForSeeker(ctx context.Context, req *RankReq) (*RankRes, error) {
	const op = "MatchUseCase.RankPositionsForSeeker"

	res, err := m.rank(ctx, domain.EntitySeeker, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (m *MatchUseCase) rank(ctx context.Context, targetType domain.EntityType, req *RankReq) (*RankRes, error) {
	limit := req.Limit
	if limit <= 0 || limit > m.cfg.PoolLimit {
		limit = m.cfg.PoolLimit
	}

	// Кэш хранит полный список для пула по умолчанию
	useCache := len(req.PoolIDs) == 0
	if useCache {
		cached, err := m.cacheRepo.GetMatches(ctx, targetType, req.TargetID)
		if err != nil {
			m.logger.Warnf("match cache lookup failed: %v", err)
		} else if cached != nil {
			return NewRankRes(truncate(cached, limit), true), nil
		}
	}

	// Частичный результат не возвращается: при отмене — всё или ничего
	ctx, cancel := context.WithTimeout(ctx, m.cfg.RankTimeout)
	defer cancel()

	target, err := m.profileRepo.Get(ctx, targetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, e.ErrProfileNotFound
	}

	targetCriteria, err := m.prefRepo.GetSet(ctx, targetType, req.TargetID)
	if err != nil {
		return nil, err
	}

	targetEmb, err := m.embeddingRepo.Get(ctx, targetType, req.TargetID, m.cfg.ModelVersion)
	if err != nil {
		// Деградация до ранжирования только по предпочтениям
		m.logger.Warnf("embedding of %s %d unavailable, ranking by preferences only: %v", targetType, req.TargetID, err)
		targetEmb = nil
	}

	pool, err := m.loadPool(ctx, targetType.Counterpart(), targetEmb, req.PoolIDs)
	if err != nil {
		return nil, err
	}

	results, err := m.scorePool(ctx, target, targetCriteria, targetEmb, pool)
	if err != nil {
		return nil, err
	}

	sortResults(results)
	for i := range results {
		results[i].Rank = i + 1
	}

	if useCache {
		// Фоновое кэширование полного списка
		full := results
		go func() {
			bgCtx, bgCancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer bgCancel()

			if err := m.cacheRepo.SetMatches(bgCtx, targetType, req.TargetID, full); err != nil {
				m.logger.Warnf("failed to cache matches in background: %v", err)
			}
		}()
	}

	return NewRankRes(truncate(results, limit), false), nil
}

// loadPool подбирает пул контрагентов: явный список, поиск по векторному
// индексу либо общая выборка, когда эмбеддинга цели ещё нет.
func (m *MatchUseCase) loadPool(ctx context.Context, counterType domain.EntityType, targetEmb *domain.Embedding, poolIDs []int64) ([]domain.MatchProfile, error) {
	if len(poolIDs) > 0 {
		return m.profileRepo.GetMany(ctx, counterType, poolIDs)
	}

	if targetEmb != nil {
		ids, err := m.vectorIndex.SearchNearest(ctx, counterType, targetEmb.Vector, m.cfg.PoolLimit)
		if err != nil {
			m.logger.Warnf("vector index search failed, falling back to full pool: %v", err)
		} else if len(ids) > 0 {
			return m.profileRepo.GetMany(ctx, counterType, ids)
		}
	}

	return m.profileRepo.ListByType(ctx, counterType, m.cfg.PoolLimit)
}

// scorePool оценивает пары параллельно с ограничением конкурентности.
// Ошибка оценки одного контрагента исключает только его; отмена контекста
// отбрасывает весь результат.
func (m *MatchUseCase) scorePool(
	ctx context.Context,
	target *domain.MatchProfile,
	targetCriteria []domain.PreferenceCriterion,
	targetEmb *domain.Embedding,
	pool []domain.MatchProfile,
) ([]domain.MatchResult, error) {
	resCh := make(chan domain.MatchResult, len(pool))
	sem := make(chan struct{}, m.cfg.MaxConcurrent)

	var wg sync.WaitGroup
	for i := range pool {
		wg.Add(1)
		go func(counter *domain.MatchProfile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if res, ok := m.scorePair(ctx, target, targetCriteria, targetEmb, counter); ok {
				resCh <- res
			}
		}(&pool[i])
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Отмена во время оценки отбрасывает даже полностью собранный результат
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	close(resCh)
	results := make([]domain.MatchResult, 0, len(pool))
	for res := range resCh {
		results = append(results, res)
	}

	return results, nil
}

// scorePair оценивает одну пару. Проверка предпочтений взаимная:
// несовпавший deal-breaker любой из сторон исключает пару целиком.
func (m *MatchUseCase) scorePair(
	ctx context.Context,
	target *domain.MatchProfile,
	targetCriteria []domain.PreferenceCriterion,
	targetEmb *domain.Embedding,
	counter *domain.MatchProfile,
) (domain.MatchResult, bool) {
	targetSide := EvaluatePreferences(counter, targetCriteria, m.logger)
	if targetSide.Excluded {
		return domain.MatchResult{}, false
	}

	counterCriteria, err := m.prefRepo.GetSet(ctx, counter.EntityType, counter.EntityID)
	if err != nil {
		m.logger.Warnf("preferences of %s %d unavailable, pair skipped: %v", counter.EntityType, counter.EntityID, err)
		return domain.MatchResult{}, false
	}

	counterSide := EvaluatePreferences(target, counterCriteria, m.logger)
	if counterSide.Excluded {
		return domain.MatchResult{}, false
	}

	prefScore := (targetSide.Score + counterSide.Score) / 2

	// Отсутствующий или битый эмбеддинг — не ошибка, близость равна 0
	var sim float64
	if targetEmb != nil {
		counterEmb, err := m.embeddingRepo.Get(ctx, counter.EntityType, counter.EntityID, m.cfg.ModelVersion)
		if err != nil {
			m.logger.Warnf("embedding of %s %d unreadable, similarity set to 0: %v", counter.EntityType, counter.EntityID, err)
		} else if counterEmb != nil {
			sim = vec.Cosine(targetEmb.Vector, counterEmb.Vector)
		}
	}

	blended := m.cfg.SimilarityWeight*sim + (1-m.cfg.SimilarityWeight)*prefScore

	return domain.MatchResult{
		CounterpartID:   counter.EntityID,
		SimilarityScore: sim,
		PreferenceScore: prefScore,
		BlendedScore:    blended,
	}, true
}

// sortResults сортирует по убыванию смешанной оценки,
// при равенстве — по возрастанию ID для детерминизма.
func sortResults(results []domain.MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].BlendedScore != results[j].BlendedScore {
			return results[i].BlendedScore > results[j].BlendedScore
		}
		return results[i].CounterpartID < results[j].CounterpartID
	})
}

func truncate(results []domain.MatchResult, limit int) []domain.MatchResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
