package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	config "github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// In-memory фейки репозиториев
// ==========================

type entityKey struct {
	t  domain.EntityType
	id int64
}

type fakeProfileRepo struct {
	profiles map[entityKey]*domain.MatchProfile
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.MatchProfile) error {
	f.profiles[entityKey{profile.EntityType, profile.EntityID}] = profile
	return nil
}

func (f *fakeProfileRepo) Get(ctx context.Context, entityType domain.EntityType, entityID int64) (*domain.MatchProfile, error) {
	return f.profiles[entityKey{entityType, entityID}], nil
}

func (f *fakeProfileRepo) GetMany(ctx context.Context, entityType domain.EntityType, ids []int64) ([]domain.MatchProfile, error) {
	result := make([]domain.MatchProfile, 0, len(ids))
	for _, id := range ids {
		if p := f.profiles[entityKey{entityType, id}]; p != nil {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakeProfileRepo) ListByType(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.MatchProfile, error) {
	result := make([]domain.MatchProfile, 0)
	for key, p := range f.profiles {
		if key.t == entityType && len(result) < limit {
			result = append(result, *p)
		}
	}
	return result, nil
}

type fakePrefRepo struct {
	sets map[entityKey][]domain.PreferenceCriterion
	errs map[entityKey]error
}

func (f *fakePrefRepo) ReplaceSet(ctx context.Context, entityType domain.EntityType, entityID int64, criteria []domain.PreferenceCriterion) error {
	f.sets[entityKey{entityType, entityID}] = criteria
	return nil
}

func (f *fakePrefRepo) GetSet(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.PreferenceCriterion, error) {
	key := entityKey{entityType, entityID}
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.sets[key], nil
}

type fakeEmbeddingRepo struct {
	embeddings map[entityKey]*domain.Embedding
}

func (f *fakeEmbeddingRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	f.embeddings[entityKey{embedding.EntityType, embedding.EntityID}] = embedding
	return nil
}

func (f *fakeEmbeddingRepo) Get(ctx context.Context, entityType domain.EntityType, entityID int64, modelVersion string) (*domain.Embedding, error) {
	emb := f.embeddings[entityKey{entityType, entityID}]
	if emb == nil || emb.ModelVersion != modelVersion {
		return nil, nil
	}
	return emb, nil
}

type fakeVectorIndex struct{}

func (fakeVectorIndex) Upsert(ctx context.Context, embedding *domain.Embedding) error { return nil }

func (fakeVectorIndex) SearchNearest(ctx context.Context, entityType domain.EntityType, vector []float32, limit int) ([]int64, error) {
	return nil, nil // форсирует fallback на ListByType
}

type fakeCacheRepo struct {
	mu    sync.Mutex
	items map[entityKey][]domain.MatchResult
}

func (f *fakeCacheRepo) GetMatches(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[entityKey{entityType, entityID}], nil
}

func (f *fakeCacheRepo) SetMatches(ctx context.Context, entityType domain.EntityType, entityID int64, results []domain.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[entityKey{entityType, entityID}] = results
	return nil
}

func (f *fakeCacheRepo) DeleteMatches(ctx context.Context, entityType domain.EntityType, entityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, entityKey{entityType, entityID})
	return nil
}

// ==========================
// Сборка окружения
// ==========================

type matchEnv struct {
	uc         *MatchUseCase
	profiles   *fakeProfileRepo
	prefs      *fakePrefRepo
	embeddings *fakeEmbeddingRepo
	cache      *fakeCacheRepo
}

func newMatchEnv() *matchEnv {
	profiles := &fakeProfileRepo{profiles: map[entityKey]*domain.MatchProfile{}}
	prefs := &fakePrefRepo{
		sets: map[entityKey][]domain.PreferenceCriterion{},
		errs: map[entityKey]error{},
	}
	embeddings := &fakeEmbeddingRepo{embeddings: map[entityKey]*domain.Embedding{}}
	cache := &fakeCacheRepo{items: map[entityKey][]domain.MatchResult{}}

	uc := NewMatchUC(profiles, prefs, embeddings, fakeVectorIndex{}, cache, logger.NewNopLogger(), &config.MatchingCfg{
		SimilarityWeight: 0.5,
		ModelVersion:     "v1",
		RankTimeout:      5 * time.Second,
		PoolLimit:        100,
		MaxConcurrent:    4,
	})

	return &matchEnv{uc: uc, profiles: profiles, prefs: prefs, embeddings: embeddings, cache: cache}
}

func (env *matchEnv) addSeeker(id int64, workSettings ...string) *domain.MatchProfile {
	p := domain.NewMatchProfile(domain.EntitySeeker, id)
	p.WorkSettings = workSettings
	env.profiles.profiles[entityKey{domain.EntitySeeker, id}] = p
	return p
}

func (env *matchEnv) addPosition(id int64) *domain.MatchProfile {
	p := domain.NewMatchProfile(domain.EntityPosition, id)
	env.profiles.profiles[entityKey{domain.EntityPosition, id}] = p
	return p
}

func (env *matchEnv) setEmbedding(entityType domain.EntityType, id int64, vector []float32) {
	env.embeddings.embeddings[entityKey{entityType, id}] = domain.NewEmbedding(entityType, id, vector, "v1")
}

// ==========================
// Тесты
// ==========================

func TestRankPositionsForSeeker_DealBreakerExcludesDespiteSimilarity(t *testing.T) {
	env := newMatchEnv()

	env.addSeeker(1, "On-site")
	env.addPosition(10)
	env.addPosition(20)

	// Высокая близость для обеих вакансий
	env.setEmbedding(domain.EntitySeeker, 1, []float32{1, 0})
	env.setEmbedding(domain.EntityPosition, 10, []float32{0.8, 0.6})
	env.setEmbedding(domain.EntityPosition, 20, []float32{0.8, 0.6})

	// Вакансия 10 принимает только удалённых — жёсткое требование
	env.prefs.sets[entityKey{domain.EntityPosition, 10}] = []domain.PreferenceCriterion{
		domain.NewPreferenceCriterion(domain.CriterionWorkSetting, "Remote", domain.PriorityDealBreaker),
	}

	res, err := env.uc.RankPositionsForSeeker(context.Background(), NewRankReq(1, nil, 10))
	require.NoError(t, err)

	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(20), res.Results[0].CounterpartID)
	assert.Equal(t, 1, res.Results[0].Rank)
}

func TestRankPositionsForSeeker_MissingEmbeddingRanksBelow(t *testing.T) {
	env := newMatchEnv()

	env.addSeeker(1)
	env.addPosition(1) // эмбеддинга ещё нет
	env.addPosition(2)

	env.setEmbedding(domain.EntitySeeker, 1, []float32{1, 0})
	env.setEmbedding(domain.EntityPosition, 2, []float32{0.6, 0.8}) // cos = 0.6

	res, err := env.uc.RankPositionsForSeeker(context.Background(), NewRankReq(1, nil, 10))
	require.NoError(t, err)
	require.Len(t, res.Results, 2)

	// Вакансия без эмбеддинга остаётся в выдаче, но ниже
	assert.Equal(t, int64(2), res.Results[0].CounterpartID)
	// Косинус считается по float32-векторам, допуск с запасом на округление
	assert.InDelta(t, 0.6, res.Results[0].SimilarityScore, 1e-6)
	assert.Equal(t, int64(1), res.Results[1].CounterpartID)
	assert.Equal(t, 0.0, res.Results[1].SimilarityScore)
	assert.Equal(t, []int{1, 2}, []int{res.Results[0].Rank, res.Results[1].Rank})
}

func TestRankCandidatesForPosition_DeterministicTieBreak(t *testing.T) {
	env := newMatchEnv()

	env.addPosition(7)
	env.addSeeker(5)
	env.addSeeker(3)
	env.addSeeker(9)

	res, err := env.uc.RankCandidatesForPosition(context.Background(), NewRankReq(7, nil, 10))
	require.NoError(t, err)
	require.Len(t, res.Results, 3)

	// Оценки равны — порядок по возрастанию ID, ранги плотные с единицы
	ids := []int64{res.Results[0].CounterpartID, res.Results[1].CounterpartID, res.Results[2].CounterpartID}
	assert.Equal(t, []int64{3, 5, 9}, ids)
	for i, r := range res.Results {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestRank_CanceledContextReturnsError(t *testing.T) {
	env := newMatchEnv()

	env.addPosition(7)
	env.addSeeker(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.uc.RankCandidatesForPosition(ctx, NewRankReq(7, nil, 10))
	assert.Error(t, err)
}

func TestRank_BrokenCounterpartIsolated(t *testing.T) {
	env := newMatchEnv()

	env.addPosition(7)
	env.addSeeker(1)
	env.addSeeker(2)

	// Предпочтения соискателя 1 не читаются — пара пропускается, остальные ранжируются
	env.prefs.errs[entityKey{domain.EntitySeeker, 1}] = fmt.Errorf("corrupted preference row")

	res, err := env.uc.RankCandidatesForPosition(context.Background(), NewRankReq(7, nil, 10))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(2), res.Results[0].CounterpartID)
}

func TestRank_ExplicitPoolSkipsCache(t *testing.T) {
	env := newMatchEnv()

	env.addPosition(7)
	env.addSeeker(1)
	env.addSeeker(2)

	// Устаревший кэш не должен использоваться при явном пуле
	env.cache.items[entityKey{domain.EntityPosition, 7}] = []domain.MatchResult{{CounterpartID: 99, Rank: 1}}

	res, err := env.uc.RankCandidatesForPosition(context.Background(), NewRankReq(7, []int64{2}, 10))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(2), res.Results[0].CounterpartID)
	assert.False(t, res.FromCache)
}

func TestRank_CacheHitServedForDefaultPool(t *testing.T) {
	env := newMatchEnv()

	cached := []domain.MatchResult{
		{CounterpartID: 4, BlendedScore: 0.9, Rank: 1},
		{CounterpartID: 8, BlendedScore: 0.7, Rank: 2},
	}
	env.cache.items[entityKey{domain.EntityPosition, 7}] = cached

	res, err := env.uc.RankCandidatesForPosition(context.Background(), NewRankReq(7, nil, 1))
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(4), res.Results[0].CounterpartID)
}
