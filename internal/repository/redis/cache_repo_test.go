package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/match-backend/pkg/clients"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCacheRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := &clients.RedisClient{
		Client: r.NewClient(&r.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { _ = client.Client.Close() })

	repo := NewCacheRepo(client, converter.NewMatchResultConverterImpl(),
		&cfg.RedisCfg{MatchTTL: time.Minute}, logger.NewNopLogger())

	return repo, mr
}

func sampleResults() []domain.MatchResult {
	return []domain.MatchResult{
		{CounterpartID: 7, SimilarityScore: 0.91, PreferenceScore: 0.75, BlendedScore: 0.83, Rank: 1},
		{CounterpartID: 3, SimilarityScore: 0.64, PreferenceScore: 0.5, BlendedScore: 0.57, Rank: 2},
	}
}

func TestCacheRepo_SetThenGet(t *testing.T) {
	repo, _ := newTestCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMatches(ctx, domain.EntitySeeker, 42, sampleResults()))

	got, err := repo.GetMatches(ctx, domain.EntitySeeker, 42)
	require.NoError(t, err)
	require.Equal(t, sampleResults(), got)
}

func TestCacheRepo_Miss(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	got, err := repo.GetMatches(context.Background(), domain.EntityPosition, 99)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCacheRepo_KeysAreSidedByEntityType(t *testing.T) {
	repo, _ := newTestCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMatches(ctx, domain.EntitySeeker, 42, sampleResults()))

	got, err := repo.GetMatches(ctx, domain.EntityPosition, 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCacheRepo_DeleteInvalidates(t *testing.T) {
	repo, _ := newTestCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMatches(ctx, domain.EntitySeeker, 42, sampleResults()))
	require.NoError(t, repo.DeleteMatches(ctx, domain.EntitySeeker, 42))

	got, err := repo.GetMatches(ctx, domain.EntitySeeker, 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCacheRepo_CorruptedEntryTreatedAsMiss(t *testing.T) {
	repo, mr := newTestCacheRepo(t)

	require.NoError(t, mr.Set("matches:seeker:42", "{not json"))

	got, err := repo.GetMatches(context.Background(), domain.EntitySeeker, 42)
	require.NoError(t, err)
	require.Nil(t, got)
	require.False(t, mr.Exists("matches:seeker:42"))
}

func TestCacheRepo_EntryExpires(t *testing.T) {
	repo, mr := newTestCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMatches(ctx, domain.EntitySeeker, 42, sampleResults()))
	mr.FastForward(2 * time.Minute)

	got, err := repo.GetMatches(ctx, domain.EntitySeeker, 42)
	require.NoError(t, err)
	require.Nil(t, got)
}
