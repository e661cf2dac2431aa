package qdrant

import (
	"context"
	"strings"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// VectorIndexRepo — поисковый индекс эмбеддингов в Qdrant.
// Авторитетное хранилище остаётся в PostgreSQL; индекс служит только
// для предварительного отбора пула ближайших контрагентов.
type VectorIndexRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewVectorIndexRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *VectorIndexRepo {
	return &VectorIndexRepo{
		client: client,
		cfg:    cfg,
	}
}

// CollectionFor возвращает имя коллекции для типа сущности.
// Коллекции разделены по сторонам матчинга: поиск всегда идёт по одной стороне.
func CollectionFor(prefix string, entityType domain.EntityType) string {
	return prefix + "-" + strings.ToLower(string(entityType)) + "s"
}

// Upsert сохраняет или заменяет точку сущности в коллекции её стороны.
func (q *VectorIndexRepo) Upsert(ctx context.Context, embedding *domain.Embedding) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(embedding.EntityID)),
		Vectors: qdrant.NewVectors(embedding.Vector...),
		Payload: qdrant.NewValueMap(map[string]any{
			"entity_type":   string(embedding.EntityType),
			"entity_id":     embedding.EntityID,
			"model_version": embedding.ModelVersion,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionFor(q.cfg.CollectionPrefix, embedding.EntityType),
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SearchNearest возвращает идентификаторы ближайших сущностей заданной стороны.
func (q *VectorIndexRepo) SearchNearest(ctx context.Context, entityType domain.EntityType, vector []float32, limit int) ([]int64, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionFor(q.cfg.CollectionPrefix, entityType),
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ids := make([]int64, 0, len(points))
	for _, point := range points {
		ids = append(ids, int64(point.GetId().GetNum()))
	}

	return ids, nil
}
