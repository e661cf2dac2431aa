package converter

import (
	"github.com/DRSN-tech/match-backend/internal/domain"
)

type MatchResultConverter interface {
	ToRedisModel(entity *domain.MatchResult) *MatchResultRedisModel
	ToEntity(model *MatchResultRedisModel) *domain.MatchResult
	ToArrRedisModel(entities []domain.MatchResult) []MatchResultRedisModel
	ToArrEntity(models []MatchResultRedisModel) []domain.MatchResult
}

type MatchResultConverterImpl struct{}

func NewMatchResultConverterImpl() *MatchResultConverterImpl {
	return &MatchResultConverterImpl{}
}

func (c *MatchResultConverterImpl) ToRedisModel(entity *domain.MatchResult) *MatchResultRedisModel {
	if entity == nil {
		return nil
	}

	return &MatchResultRedisModel{
		CounterpartID:   entity.CounterpartID,
		SimilarityScore: entity.SimilarityScore,
		PreferenceScore: entity.PreferenceScore,
		BlendedScore:    entity.BlendedScore,
		Rank:            entity.Rank,
	}
}

func (c *MatchResultConverterImpl) ToEntity(model *MatchResultRedisModel) *domain.MatchResult {
	if model == nil {
		return nil
	}

	return &domain.MatchResult{
		CounterpartID:   model.CounterpartID,
		SimilarityScore: model.SimilarityScore,
		PreferenceScore: model.PreferenceScore,
		BlendedScore:    model.BlendedScore,
		Rank:            model.Rank,
	}
}

func (c *MatchResultConverterImpl) ToArrRedisModel(entities []domain.MatchResult) []MatchResultRedisModel {
	if entities == nil {
		return nil
	}

	models := make([]MatchResultRedisModel, len(entities))
	for i := range entities {
		models[i] = *c.ToRedisModel(&entities[i])
	}

	return models
}

func (c *MatchResultConverterImpl) ToArrEntity(models []MatchResultRedisModel) []domain.MatchResult {
	if models == nil {
		return nil
	}

	entities := make([]domain.MatchResult, len(models))
	for i := range models {
		entities[i] = *c.ToEntity(&models[i])
	}

	return entities
}
