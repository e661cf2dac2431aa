package converter

import (
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/vec"
)

// EmbeddingConverter преобразует Embedding между domain и моделью PostgreSQL.
// Конвертация написана вручную: кодек векторов не выражается генератором.
type EmbeddingConverter interface {
	ToModel(entity *domain.Embedding) *EmbeddingModel
	// ToEntity возвращает e.ErrMalformedEmbedding при битых байтах вектора
	ToEntity(model *EmbeddingModel) (*domain.Embedding, error)
}

// MatchProfileConverter преобразует MatchProfile между domain и моделью PostgreSQL.
type MatchProfileConverter interface {
	ToModel(entity *domain.MatchProfile) *MatchProfileModel
	ToEntity(entityType domain.EntityType, model *MatchProfileModel) *domain.MatchProfile
}

// CriterionConverter преобразует наборы критериев между domain и моделью PostgreSQL.
type CriterionConverter interface {
	ToArrModel(entities []domain.PreferenceCriterion) []CriterionModel
	ToArrEntity(models []CriterionModel) []domain.PreferenceCriterion
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type EmbeddingConverterImpl struct{}

func NewEmbeddingConverterImpl() *EmbeddingConverterImpl {
	return &EmbeddingConverterImpl{}
}

func (EmbeddingConverterImpl) ToModel(entity *domain.Embedding) *EmbeddingModel {
	return &EmbeddingModel{
		EntityType:   string(entity.EntityType),
		EntityID:     entity.EntityID,
		ModelVersion: entity.ModelVersion,
		Vector:       vec.Encode(entity.Vector),
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (EmbeddingConverterImpl) ToEntity(model *EmbeddingModel) (*domain.Embedding, error) {
	vector, err := vec.Decode(model.Vector)
	if err != nil {
		return nil, err
	}

	return &domain.Embedding{
		EntityType:   domain.EntityType(model.EntityType),
		EntityID:     model.EntityID,
		Vector:       vector,
		ModelVersion: model.ModelVersion,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}

type MatchProfileConverterImpl struct{}

func NewMatchProfileConverterImpl() *MatchProfileConverterImpl {
	return &MatchProfileConverterImpl{}
}

func (MatchProfileConverterImpl) ToModel(entity *domain.MatchProfile) *MatchProfileModel {
	return &MatchProfileModel{
		ID:              entity.EntityID,
		JobCategory:     entity.JobCategory,
		EducationLevels: entity.EducationLevels,
		YearsExperience: entity.YearsExperience,
		WorkSettings:    entity.WorkSettings,
		Travel:          entity.Travel,
		CompanySize:     entity.CompanySize,
		EmploymentType:  entity.EmploymentType,
		SalaryMinCents:  entity.SalaryMinCents,
		SalaryMaxCents:  entity.SalaryMaxCents,
		Summary:         entity.Summary,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (MatchProfileConverterImpl) ToEntity(entityType domain.EntityType, model *MatchProfileModel) *domain.MatchProfile {
	return &domain.MatchProfile{
		EntityType:      entityType,
		EntityID:        model.ID,
		JobCategory:     model.JobCategory,
		EducationLevels: model.EducationLevels,
		YearsExperience: model.YearsExperience,
		WorkSettings:    model.WorkSettings,
		Travel:          model.Travel,
		CompanySize:     model.CompanySize,
		EmploymentType:  model.EmploymentType,
		SalaryMinCents:  model.SalaryMinCents,
		SalaryMaxCents:  model.SalaryMaxCents,
		Summary:         model.Summary,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

type CriterionConverterImpl struct{}

func NewCriterionConverterImpl() *CriterionConverterImpl {
	return &CriterionConverterImpl{}
}

func (CriterionConverterImpl) ToArrModel(entities []domain.PreferenceCriterion) []CriterionModel {
	models := make([]CriterionModel, 0, len(entities))
	for _, c := range entities {
		models = append(models, CriterionModel{
			Kind:     string(c.Kind),
			Value:    c.Value,
			Priority: string(c.Priority),
		})
	}

	return models
}

func (CriterionConverterImpl) ToArrEntity(models []CriterionModel) []domain.PreferenceCriterion {
	entities := make([]domain.PreferenceCriterion, 0, len(models))
	for _, m := range models {
		entities = append(entities, domain.PreferenceCriterion{
			Kind:     domain.CriterionKind(m.Kind),
			Value:    m.Value,
			Priority: domain.Priority(m.Priority),
		})
	}

	return entities
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		EntityType:  string(entity.EntityType),
		EntityID:    entity.EntityID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		EntityType:  domain.EntityType(model.EntityType),
		EntityID:    model.EntityID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		entities = append(entities, c.ToEntity(m))
	}

	return entities
}
