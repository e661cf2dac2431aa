package domain

import "time"

// Embedding представляет векторное представление сущности для одной версии модели.
// На пару (EntityType, EntityID, ModelVersion) существует не более одной записи;
// перезапись идёт по принципу last write wins.
type Embedding struct {
	EntityType   EntityType
	EntityID     int64
	Vector       []float32
	ModelVersion string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewEmbedding(entityType EntityType, entityID int64, vector []float32, modelVersion string) *Embedding {
	return &Embedding{
		EntityType:   entityType,
		EntityID:     entityID,
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}
