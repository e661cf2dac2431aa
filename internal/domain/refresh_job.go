package domain

import (
	"encoding/json"
	"strconv"

	"github.com/DRSN-tech/match-backend/pkg/e"
)

// RefreshJob — запрос на пересчёт эмбеддинга сущности.
// Доставка at-least-once, порядок не гарантируется: консьюмер обязан
// пересчитывать по текущим атрибутам сущности, а не по снимку из задания.
type RefreshJob struct {
	EntityType EntityType
	EntityID   int64
}

func NewRefreshJob(entityType EntityType, entityID int64) *RefreshJob {
	return &RefreshJob{
		EntityType: entityType,
		EntityID:   entityID,
	}
}

// refreshEnvelope — транспортный JSON-конверт задания.
// EntityId передаётся строкой — это внешний контракт очереди.
type refreshEnvelope struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}

// MarshalEnvelope сериализует задание в транспортный конверт.
func (j *RefreshJob) MarshalEnvelope() ([]byte, error) {
	return json.Marshal(refreshEnvelope{
		EntityType: string(j.EntityType),
		EntityID:   strconv.FormatInt(j.EntityID, 10),
	})
}

// UnmarshalRefreshJob разбирает транспортный конверт задания.
func UnmarshalRefreshJob(data []byte) (*RefreshJob, error) {
	var env refreshEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, e.Wrap("refresh envelope", err)
	}

	entityType, err := ParseEntityType(env.EntityType)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(env.EntityID, 10, 64)
	if err != nil {
		return nil, e.Wrap("refresh envelope", e.ErrInvalidEntityID)
	}

	return NewRefreshJob(entityType, id), nil
}
