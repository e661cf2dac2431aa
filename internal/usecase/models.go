package usecase

import (
	"time"

	"github.com/DRSN-tech/match-backend/internal/domain"
)

// MATCH USECASE

// RankReq — запрос на ранжирование контрагентов для целевой сущности.
// PoolIDs задаёт явный пул; пустой пул означает подбор через векторный индекс.
type RankReq struct {
	TargetID int64
	PoolIDs  []int64
	Limit    int
}

// RankRes — ранжированный список без исключённых пар.
type RankRes struct {
	Results   []domain.MatchResult
	FromCache bool
}

// PROFILE USECASE

// SaveProfileReq — сохранение среза атрибутов и полного набора предпочтений.
type SaveProfileReq struct {
	Profile  *domain.MatchProfile
	Criteria []domain.PreferenceCriterion
}

// RefreshEmbeddingReq — пересчёт эмбеддинга по текущим атрибутам сущности.
type RefreshEmbeddingReq struct {
	EntityType domain.EntityType
	EntityID   int64
}

// INFRASTRUCTURE

// EmbedReq — запрос на векторизацию текста профиля.
type EmbedReq struct {
	Text string
}

// EmbedRes — результат векторизации.
type EmbedRes struct {
	Vector       []float32
	ModelVersion string
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const EmbeddingRefreshRequested OutboxEventType = "embedding_refresh_requested"

// OutboxEvent — запись транзакционного outbox с конвертом задания пересчёта.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	EntityType  domain.EntityType
	EntityID    int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewRankReq(targetID int64, poolIDs []int64, limit int) *RankReq {
	return &RankReq{
		TargetID: targetID,
		PoolIDs:  poolIDs,
		Limit:    limit,
	}
}

func NewRankRes(results []domain.MatchResult, fromCache bool) *RankRes {
	return &RankRes{
		Results:   results,
		FromCache: fromCache,
	}
}

func NewSaveProfileReq(profile *domain.MatchProfile, criteria []domain.PreferenceCriterion) *SaveProfileReq {
	return &SaveProfileReq{
		Profile:  profile,
		Criteria: criteria,
	}
}

func NewRefreshEmbeddingReq(entityType domain.EntityType, entityID int64) *RefreshEmbeddingReq {
	return &RefreshEmbeddingReq{
		EntityType: entityType,
		EntityID:   entityID,
	}
}

func NewEmbedReq(text string) *EmbedReq {
	return &EmbedReq{Text: text}
}

func NewEmbedRes(vector []float32, modelVersion string) *EmbedRes {
	return &EmbedRes{
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, entityType domain.EntityType, entityID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:    eventID,
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
		Status:     Pending,
		CreatedAt:  time.Now().UTC(),
	}
}
