package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
)

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*usecase.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var claimed []*usecase.OutboxEvent
	for _, ev := range r.events {
		if ev.Status != usecase.Pending {
			continue
		}
		ev.Status = usecase.Processing
		claimed = append(claimed, ev)
		if len(claimed) == limit {
			break
		}
	}
	return claimed, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	return r.setStatus(id, usecase.Processed)
}

func (r *fakeOutboxRepo) MarkAsPending(_ context.Context, id int64) error {
	return r.setStatus(id, usecase.Pending)
}

func (r *fakeOutboxRepo) setStatus(id int64, status usecase.OutboxStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.ID == id {
			ev.Status = status
			return nil
		}
	}
	return errors.New("event not found")
}

func (r *fakeOutboxRepo) status(id int64) usecase.OutboxStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.ID == id {
			return ev.Status
		}
	}
	return ""
}

type flakyProducer struct {
	failErr error
	sent    []*usecase.WriteRawMessageReq
}

func (p *flakyProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	if p.failErr != nil {
		return p.failErr
	}
	p.sent = append(p.sent, req)
	return nil
}

func TestProcessBatch_BrokerDownReturnsEventToQueue(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOutboxRepo{}
	producer := &flakyProducer{failErr: errors.New("dial tcp 127.0.0.1:9092: connection refused")}
	w := NewOutboxWorker(repo, logger.NewNopLogger(), producer, "")

	event, err := repo.Create(ctx, usecase.NewOutboxEvent(
		"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		usecase.EmbeddingRefreshRequested,
		domain.EntitySeeker,
		42,
		[]byte(`{"entityType":"Seeker","entityId":"42"}`),
	))
	require.NoError(t, err)

	hasMore, err := w.processBatch(ctx)
	require.NoError(t, err)
	// Дренаж останавливается, событие возвращается в очередь, а не виснет в processing
	assert.False(t, hasMore)
	assert.Equal(t, usecase.Pending, repo.status(event.ID))
	assert.Empty(t, producer.sent)

	// Брокер поднялся: событие уходит при следующем проходе
	producer.failErr = nil
	_, err = w.processBatch(ctx)
	require.NoError(t, err)
	require.Len(t, producer.sent, 1)
	assert.Equal(t, "Seeker:42", producer.sent[0].Key)
	assert.Equal(t, usecase.Processed, repo.status(event.ID))
}

func TestProcessBatch_FailedEventDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOutboxRepo{}
	producer := &flakyProducer{failErr: errors.New("broker not available")}
	w := NewOutboxWorker(repo, logger.NewNopLogger(), producer, "")

	first, err := repo.Create(ctx, usecase.NewOutboxEvent(
		"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		usecase.EmbeddingRefreshRequested,
		domain.EntitySeeker,
		1,
		[]byte(`{"entityType":"Seeker","entityId":"1"}`),
	))
	require.NoError(t, err)
	second, err := repo.Create(ctx, usecase.NewOutboxEvent(
		"16fd2706-8baf-433b-82eb-8c7fada847da",
		usecase.EmbeddingRefreshRequested,
		domain.EntityPosition,
		2,
		[]byte(`{"entityType":"Position","entityId":"2"}`),
	))
	require.NoError(t, err)

	_, err = w.processBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, usecase.Pending, repo.status(first.ID))
	assert.Equal(t, usecase.Pending, repo.status(second.ID))

	producer.failErr = nil
	_, err = w.processBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, usecase.Processed, repo.status(first.ID))
	assert.Equal(t, usecase.Processed, repo.status(second.ID))
}

func TestProcessEvent_RetryableFailureIsQueueUnavailable(t *testing.T) {
	producer := &flakyProducer{failErr: errors.New("read tcp 10.0.0.1:9092: i/o timeout")}
	w := NewOutboxWorker(&fakeOutboxRepo{}, logger.NewNopLogger(), producer, "")

	event := usecase.NewOutboxEvent(
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		usecase.EmbeddingRefreshRequested,
		domain.EntityPosition,
		7,
		[]byte(`{"entityType":"Position","entityId":"7"}`),
	)

	err := w.processEvent(context.Background(), event)
	assert.ErrorIs(t, err, e.ErrQueueUnavailable)
}

func TestProcessEvent_PermanentFailureIsNotRetryable(t *testing.T) {
	producer := &flakyProducer{failErr: errors.New("Message Size Too Large")}
	w := NewOutboxWorker(&fakeOutboxRepo{}, logger.NewNopLogger(), producer, "")

	event := usecase.NewOutboxEvent(
		"6ba7b811-9dad-11d1-80b4-00c04fd430c8",
		usecase.EmbeddingRefreshRequested,
		domain.EntitySeeker,
		9,
		[]byte(`{"entityType":"Seeker","entityId":"9"}`),
	)

	err := w.processEvent(context.Background(), event)
	require.Error(t, err)
	assert.NotErrorIs(t, err, e.ErrQueueUnavailable)
}
