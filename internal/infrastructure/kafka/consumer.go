package kafka

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/jitter"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const (
	consumeMaxAttempts = 3
	consumeBackoffBase = 500 * time.Millisecond
	consumeBackoffMax  = 10 * time.Second
)

// Consumer читает задания на обновление эмбеддингов и передаёт их в usecase.
// Сообщение подтверждается и после неустранимой ошибки: битое задание не
// должно блокировать партицию, сущность догонит следующее сохранение.
type Consumer struct {
	reader    *kafka.Reader
	refresher usecase.ProfileUC
	logger    logger.Logger
	wg        sync.WaitGroup
}

func NewConsumer(refresher usecase.ProfileUC, logger logger.Logger, cfg *cfg.KafkaCfg) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // явные коммиты после обработки
	})

	return &Consumer{
		reader:    reader,
		refresher: refresher,
		logger:    logger,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

func (c *Consumer) Stop() error {
	err := c.reader.Close()
	c.wg.Wait()
	return err
}

func (c *Consumer) run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Infof("Consumer stopped")
				return
			}
			c.logger.Warnf("Kafka fetch failed: %v", err)
			continue
		}

		if err := c.handleMessage(ctx, msg.Value); err != nil {
			c.logger.Warnf("Refresh job dropped after %d attempts: %v", consumeMaxAttempts, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warnf("Kafka commit failed: %v", err)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, payload []byte) error {
	job, err := domain.UnmarshalRefreshJob(payload)
	if err != nil {
		return e.Wrap("malformed refresh job", err)
	}

	var lastErr error
	for attempt := 0; attempt < consumeMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jitter.ExponentialBackoff(consumeBackoffBase, consumeBackoffMax, attempt-1, jitter.DefaultJitter)):
			}
		}

		lastErr = c.refresher.RefreshEmbedding(ctx, usecase.NewRefreshEmbeddingReq(job.EntityType, job.EntityID))
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}
