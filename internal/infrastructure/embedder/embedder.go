package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/jitter"
	"github.com/DRSN-tech/match-backend/pkg/logger"
)

// Embedder — клиент внешнего сервиса векторизации текста профилей.
type Embedder struct {
	httpClient *http.Client
	addr       string
	maxRetries int
	logger     logger.Logger
}

func NewEmbedder(cfg *cfg.EmbedderCfg, logger logger.Logger) *Embedder {
	return &Embedder{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		addr:       cfg.Addr,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector       []float32 `json:"vector"`
	ModelVersion string    `json:"model_version"`
}

// EmbedText векторизует текст с retry-логикой и экспоненциальной задержкой
func (m *Embedder) EmbedText(ctx context.Context, req *usecase.EmbedReq) (*usecase.EmbedRes, error) {
	const (
		op         = "Embedder.EmbedText"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		res, err := m.embedOnce(ctx, req.Text)
		if err == nil {
			return res, nil
		}

		if attempt == m.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", m.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		m.logger.Warnf("embedding failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

func (m *Embedder) embedOnce(ctx context.Context, text string) (*usecase.EmbedRes, error) {
	const op = "Embedder.embedOnce"

	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.addr+"/v1/embed", bytes.NewReader(body))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, e.Wrap(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload))
	}

	var res embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(res.Vector) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyVector)
	}

	return usecase.NewEmbedRes(res.Vector, res.ModelVersion), nil
}
