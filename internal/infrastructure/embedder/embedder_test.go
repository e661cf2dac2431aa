package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/match-backend/internal/cfg"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *Embedder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewEmbedder(&cfg.EmbedderCfg{
		Addr:       srv.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
	}, logger.NewNopLogger())
}

func TestEmbedText_Success(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/embed", r.URL.Path)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Senior Go developer", req.Text)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"vector":        []float32{0.1, 0.2, 0.3},
			"model_version": "v1",
		})
	})

	res, err := emb.EmbedText(context.Background(), usecase.NewEmbedReq("Senior Go developer"))
	require.NoError(t, err)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, res.Vector)
	require.Equal(t, "v1", res.ModelVersion)
}

func TestEmbedText_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	emb := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"vector":        []float32{1},
			"model_version": "v1",
		})
	})

	res, err := emb.EmbedText(context.Background(), usecase.NewEmbedReq("text"))
	require.NoError(t, err)
	require.Equal(t, []float32{1}, res.Vector)
	require.EqualValues(t, 3, calls.Load())
}

func TestEmbedText_EmptyVectorRejected(t *testing.T) {
	emb := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"vector":        []float32{},
			"model_version": "v1",
		})
	})
	emb.maxRetries = 1

	_, err := emb.EmbedText(context.Background(), usecase.NewEmbedReq("text"))
	require.Error(t, err)
}
