package domain

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshJob_EnvelopeContract(t *testing.T) {
	data, err := NewRefreshJob(EntitySeeker, 42).MarshalEnvelope()
	require.NoError(t, err)

	// ID уходит строкой — внешний контракт очереди
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{
		"entityType": "Seeker",
		"entityId":   "42",
	}, raw)

	job, err := UnmarshalRefreshJob(data)
	require.NoError(t, err)
	assert.Equal(t, EntitySeeker, job.EntityType)
	assert.EqualValues(t, 42, job.EntityID)
}

func TestUnmarshalRefreshJob_Malformed(t *testing.T) {
	_, err := UnmarshalRefreshJob([]byte(`{broken`))
	require.Error(t, err)

	_, err = UnmarshalRefreshJob([]byte(`{"entityType":"Team","entityId":"1"}`))
	require.ErrorIs(t, err, e.ErrUnknownEntityType)

	_, err = UnmarshalRefreshJob([]byte(`{"entityType":"Position","entityId":"abc"}`))
	require.ErrorIs(t, err, e.ErrInvalidEntityID)
}
