package http

import (
	"testing"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "whole", in: "120000", want: 12_000_000},
		{name: "two decimals", in: "120000.50", want: 12_000_050},
		{name: "empty means open bound", in: "", want: 0},
		{name: "whitespace means open bound", in: "  ", want: 0},
		{name: "negative", in: "-1", wantErr: e.ErrInvalidSalary},
		{name: "garbage", in: "12k", wantErr: e.ErrInvalidSalary},
		{name: "too many decimals", in: "100.999", wantErr: e.ErrSalaryPrecision},
		{name: "over limit", in: "1000000001", wantErr: e.ErrInvalidSalary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSalaryToCents(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntityID(t *testing.T) {
	id, err := parseEntityID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = parseEntityID("0")
	require.ErrorIs(t, err, e.ErrInvalidEntityID)

	_, err = parseEntityID("-5")
	require.ErrorIs(t, err, e.ErrInvalidEntityID)

	_, err = parseEntityID("abc")
	require.ErrorIs(t, err, e.ErrInvalidEntityID)
}

func TestParsePool(t *testing.T) {
	ids, err := parsePool("3, 5,9")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 9}, ids)

	ids, err = parsePool("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parsePool("3,x")
	require.ErrorIs(t, err, e.ErrInvalidEntityID)
}

func TestParseLimit(t *testing.T) {
	limit, err := parseLimit("")
	require.NoError(t, err)
	assert.Zero(t, limit)

	limit, err = parseLimit("25")
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	_, err = parseLimit("-1")
	require.ErrorIs(t, err, e.ErrInvalidLimit)
}

func TestParseCriteria(t *testing.T) {
	criteria, err := parseCriteria([]criterionPayload{
		{Kind: "salary", Value: "120000-180000", Priority: "DealBreaker"},
		{Kind: "work_setting", Value: "Remote,Hybrid", Priority: "Flexible"},
	})
	require.NoError(t, err)
	require.Len(t, criteria, 2)
	assert.Equal(t, domain.CriterionSalary, criteria[0].Kind)
	assert.Equal(t, domain.PriorityDealBreaker, criteria[0].Priority)

	_, err = parseCriteria([]criterionPayload{{Kind: "salary", Priority: "Urgent"}})
	require.ErrorIs(t, err, e.ErrInvalidPriority)

	_, err = parseCriteria([]criterionPayload{{Priority: "None"}})
	require.ErrorIs(t, err, e.ErrMissingFields)

	// Повторяющийся kind отклоняется на валидации, а не падает на уникальном индексе
	_, err = parseCriteria([]criterionPayload{
		{Kind: "salary", Value: "120000-180000", Priority: "DealBreaker"},
		{Kind: "salary", Value: "90000-", Priority: "Flexible"},
	})
	require.ErrorIs(t, err, e.ErrStatusBadRequest)
}
