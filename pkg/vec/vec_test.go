package vec

import (
	"math"
	"testing"

	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	vectors := [][]float32{
		{},
		{0},
		{1.5, -2.25, 0.000123, 42},
		{math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(1))},
	}

	for _, v := range vectors {
		decoded, err := Decode(Encode(v))
		require.NoError(t, err)
		require.Len(t, decoded, len(v))
		for i := range v {
			assert.Equal(t, math.Float32bits(v[i]), math.Float32bits(decoded[i]))
		}
	}
}

func TestEncode_LittleEndianLayout(t *testing.T) {
	// 1.0 => 0x3F800000, little-endian байты: 00 00 80 3F
	data := Encode([]float32{1.0})
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, data)
}

func TestDecode_MalformedLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7} {
		_, err := Decode(make([]byte, n))
		assert.ErrorIs(t, err, e.ErrMalformedEmbedding, "len=%d", n)
	}
}

func TestCosine_Identical(t *testing.T) {
	v := []float32{0.1, 0.2, 0.3, 0.4}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{1, 2, 3}))
}

func TestCosine_EmptyAndNil(t *testing.T) {
	v := []float32{1, 2, 3}
	assert.Equal(t, 0.0, Cosine(nil, v))
	assert.Equal(t, 0.0, Cosine(v, nil))
	assert.Equal(t, 0.0, Cosine([]float32{}, []float32{}))
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}))
}

func TestCosine_Commutative(t *testing.T) {
	a := []float32{0.3, -0.5, 0.9}
	b := []float32{1.2, 0.4, -0.1}
	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosine_ClampedToUnitInterval(t *testing.T) {
	a := []float32{0.1234567, 0.7654321, 0.4242424}
	sim := Cosine(a, a)
	assert.LessOrEqual(t, sim, 1.0)
	assert.GreaterOrEqual(t, sim, 0.0)

	// Ортогональные векторы
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
}
