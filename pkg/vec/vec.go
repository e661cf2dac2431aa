// Package vec содержит кодек векторов эмбеддингов и вычисление косинусной близости.
// Всё чистые функции без побочных эффектов, безопасные для конкурентного вызова.
package vec

import (
	"encoding/binary"
	"math"

	"github.com/DRSN-tech/match-backend/pkg/e"
)

const (
	// float32Width — ширина одного элемента вектора в байтах
	float32Width = 4

	// normEpsilon — порог, ниже которого норма вектора считается нулевой
	normEpsilon = 1e-10
)

// Encode сериализует вектор в little-endian байты.
// Порядок байт фиксирован: это контракт хранения, а не выбор платформы.
func Encode(vector []float32) []byte {
	buf := make([]byte, len(vector)*float32Width)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*float32Width:], math.Float32bits(v))
	}

	return buf
}

// Decode восстанавливает вектор из байтов.
// Возвращает e.ErrMalformedEmbedding, если длина не кратна ширине float32.
func Decode(data []byte) ([]float32, error) {
	if len(data)%float32Width != 0 {
		return nil, e.ErrMalformedEmbedding
	}

	vector := make([]float32, len(data)/float32Width)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(data[i*float32Width:])
		vector[i] = math.Float32frombits(bits)
	}

	return vector, nil
}

// Cosine возвращает косинусную близость двух векторов в диапазоне [0, 1].
// Пустые векторы, несовпадение размерностей и нулевая норма дают 0 —
// это "нет сигнала", а не ошибка: устаревший или отсутствующий эмбеддинг
// не должен ронять ранжирование.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA < normEpsilon || normB < normEpsilon {
		return 0
	}

	// Отсечение накопленной ошибки округления за пределами [0, 1]
	sim := dot / (normA * normB)
	if sim > 1 {
		return 1
	}
	if sim < 0 {
		return 0
	}

	return sim
}
