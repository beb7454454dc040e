package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	t.Parallel()

	t.Run("unit length", func(t *testing.T) {
		t.Parallel()
		got := docdex.NormalizeVector([]float64{3, 4})
		require.Len(t, got, 2)
		assert.InDelta(t, 0.6, got[0], 1e-9)
		assert.InDelta(t, 0.8, got[1], 1e-9)
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		t.Parallel()
		got := docdex.NormalizeVector([]float64{0, 0, 0})
		assert.Equal(t, []float64{0, 0, 0}, got)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors", func(t *testing.T) {
		t.Parallel()
		v := docdex.NormalizeVector([]float64{1, 2, 3})
		assert.InDelta(t, 1.0, docdex.CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.0, docdex.CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, -1.0, docdex.CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	})

	t.Run("bounded", func(t *testing.T) {
		t.Parallel()
		got := docdex.CosineSimilarity([]float64{0.3, 0.9, 0.1}, []float64{0.8, 0.2, 0.5})
		assert.GreaterOrEqual(t, got, -1.0)
		assert.LessOrEqual(t, got, 1.0)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, docdex.CosineSimilarity([]float64{1}, []float64{1, 2}))
	})

	t.Run("zero vector", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, docdex.CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	})
}
