package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineIdenticalVectors(t *testing.T) {
	v := []float32{0.5, 0.25, 0.8, 0.1}

	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
}

func TestCosineOrthogonalVectors(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}

	assert.InDelta(t, 0.0, Cosine(a, b), 1e-9)
}

func TestCosineOppositeVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}

	assert.InDelta(t, -1.0, Cosine(a, b), 1e-9)
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{0.3, 0.9, 0.2}
	b := []float32{0.7, 0.1, 0.5}

	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosineZeroNorm(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	assert.Equal(t, 0.0, Cosine(zero, v))
	assert.Equal(t, 0.0, Cosine(v, zero))
	assert.Equal(t, 0.0, Cosine(zero, zero))
}

func TestCosineEmptyVectors(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float32{}, []float32{1, 2}))
}

func TestCosineScaleInvariance(t *testing.T) {
	a := []float32{1, 2, 3}
	scaled := []float32{10, 20, 30}

	assert.InDelta(t, 1.0, Cosine(a, scaled), 1e-6)
}
