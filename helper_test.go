package main

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
		delta    float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1.0, 2.0, 3.0},
			b:        []float32{1.0, 2.0, 3.0},
			expected: 1.0,
			delta:    0.0001,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1.0, 0.0},
			b:        []float32{0.0, 1.0},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1.0, 2.0, 3.0},
			b:        []float32{-1.0, -2.0, -3.0},
			expected: -1.0,
			delta:    0.0001,
		},
		{
			name:     "vectors at 45 degrees",
			a:        []float32{1.0, 0.0},
			b:        []float32{0.707, 0.707},
			expected: 0.707,
			delta:    0.01,
		},
		{
			name:     "zero vector degrades to 0",
			a:        []float32{0.0, 0.0, 0.0},
			b:        []float32{1.0, 2.0, 3.0},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name:     "mismatched dimensions degrade to 0",
			a:        []float32{1.0, 2.0},
			b:        []float32{1.0, 2.0, 3.0},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name:     "empty vector degrades to 0",
			a:        []float32{},
			b:        []float32{1.0, 2.0},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name:     "both empty degrade to 0",
			a:        nil,
			b:        nil,
			expected: 0.0,
			delta:    0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cosineSimilarity(tt.a, tt.b)
			if diff := math.Abs(result - tt.expected); diff > tt.delta {
				t.Errorf("cosineSimilarity() = %f, expected %f (delta %f)", result, tt.expected, diff)
			}
		})
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, 0.5, 2}, {3, -2, 0}},
		{{0.1, 0.9}, {0.7, 0.3}},
	}
	for _, p := range pairs {
		ab := cosineSimilarity(p[0], p[1])
		ba := cosineSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("expected symmetric similarity, got %f vs %f", ab, ba)
		}
	}
}

func TestCosineSimilarityRange(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0}, {0.5, 0.5, 0.5}, {-2, 1, 3}, {10, -10, 0.1},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			s := cosineSimilarity(a, b)
			if s < -1.0000001 || s > 1.0000001 {
				t.Errorf("similarity %f out of [-1, 1] for %v, %v", s, a, b)
			}
		}
	}
}

func TestHaversineDistance(t *testing.T) {
	t.Run("Same coordinates should return 0", func(t *testing.T) {
		distance := haversine(60.1699, 24.9384, 60.1699, 24.9384)
		if distance != 0 {
			t.Errorf("Expected 0 for same coordinates, got %f", distance)
		}
	})

	t.Run("Known distance verification", func(t *testing.T) {
		// Helsinki to Tampere is approximately 160km
		distance := haversine(60.1699, 24.9384, 61.4991, 23.7871)
		if distance < 150 || distance > 170 {
			t.Errorf("Expected ~160km for Helsinki-Tampere, got %.1fkm", distance)
		}
	})

	t.Run("Symmetric distance", func(t *testing.T) {
		distance1 := haversine(60.1699, 24.9384, 61.4991, 23.7871)
		distance2 := haversine(61.4991, 23.7871, 60.1699, 24.9384)
		if math.Abs(distance1-distance2) > 0.001 {
			t.Errorf("Expected symmetric distance, got %.6f vs %.6f", distance1, distance2)
		}
	})

	t.Run("One degree of latitude at the equator", func(t *testing.T) {
		distance := haversine(0, 0, 1, 0)
		// ~111.2km on a spherical earth model
		if distance < 110 || distance > 112 {
			t.Errorf("Expected ~111km for one degree of latitude, got %.1fkm", distance)
		}
	})
}
