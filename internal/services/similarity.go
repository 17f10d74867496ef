package services

import "math"

// Cosine computes the cosine similarity dot(a,b) / (|a|·|b|) between two
// embedding vectors. Cosine similarity is undefined when either vector has
// zero norm; this implementation returns 0.0 for that case so a degenerate
// embedding never aborts a run. Mismatched lengths compare over the shorter
// prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
