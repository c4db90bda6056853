package facematch

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrDimensionMismatch = errors.New("facematch: embedding dimension mismatch")

// DistanceMetric is the comparison capability: a numeric distance plus the
// within-threshold predicate, independent of the embedding model dimension.
// Lower distance always means a closer match.
type DistanceMetric interface {
	Name() string
	Distance(a, b Embedding) (float64, error)
	Within(distance, threshold float64) bool
}

// NewMetric returns the metric configured by name, defaulting to euclidean
// (the semantics of face_recognition's tolerance parameter).
func NewMetric(name string) DistanceMetric {
	if name == "cosine" {
		return Cosine{}
	}
	return Euclidean{}
}

// Euclidean is the L2 distance between embeddings.
type Euclidean struct{}

func (Euclidean) Name() string { return "euclidean" }

func (Euclidean) Distance(a, b Embedding) (float64, error) {
	fa, fb, err := widen(a, b)
	if err != nil {
		return 0, err
	}
	return floats.Distance(fa, fb, 2), nil
}

func (Euclidean) Within(distance, threshold float64) bool {
	return distance <= threshold
}

// Cosine is 1 - cosine similarity, so it shares the lower-is-closer
// convention with Euclidean.
type Cosine struct{}

func (Cosine) Name() string { return "cosine" }

func (Cosine) Distance(a, b Embedding) (float64, error) {
	fa, fb, err := widen(a, b)
	if err != nil {
		return 0, err
	}

	dot := floats.Dot(fa, fb)
	na := math.Sqrt(floats.Dot(fa, fa))
	nb := math.Sqrt(floats.Dot(fb, fb))
	if na == 0 || nb == 0 {
		return 1, nil
	}
	return 1 - dot/(na*nb), nil
}

func (Cosine) Within(distance, threshold float64) bool {
	return distance <= threshold
}

func widen(a, b Embedding) ([]float64, []float64, error) {
	if len(a) != len(b) {
		return nil, nil, ErrDimensionMismatch
	}
	fa := make([]float64, len(a))
	fb := make([]float64, len(b))
	for i := range a {
		fa[i] = float64(a[i])
		fb[i] = float64(b[i])
	}
	return fa, fb, nil
}
