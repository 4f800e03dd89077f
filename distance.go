package dbscan

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// maxCosineDistance is returned by the cosine metric when either vector has
// zero norm.
const maxCosineDistance = 2.0

// DistanceMetric computes a non-negative dissimilarity between two
// coordinate vectors of equal length. Implementations must be pure.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric. Parameters the
// function needs are captured by the closure. Its return value is trusted;
// a negative or NaN distance never places two points in the same
// neighbourhood.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
// It is the only metric the KD-tree index supports.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be > 0; P = 1 and P = 2 give the Manhattan and Euclidean distances.
// Values below 1 are accepted even though the result is then not a metric
// in the strict sense.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, m.P)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// If either vector has zero norm the result is 2, the maximum distance.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return maxCosineDistance
	}
	d := 1.0 - floats.Dot(a, b)/(normA*normB)
	// Rounding can push a vector's distance to itself just below zero.
	return math.Max(d, 0)
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// checkVectors validates a pair of vectors for the checked distance functions.
func checkVectors(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return vectorErrorf("vectors must have at least one dimension, got %d and %d", len(a), len(b))
	}
	if len(a) != len(b) {
		return vectorErrorf("vector dimensions differ: %d != %d", len(a), len(b))
	}
	return nil
}

// EuclideanDistance returns the Euclidean distance between a and b, or an
// error if the vectors are empty or of different lengths.
func EuclideanDistance(a, b []float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}
	return EuclideanMetric{}.Distance(a, b), nil
}

// ManhattanDistance returns the Manhattan distance between a and b.
func ManhattanDistance(a, b []float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}
	return ManhattanMetric{}.Distance(a, b), nil
}

// MinkowskiDistance returns the Minkowski distance of order p between a and
// b. p must be > 0.
func MinkowskiDistance(a, b []float64, p float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}
	if !(p > 0) || math.IsInf(p, 0) {
		return 0, vectorErrorf("Minkowski exponent must be finite and > 0, got %v", p)
	}
	return MinkowskiMetric{P: p}.Distance(a, b), nil
}

// CosineDistance returns 1 - cosine similarity of a and b (2 when either
// vector has zero norm).
func CosineDistance(a, b []float64) (float64, error) {
	if err := checkVectors(a, b); err != nil {
		return 0, err
	}
	return CosineMetric{}.Distance(a, b), nil
}

// ParseMetric returns the metric registered under name. p is only used by
// "minkowski".
func ParseMetric(name string, p float64) (DistanceMetric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "l2":
		return EuclideanMetric{}, nil
	case "manhattan", "l1", "cityblock":
		return ManhattanMetric{}, nil
	case "minkowski":
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, configErrorf("Minkowski exponent must be finite and > 0, got %v", p)
		}
		return MinkowskiMetric{P: p}, nil
	case "cosine":
		return CosineMetric{}, nil
	case "chebyshev", "linf":
		return ChebyshevMetric{}, nil
	default:
		return nil, configErrorf("unknown metric %q", name)
	}
}

// metricName returns a short name for logging.
func metricName(m DistanceMetric) string {
	switch m.(type) {
	case EuclideanMetric:
		return "euclidean"
	case ManhattanMetric:
		return "manhattan"
	case MinkowskiMetric:
		return "minkowski"
	case CosineMetric:
		return "cosine"
	case ChebyshevMetric:
		return "chebyshev"
	case DistanceFunc:
		return "custom"
	default:
		return "custom"
	}
}
