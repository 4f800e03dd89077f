package dbscan

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// treeKDistanceThreshold is the point count from which EstimateEps answers
// k-nearest-neighbour queries with a KD-tree instead of a full scan.
const treeKDistanceThreshold = 512

// suggestedQuantile locates the suggested radius in the sorted k-distances,
// an approximation of the elbow of the k-distance graph.
const suggestedQuantile = 0.95

// KDistances holds the k-distance distribution of a dataset.
type KDistances struct {
	// Distances[i] is the Euclidean distance from point i to its k-th
	// nearest other point, in original point order.
	Distances []float64

	// K is the neighbour rank used.
	K int

	// SuggestedEps is the 95th percentile of Distances.
	SuggestedEps float64
}

// EstimateEps computes the k-distance of every point and suggests an Eps
// for clustering. k counts other points only, so it must lie in [1, n-1].
// A common choice is k = MinPts - 1.
func EstimateEps(data [][]float64, k int) (*KDistances, error) {
	dims, err := validateData(data)
	if err != nil {
		return nil, err
	}
	n := len(data)
	if k < 1 || k >= n {
		return nil, errors.WithHint(
			errors.Mark(errors.Newf("dbscan: k must be in [1, %d], got %d", n-1, k), ErrInvalidK),
			"k counts neighbours other than the point itself")
	}

	flat := flatten(data, dims)
	var dists []float64
	if n >= treeKDistanceThreshold {
		tree, err := NewKDTree(flat, n, dims)
		if err != nil {
			return nil, err
		}
		dists = kDistancesTree(tree, flat, k)
	} else {
		dists = kDistancesBrute(flat, n, dims, k)
	}

	sorted := make([]float64, n)
	copy(sorted, dists)
	sort.Float64s(sorted)

	return &KDistances{
		Distances:    dists,
		K:            k,
		SuggestedEps: sorted[int(suggestedQuantile*float64(n))],
	}, nil
}

// kDistancesBrute sorts every point's distances to all other points and
// takes the k-th smallest.
func kDistancesBrute(flat []float64, n, dims, k int) []float64 {
	var metric EuclideanMetric
	out := make([]float64, n)
	scratch := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		a := flat[i*dims : (i+1)*dims]
		scratch = scratch[:0]
		for j := 0; j < n; j++ {
			if j != i {
				scratch = append(scratch, metric.Distance(a, flat[j*dims:(j+1)*dims]))
			}
		}
		sort.Float64s(scratch)
		out[i] = scratch[k-1]
	}
	return out
}

// kDistancesTree queries k+1 neighbours per point (the point itself
// included) and takes the k-th one that is not the point. When duplicates
// push the point itself out of its own result, all k+1 entries are other
// points and the k-th still has the right distance.
func kDistancesTree(tree *KDTree, flat []float64, k int) []float64 {
	n := tree.NumPoints()
	indices, distances := tree.QueryKNN(flat, n, k+1)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		found := 0
		for j, idx := range indices[i] {
			if idx == i {
				continue
			}
			found++
			if found == k {
				out[i] = distances[i][j]
				break
			}
		}
	}
	return out
}
