package dbscan

// NeighborIndex answers fixed-radius neighbourhood queries over a fixed
// point set. It is implemented by *BruteForce (any metric), *KDTree
// (Euclidean only) and *BallTree (true metrics). Every implementation must
// return the same indices for the same query and metric.
type NeighborIndex interface {
	// RegionQuery appends to dst[:0] the index of every point whose distance
	// to point idx is <= eps, in ascending order, and returns the slice. The
	// query point itself is included. dst should have capacity NumPoints()
	// to avoid reallocation.
	RegionQuery(idx int, eps float64, dst []int) []int

	// NumPoints returns the number of points in the index.
	NumPoints() int

	// NumFeatures returns the dimensionality of each point.
	NumFeatures() int
}

var (
	_ NeighborIndex = (*BruteForce)(nil)
	_ NeighborIndex = (*KDTree)(nil)
	_ NeighborIndex = (*BallTree)(nil)
)
