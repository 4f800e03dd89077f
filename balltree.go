package dbscan

import (
	"math"
	"sort"
)

// DefaultLeafSize is the leaf capacity NewBallTree uses when asked for a
// non-positive one.
const DefaultLeafSize = 16

// ballSlack widens the pruning test by a relative margin so that rounding in
// the centroid distance never drops a point that lies exactly at eps.
const ballSlack = 1e-9

// ballNode covers idxArray[start:end] with a ball of the given radius around
// its centroid.
type ballNode struct {
	start  int
	end    int
	leaf   bool
	radius float64
}

// BallTree is a ball tree spatial index for exact fixed-radius queries under
// any metric that satisfies the triangle inequality: Euclidean, Manhattan,
// Chebyshev and Minkowski with P >= 1 (see [BallTreeValidMetric]).
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - every node's ball contains all points of its subtree
type BallTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int
	dims     int
	leafSize int
	metric   DistanceMetric
	idxArray []int // permutation: tree-order position → original index
	nodes    []ballNode
	// centroids[node*dims .. (node+1)*dims) = centroid of node
	centroids []float64
	numNodes  int
}

// BallTreeValidMetric reports whether m is a true metric the ball tree can
// prune with. Cosine distance and custom functions are not.
func BallTreeValidMetric(m DistanceMetric) bool {
	switch v := m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric:
		return true
	case MinkowskiMetric:
		return v.P >= 1 && !math.IsInf(v.P, 0)
	default:
		return false
	}
}

// NewBallTree builds a ball tree over flat row-major data with n points of
// dimensionality dims. leafSize caps the points per leaf; values < 1 select
// DefaultLeafSize. The data slice is referenced, not copied.
func NewBallTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) (*BallTree, error) {
	if n <= 0 {
		return nil, dataErrorf("ball tree needs at least one point, got %d", n)
	}
	if dims <= 0 {
		return nil, dataErrorf("ball tree needs at least one dimension, got %d", dims)
	}
	if len(data) != n*dims {
		return nil, dataErrorf("ball tree data length %d does not match n*dims = %d", len(data), n*dims)
	}
	if !BallTreeValidMetric(metric) {
		return nil, configErrorf("ball tree does not support metric %s", metricName(metric))
	}
	if leafSize < 1 {
		leafSize = DefaultLeafSize
	}

	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := ballMaxNodes(n, leafSize)
	t := &BallTree{
		data:      data,
		n:         n,
		dims:      dims,
		leafSize:  leafSize,
		metric:    metric,
		idxArray:  idxArray,
		nodes:     make([]ballNode, maxNodes),
		centroids: make([]float64, maxNodes*dims),
	}
	t.buildNode(0, 0, n)
	return t, nil
}

// ballMaxNodes bounds the array size of a tree whose nodes halve their
// points until at most leafSize remain.
func ballMaxNodes(n, leafSize int) int {
	levels := 1
	for size := n; size > leafSize; size = (size + 1) / 2 {
		levels++
	}
	return 1<<levels - 1
}

// buildNode recursively builds the ball tree for points in idxArray[start:end].
func (t *BallTree) buildNode(nodeID, start, end int) {
	t.numNodes++
	t.computeCentroid(nodeID, start, end)

	// Radius: max distance from centroid to any point in this node.
	centroid := t.centroid(nodeID)
	var radius float64
	for i := start; i < end; i++ {
		if d := t.metric.Distance(centroid, t.point(t.idxArray[i])); d > radius {
			radius = d
		}
	}

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = ballNode{start: start, end: end, leaf: true, radius: radius}
		return
	}
	t.nodes[nodeID] = ballNode{start: start, end: end, radius: radius}

	// Split at the median of the dimension with the greatest spread.
	splitDim := t.findSpreadDim(start, end)
	t.sortByDim(start, end, splitDim)
	mid := start + count/2

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeCentroid stores the mean of points idxArray[start:end].
func (t *BallTree) computeCentroid(nodeID, start, end int) {
	c := t.centroid(nodeID)
	for d := range c {
		c[d] = 0
	}
	for i := start; i < end; i++ {
		pt := t.point(t.idxArray[i])
		for d := range c {
			c[d] += pt[d]
		}
	}
	count := float64(end - start)
	for d := range c {
		c[d] /= count
	}
}

// findSpreadDim returns the dimension with the greatest spread among
// points in idxArray[start:end].
func (t *BallTree) findSpreadDim(start, end int) int {
	bestDim := 0
	bestSpread := -1.0
	for d := 0; d < t.dims; d++ {
		minVal := math.Inf(1)
		maxVal := math.Inf(-1)
		for i := start; i < end; i++ {
			v := t.data[t.idxArray[i]*t.dims+d]
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
		if spread := maxVal - minVal; spread > bestSpread {
			bestSpread = spread
			bestDim = d
		}
	}
	return bestDim
}

// sortByDim sorts idxArray[start:end] by the given dimension. Ties keep
// index order so the layout is deterministic.
func (t *BallTree) sortByDim(start, end, dim int) {
	sub := t.idxArray[start:end]
	sort.SliceStable(sub, func(i, j int) bool {
		return t.data[sub[i]*t.dims+dim] < t.data[sub[j]*t.dims+dim]
	})
}

func (t *BallTree) centroid(nodeID int) []float64 {
	return t.centroids[nodeID*t.dims : (nodeID+1)*t.dims]
}

func (t *BallTree) point(i int) []float64 {
	return t.data[i*t.dims : (i+1)*t.dims]
}

func (t *BallTree) NumPoints() int   { return t.n }
func (t *BallTree) NumFeatures() int { return t.dims }

// NumNodes returns the number of nodes built.
func (t *BallTree) NumNodes() int { return t.numNodes }

// RegionQuery returns the indices of all points within eps of point idx,
// including idx itself, sorted ascending.
func (t *BallTree) RegionQuery(idx int, eps float64, dst []int) []int {
	if idx < 0 || idx >= t.n {
		return dst[:0]
	}
	return t.RangeQuery(t.point(idx), eps, dst)
}

// RangeQuery appends to dst[:0] the indices of all points whose distance to
// query is <= eps, sorted ascending.
func (t *BallTree) RangeQuery(query []float64, eps float64, dst []int) []int {
	dst = dst[:0]
	if len(query) != t.dims {
		return dst
	}
	dst = t.rangeSearch(0, query, eps, dst)
	sort.Ints(dst)
	return dst
}

// rangeSearch skips a node when the query is farther than eps from every
// point its ball can hold.
func (t *BallTree) rangeSearch(nodeID int, query []float64, eps float64, dst []int) []int {
	node := t.nodes[nodeID]
	dc := t.metric.Distance(query, t.centroid(nodeID))
	margin := ballSlack * (dc + node.radius + eps)
	if dc-node.radius > eps+margin {
		return dst
	}

	if node.leaf {
		for i := node.start; i < node.end; i++ {
			ptIdx := t.idxArray[i]
			if t.metric.Distance(query, t.point(ptIdx)) <= eps {
				dst = append(dst, ptIdx)
			}
		}
		return dst
	}

	dst = t.rangeSearch(2*nodeID+1, query, eps, dst)
	return t.rangeSearch(2*nodeID+2, query, eps, dst)
}
