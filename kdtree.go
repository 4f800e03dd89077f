package dbscan

import (
	"container/heap"
	"math"
	"sort"
)

// noChild marks a missing child in the node arena.
const noChild = -1

// kdNode is one node of the tree. Every node owns exactly one point; the
// children are indices into KDTree.nodes.
type kdNode struct {
	point    int // original point index
	splitDim int // depth % dims
	left     int
	right    int
}

// KDTree is a KD-tree spatial index for exact fixed-radius and k-nearest
// neighbour queries under the Euclidean metric. Points are stored in a flat
// row-major array; nodes live in a single arena slice so the tree has no
// pointers to manage.
//
// Each point index appears in exactly one node. At depth d the split
// dimension is d % dims; every point in a node's left subtree has a
// coordinate <= the node's in that dimension, every point in the right
// subtree a coordinate >= it.
type KDTree struct {
	data   []float64 // flat row-major point data (n * dims)
	n      int
	dims   int
	metric EuclideanMetric
	nodes  []kdNode
	root   int
}

// NewKDTree builds a KD-tree over flat row-major data with n points of
// dimensionality dims. The data slice is referenced, not copied, and must
// not be modified while the tree is in use.
//
// Construction is O(n log n) on average. Medians are found with quickselect,
// so adversarial input orders can degrade it to O(n²); shuffle the input if
// that matters.
func NewKDTree(data []float64, n, dims int) (*KDTree, error) {
	if n <= 0 {
		return nil, dataErrorf("kd-tree needs at least one point, got %d", n)
	}
	if dims <= 0 {
		return nil, dataErrorf("kd-tree needs at least one dimension, got %d", dims)
	}
	if len(data) != n*dims {
		return nil, dataErrorf("kd-tree data length %d does not match n*dims = %d", len(data), n*dims)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	t := &KDTree{
		data:  data,
		n:     n,
		dims:  dims,
		nodes: make([]kdNode, 0, n),
	}
	t.root = t.buildNode(idx, 0)
	return t, nil
}

// buildNode builds the subtree for idx at the given depth and returns its
// arena index, or noChild when idx is empty.
func (t *KDTree) buildNode(idx []int, depth int) int {
	if len(idx) == 0 {
		return noChild
	}

	nodeID := len(t.nodes)
	dim := depth % t.dims
	t.nodes = append(t.nodes, kdNode{splitDim: dim, left: noChild, right: noChild})

	if len(idx) == 1 {
		t.nodes[nodeID].point = idx[0]
		return nodeID
	}

	median := len(idx) / 2
	t.selectNth(idx, median, dim)
	t.nodes[nodeID].point = idx[median]

	left := t.buildNode(idx[:median], depth+1)
	right := t.buildNode(idx[median+1:], depth+1)
	t.nodes[nodeID].left = left
	t.nodes[nodeID].right = right
	return nodeID
}

// selectNth reorders idx so that idx[nth] holds the element that would be
// there if idx were sorted by coordinate dim, with no larger value before it
// and no smaller value after it.
func (t *KDTree) selectNth(idx []int, nth, dim int) {
	left, right := 0, len(idx)-1
	for left < right {
		p := t.partition(idx, left, right, dim)
		switch {
		case p == nth:
			return
		case p > nth:
			right = p - 1
		default:
			left = p + 1
		}
	}
}

// partition splits idx[left:right+1] around its middle element and returns
// the pivot's final position. Values strictly below the pivot end up on its
// left.
func (t *KDTree) partition(idx []int, left, right, dim int) int {
	mid := left + (right-left)/2
	pivot := t.coord(idx[mid], dim)
	idx[mid], idx[right] = idx[right], idx[mid]

	store := left
	for i := left; i < right; i++ {
		if t.coord(idx[i], dim) < pivot {
			idx[store], idx[i] = idx[i], idx[store]
			store++
		}
	}
	idx[store], idx[right] = idx[right], idx[store]
	return store
}

func (t *KDTree) coord(i, dim int) float64 {
	return t.data[i*t.dims+dim]
}

func (t *KDTree) point(i int) []float64 {
	return t.data[i*t.dims : (i+1)*t.dims]
}

func (t *KDTree) NumPoints() int   { return t.n }
func (t *KDTree) NumFeatures() int { return t.dims }

// NumNodes returns the number of nodes in the tree, which equals the number
// of points.
func (t *KDTree) NumNodes() int { return len(t.nodes) }

// RegionQuery returns the indices of all points within eps of point idx,
// including idx itself, sorted ascending.
func (t *KDTree) RegionQuery(idx int, eps float64, dst []int) []int {
	if idx < 0 || idx >= t.n {
		return dst[:0]
	}
	return t.RangeQuery(t.point(idx), eps, dst)
}

// RangeQuery appends to dst[:0] the indices of all points whose Euclidean
// distance to query is <= eps, sorted ascending.
func (t *KDTree) RangeQuery(query []float64, eps float64, dst []int) []int {
	dst = dst[:0]
	if len(query) != t.dims {
		return dst
	}
	dst = t.rangeSearch(t.root, query, eps, dst)
	sort.Ints(dst)
	return dst
}

// rangeSearch visits the subtree rooted at nodeID depth-first, near side
// first. The far side is skipped when the split plane alone is farther than
// eps from the query.
func (t *KDTree) rangeSearch(nodeID int, query []float64, eps float64, dst []int) []int {
	if nodeID == noChild {
		return dst
	}
	node := t.nodes[nodeID]
	pt := t.point(node.point)

	if t.metric.Distance(query, pt) <= eps {
		dst = append(dst, node.point)
	}

	diff := query[node.splitDim] - pt[node.splitDim]
	near, far := node.right, node.left
	if diff < 0 {
		near, far = node.left, node.right
	}

	dst = t.rangeSearch(near, query, eps, dst)
	if math.Abs(diff) <= eps {
		dst = t.rangeSearch(far, query, eps, dst)
	}
	return dst
}

// QueryKNN finds the k nearest neighbours for each row in queryData (flat
// row-major, queryRows rows). Results per query are sorted by distance
// ascending. A query row that is itself in the tree is returned as its own
// nearest neighbour.
func (t *KDTree) QueryKNN(queryData []float64, queryRows, k int) ([][]int, [][]float64) {
	indices := make([][]int, queryRows)
	distances := make([][]float64, queryRows)
	if k <= 0 {
		return indices, distances
	}

	for q := 0; q < queryRows; q++ {
		query := queryData[q*t.dims : (q+1)*t.dims]
		h := make(knnHeap, 0, k)
		t.knnSearch(t.root, query, k, &h)

		// Extract results sorted by distance (ascending).
		nResults := h.Len()
		idx := make([]int, nResults)
		dist := make([]float64, nResults)
		for i := nResults - 1; i >= 0; i-- {
			item := heap.Pop(&h).(knnItem)
			idx[i] = item.index
			dist[i] = item.dist
		}
		indices[q] = idx
		distances[q] = dist
	}

	return indices, distances
}

// knnSearch performs a single-tree KNN traversal using a max-heap of size k.
func (t *KDTree) knnSearch(nodeID int, query []float64, k int, h *knnHeap) {
	if nodeID == noChild {
		return
	}
	node := t.nodes[nodeID]
	pt := t.point(node.point)

	d := t.metric.Distance(query, pt)
	if h.Len() < k {
		heap.Push(h, knnItem{index: node.point, dist: d})
	} else if d < (*h)[0].dist {
		(*h)[0] = knnItem{index: node.point, dist: d}
		heap.Fix(h, 0)
	}

	diff := query[node.splitDim] - pt[node.splitDim]
	near, far := node.right, node.left
	if diff < 0 {
		near, far = node.left, node.right
	}

	t.knnSearch(near, query, k, h)

	// Prune the far side if the split plane is beyond the current k-th distance.
	if h.Len() < k || math.Abs(diff) < (*h)[0].dist {
		t.knnSearch(far, query, k, h)
	}
}

// --- max-heap for KNN queries ---

type knnItem struct {
	index int
	dist  float64
}

// knnHeap is a max-heap of knnItem (largest distance on top) used as a
// bounded priority queue for KNN queries.
type knnHeap []knnItem

func (h knnHeap) Len() int            { return len(h) }
func (h knnHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist } // max-heap
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
