package dbscan

// BruteForce answers neighbourhood queries with a linear scan. It works
// with any DistanceMetric.
type BruteForce struct {
	data   []float64 // flat row-major point data (n * dims)
	n      int
	dims   int
	metric DistanceMetric
}

// NewBruteForce copies data and returns a linear-scan neighbour index using
// metric (Euclidean when nil).
func NewBruteForce(data [][]float64, metric DistanceMetric) (*BruteForce, error) {
	dims, err := validateData(data)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	if err := validateMetric(metric); err != nil {
		return nil, err
	}
	return newBruteForce(flatten(data, dims), len(data), dims, metric), nil
}

func newBruteForce(data []float64, n, dims int, metric DistanceMetric) *BruteForce {
	return &BruteForce{data: data, n: n, dims: dims, metric: metric}
}

func (b *BruteForce) NumPoints() int   { return b.n }
func (b *BruteForce) NumFeatures() int { return b.dims }

func (b *BruteForce) point(i int) []float64 {
	return b.data[i*b.dims : (i+1)*b.dims]
}

// RegionQuery scans every point. Results are naturally in ascending index
// order. Negative or NaN distances never match.
func (b *BruteForce) RegionQuery(idx int, eps float64, dst []int) []int {
	dst = dst[:0]
	if idx < 0 || idx >= b.n {
		return dst
	}
	query := b.point(idx)
	for i := 0; i < b.n; i++ {
		d := b.metric.Distance(query, b.point(i))
		if d >= 0 && d <= eps {
			dst = append(dst, i)
		}
	}
	return dst
}
