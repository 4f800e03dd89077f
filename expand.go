package dbscan

import "go.uber.org/zap"

// expander holds the state of one clustering run: the labels being built
// and the two scratch buffers (neighbours, seeds) sized to the point count.
type expander struct {
	index  NeighborIndex
	eps    float64
	minPts int
	log    *zap.Logger

	labels    []Label
	core      []bool
	neighbors []int
	seeds     []int
}

func newExpander(index NeighborIndex, eps float64, minPts int, log *zap.Logger) *expander {
	n := index.NumPoints()
	return &expander{
		index:     index,
		eps:       eps,
		minPts:    minPts,
		log:       log,
		labels:    make([]Label, n),
		core:      make([]bool, n),
		neighbors: make([]int, 0, n),
		seeds:     make([]int, 0, n),
	}
}

// run visits points in index order and starts a new cluster at every
// unclassified core point. It returns the number of clusters.
func (e *expander) run() int {
	clusterID := 0
	for i := range e.labels {
		if e.labels[i].State != Unclassified {
			continue
		}

		e.neighbors = e.index.RegionQuery(i, e.eps, e.neighbors)
		if len(e.neighbors) < e.minPts {
			// Tentative: a cluster found later may still claim i as a border point.
			e.labels[i].markNoise()
			continue
		}

		e.core[i] = true
		size := e.expand(i, clusterID)
		e.log.Debug("cluster expanded",
			zap.Int("cluster", clusterID),
			zap.Int("origin", i),
			zap.Int("size", size))
		clusterID++
	}
	return clusterID
}

// expand grows cluster id from the core point origin, whose neighbourhood
// is in e.neighbors. It returns the number of points labelled.
//
// Unclassified neighbours of core seeds join the cluster and the seed list.
// Noise neighbours join the cluster as border points but are never
// expanded: they were already found to have fewer than minPts neighbours.
// Points already in another cluster keep their label.
func (e *expander) expand(origin, id int) int {
	size := 0
	seeds := append(e.seeds[:0], e.neighbors...)
	for _, s := range seeds {
		if e.labels[s].assign(id) {
			size++
		}
	}

	// Unordered removal of the origin.
	for j, s := range seeds {
		if s == origin {
			last := len(seeds) - 1
			seeds[j] = seeds[last]
			seeds = seeds[:last]
			break
		}
	}

	// Each point is appended at most once (only while Unclassified), so
	// seeds never outgrows its capacity of n.
	for cur := 0; cur < len(seeds); cur++ {
		e.neighbors = e.index.RegionQuery(seeds[cur], e.eps, e.neighbors)
		if len(e.neighbors) < e.minPts {
			continue
		}
		e.core[seeds[cur]] = true

		for _, q := range e.neighbors {
			switch e.labels[q].State {
			case Unclassified:
				e.labels[q].assign(id)
				seeds = append(seeds, q)
				size++
			case Noise:
				e.labels[q].assign(id)
				size++
			}
		}
	}

	e.seeds = seeds[:0]
	return size
}
