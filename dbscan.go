package dbscan

import (
	"math"

	"go.uber.org/zap"
)

// Algorithm selects the neighbourhood query strategy.
type Algorithm string

const (
	AlgorithmAuto     Algorithm = "auto"
	AlgorithmBrute    Algorithm = "brute"
	AlgorithmKDTree   Algorithm = "kdtree"
	AlgorithmBallTree Algorithm = "balltree"
)

// Config controls DBSCAN clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Eps is the neighbourhood radius. Two points are neighbours when their
	// distance is <= Eps. Must be finite and > 0. Default: 0.5.
	Eps float64

	// MinPts is the number of points (the point itself included) an
	// Eps-neighbourhood must hold for its centre to be a core point.
	// Must be >= 1. Default: 5.
	MinPts int

	// Metric is the distance function used to measure point similarity.
	// Built-in: EuclideanMetric, ManhattanMetric, MinkowskiMetric,
	// CosineMetric, ChebyshevMetric. Use DistanceFunc to wrap a custom
	// function. Default: EuclideanMetric.
	Metric DistanceMetric

	// Algorithm selects the neighbourhood strategy.
	// "auto" uses the KD-tree when the metric is Euclidean, brute force
	// otherwise. "kdtree" asks for the KD-tree but still runs brute force
	// for non-Euclidean metrics. "balltree" asks for the ball tree, which
	// serves every metric BallTreeValidMetric accepts, and runs brute force
	// for the rest. "brute" always scans every point.
	// All strategies produce identical labels. Default: "auto".
	Algorithm Algorithm

	// Logger receives debug traces of the run. Default: a no-op logger.
	Logger *zap.Logger
}

// Result contains the output of DBSCAN clustering.
type Result struct {
	// Labels assigns each point to a cluster (0-indexed cluster ID) or
	// NoiseID (-1) for noise.
	Labels []int

	// Core reports which points are core points: their Eps-neighbourhood
	// holds at least MinPts points. Clustered points that are not core are
	// border points.
	Core []bool

	// NumClusters is the number of clusters found. Cluster IDs are
	// 0..NumClusters-1.
	NumClusters int

	// Algorithm is the neighbourhood strategy that actually ran.
	Algorithm Algorithm
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Eps:       0.5,
		MinPts:    5,
		Metric:    EuclideanMetric{},
		Algorithm: AlgorithmAuto,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if !(cfg.Eps > 0) || math.IsInf(cfg.Eps, 1) {
		return configErrorf("Eps must be finite and > 0, got %v", cfg.Eps)
	}
	if cfg.MinPts < 1 {
		return configErrorf("MinPts must be >= 1, got %d", cfg.MinPts)
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree:
		// valid
	default:
		return configErrorf("invalid Algorithm %q", cfg.Algorithm)
	}
	return validateMetric(cfg.Metric)
}

// validateMetric rejects metrics whose parameters are out of domain.
func validateMetric(m DistanceMetric) error {
	switch v := m.(type) {
	case MinkowskiMetric:
		if !(v.P > 0) || math.IsInf(v.P, 0) {
			return configErrorf("MinkowskiMetric.P must be finite and > 0, got %v", v.P)
		}
	case DistanceFunc:
		if v == nil {
			return configErrorf("DistanceFunc must not be nil")
		}
	case nil:
		return configErrorf("Metric must not be nil")
	}
	return nil
}

// Cluster performs DBSCAN clustering on the given data.
// Each element is a point (float64 slice); all points must have the same,
// positive dimensionality and finite coordinates. Returns an error if the
// config or the data is invalid.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	dims, err := validateData(data)
	if err != nil {
		return nil, err
	}

	n := len(data)
	labels, core, numClusters, algo := run(flatten(data, dims), n, dims, cfg)

	ids := make([]int, n)
	for i, l := range labels {
		ids[i] = l.ID()
	}
	return &Result{
		Labels:      ids,
		Core:        core,
		NumClusters: numClusters,
		Algorithm:   algo,
	}, nil
}

// ClusterPoints runs DBSCAN over points and writes each point's Label and
// Index in place. It returns the number of clusters found. On error no
// point is modified.
func ClusterPoints(points []Point, cfg Config) (int, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return 0, err
	}
	rows := Rows(points)
	dims, err := validateData(rows)
	if err != nil {
		return 0, err
	}

	labels, _, numClusters, _ := run(flatten(rows, dims), len(points), dims, cfg)
	for i := range points {
		points[i].Index = i
		points[i].Label = labels[i]
	}
	return numClusters, nil
}

// run builds the neighbourhood index for the resolved strategy and expands
// clusters over validated flat data.
func run(flat []float64, n, dims int, cfg Config) ([]Label, []bool, int, Algorithm) {
	log := cfg.Logger
	algo := selectAlgorithm(cfg)
	switch {
	case cfg.Algorithm == AlgorithmKDTree && algo != AlgorithmKDTree:
		log.Debug("kd-tree requires the euclidean metric, using brute force",
			zap.String("metric", metricName(cfg.Metric)))
	case cfg.Algorithm == AlgorithmBallTree && algo != AlgorithmBallTree:
		log.Debug("ball tree requires a true metric, using brute force",
			zap.String("metric", metricName(cfg.Metric)))
	}

	var index NeighborIndex
	switch algo {
	case AlgorithmKDTree:
		tree, err := NewKDTree(flat, n, dims)
		if err != nil {
			log.Warn("kd-tree build failed, falling back to brute force", zap.Error(err))
			algo = AlgorithmBrute
		} else {
			log.Debug("kd-tree built", zap.Int("points", n), zap.Int("dims", dims))
			index = tree
		}
	case AlgorithmBallTree:
		tree, err := NewBallTree(flat, n, dims, cfg.Metric, DefaultLeafSize)
		if err != nil {
			log.Warn("ball tree build failed, falling back to brute force", zap.Error(err))
			algo = AlgorithmBrute
		} else {
			log.Debug("ball tree built", zap.Int("points", n), zap.Int("nodes", tree.NumNodes()))
			index = tree
		}
	}
	if index == nil {
		index = newBruteForce(flat, n, dims, cfg.Metric)
	}

	e := newExpander(index, cfg.Eps, cfg.MinPts, log)
	numClusters := e.run()
	log.Debug("clustering finished",
		zap.String("algorithm", string(algo)),
		zap.String("metric", metricName(cfg.Metric)),
		zap.Int("points", n),
		zap.Int("clusters", numClusters))
	return e.labels, e.core, numClusters, algo
}
