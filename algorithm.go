package dbscan

// KDTreeValidMetric reports whether the metric supports KD-tree range
// queries. The tree's pruning rule is exact only for the Euclidean metric.
func KDTreeValidMetric(m DistanceMetric) bool {
	_, ok := m.(EuclideanMetric)
	return ok
}

// selectAlgorithm resolves cfg.Algorithm into the neighbourhood strategy
// that will actually run. AlgorithmAuto picks the KD-tree whenever the
// metric allows it. A forced tree whose metric it cannot serve runs brute
// force instead of failing.
func selectAlgorithm(cfg Config) Algorithm {
	switch cfg.Algorithm {
	case AlgorithmBrute:
		return AlgorithmBrute
	case AlgorithmBallTree:
		if BallTreeValidMetric(cfg.Metric) {
			return AlgorithmBallTree
		}
		return AlgorithmBrute
	default:
		// AlgorithmAuto and AlgorithmKDTree.
		if KDTreeValidMetric(cfg.Metric) {
			return AlgorithmKDTree
		}
		return AlgorithmBrute
	}
}
