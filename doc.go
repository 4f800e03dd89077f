// Package dbscan implements Density-Based Spatial Clustering of
// Applications with Noise (DBSCAN).
//
// DBSCAN groups points that lie in dense regions and marks points in sparse
// regions as noise. A point whose Eps-neighbourhood (the point itself
// included) holds at least MinPts points is a core point; clusters are the
// sets of points reachable through chains of core points. Points reachable
// from a core point but not core themselves are border points. The number
// of clusters does not need to be known in advance.
//
// Basic usage:
//
//	cfg := dbscan.DefaultConfig()
//	cfg.Eps = 0.3
//	cfg.MinPts = 4
//	result, err := dbscan.Cluster(data, cfg)
//	// result.Labels[i] is the cluster ID for point i (-1 = noise)
//	// result.Core[i] reports whether point i is a core point
//
// To label a point collection in place:
//
//	points := dbscan.NewPoints(data)
//	n, err := dbscan.ClusterPoints(points, cfg)
//	// points[i].Label.State is Noise or Clustered
//
// # Choosing Eps
//
// EstimateEps computes every point's distance to its k-th nearest neighbour
// and suggests the 95th percentile as a starting Eps:
//
//	kd, err := dbscan.EstimateEps(data, cfg.MinPts-1)
//	cfg.Eps = kd.SuggestedEps
//
// # Algorithm selection
//
// By default (Algorithm: "auto"), neighbourhoods are answered by a KD-tree
// when the metric is Euclidean and by a linear scan otherwise. All
// strategies give identical labels. Set Config.Algorithm to force one:
//
//	cfg.Algorithm = dbscan.AlgorithmBrute    // linear scan, any metric
//	cfg.Algorithm = dbscan.AlgorithmKDTree   // KD-tree (Euclidean only)
//	cfg.Algorithm = dbscan.AlgorithmBallTree // ball tree (L1, L2, L-inf, Minkowski P >= 1)
//
// Border points that lie within Eps of core points of two clusters belong
// to whichever cluster reached them first. Some DBSCAN implementations let
// the later cluster take them instead, so labels of such points can differ. Points are processed in input
// order, so results are deterministic for a given input order.
package dbscan
