package dbscan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type goldenConfig struct {
	Eps    float64 `json:"eps"`
	MinPts int     `json:"min_pts"`
	Metric string  `json:"metric"`
	P      float64 `json:"p"`
}

type goldenData struct {
	Dataset     string       `json:"dataset"`
	Config      goldenConfig `json:"config"`
	Data        [][]float64  `json:"data"`
	Labels      []int        `json:"labels"`
	Core        []bool       `json:"core"`
	NumClusters int          `json:"num_clusters"`
}

func loadGoldenFile(t *testing.T, path string) goldenData {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}
	var gd goldenData
	if err := json.Unmarshal(data, &gd); err != nil {
		t.Fatalf("failed to parse golden file %s: %v", path, err)
	}
	return gd
}

func goldenConfigToConfig(t *testing.T, gc goldenConfig) Config {
	t.Helper()
	metric, err := ParseMetric(gc.Metric, gc.P)
	if err != nil {
		t.Fatalf("golden metric: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Eps = gc.Eps
	cfg.MinPts = gc.MinPts
	cfg.Metric = metric
	return cfg
}

// TestGoldenLabels verifies labels, core flags, and cluster counts against
// hand-checked fixtures under every neighbourhood strategy. Labels are
// compared exactly: cluster ids follow the order in which clusters are
// discovered.
func TestGoldenLabels(t *testing.T) {
	files, err := filepath.Glob("testdata/*.json")
	if err != nil {
		t.Fatalf("failed to glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no golden test files found in testdata/")
	}

	for _, f := range files {
		gd := loadGoldenFile(t, f)
		for _, algo := range []Algorithm{AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree, AlgorithmAuto} {
			t.Run(filepath.Base(f)+"/"+string(algo), func(t *testing.T) {
				cfg := goldenConfigToConfig(t, gd.Config)
				cfg.Algorithm = algo

				result, err := Cluster(gd.Data, cfg)
				if err != nil {
					t.Fatalf("Cluster: %v", err)
				}
				if result.NumClusters != gd.NumClusters {
					t.Errorf("NumClusters = %d, want %d", result.NumClusters, gd.NumClusters)
				}
				if diff := cmp.Diff(gd.Labels, result.Labels); diff != "" {
					t.Errorf("%s labels mismatch (-golden +got):\n%s", gd.Dataset, diff)
				}
				if gd.Core != nil {
					if diff := cmp.Diff(gd.Core, result.Core); diff != "" {
						t.Errorf("%s core mismatch (-golden +got):\n%s", gd.Dataset, diff)
					}
				}
			})
		}
	}
}

// TestGoldenClusterPoints runs the same fixtures through the in-place API.
func TestGoldenClusterPoints(t *testing.T) {
	files, err := filepath.Glob("testdata/*.json")
	if err != nil {
		t.Fatalf("failed to glob testdata: %v", err)
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			gd := loadGoldenFile(t, f)
			points := NewPoints(gd.Data)

			n, err := ClusterPoints(points, goldenConfigToConfig(t, gd.Config))
			if err != nil {
				t.Fatalf("ClusterPoints: %v", err)
			}
			if n != gd.NumClusters {
				t.Errorf("cluster count = %d, want %d", n, gd.NumClusters)
			}
			got := make([]int, len(points))
			for i, p := range points {
				got[i] = p.Label.ID()
				if p.Index != i {
					t.Errorf("points[%d].Index = %d", i, p.Index)
				}
			}
			if diff := cmp.Diff(gd.Labels, got); diff != "" {
				t.Errorf("labels mismatch (-golden +got):\n%s", diff)
			}
		})
	}
}
