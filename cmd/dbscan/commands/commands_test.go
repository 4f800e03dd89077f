package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/TrevorS/dbscan"
)

// Two tight triangles and one outlier.
const samplePoints = `x,y
# first group
0,0
0,0.1
0.1,0

5,5
5,5.1
5.1,5
20,20
`

const sampleCSVOutput = `index,label,core
0,0,true
1,0,true
2,0,true
3,1,true
4,1,true
5,1,true
6,-1,false
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the command line and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd("test")
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestReadPoints(t *testing.T) {
	data, err := readPoints(strings.NewReader(samplePoints))
	require.NoError(t, err)
	require.Len(t, data, 7)
	assert.Equal(t, []float64{0, 0.1}, data[1])
	assert.Equal(t, []float64{20, 20}, data[6])
}

func TestReadPoints_NoHeader(t *testing.T) {
	data, err := readPoints(strings.NewReader("1, 2\n 3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, data)
}

func TestReadPoints_Errors(t *testing.T) {
	_, err := readPoints(strings.NewReader("1,2\n3,oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "column 2")

	_, err = readPoints(strings.NewReader("x,y\n# nothing else\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no points")
}

func TestClusterCommand_CSV(t *testing.T) {
	path := writeTempFile(t, "points.csv", samplePoints)
	out, _, err := run(t, "", "cluster", "--eps", "0.2", "--min-pts", "3", path)
	require.NoError(t, err)
	assert.Equal(t, sampleCSVOutput, out)
}

func TestClusterCommand_StdinJSON(t *testing.T) {
	out, _, err := run(t, samplePoints, "cluster", "--eps", "0.2", "--min-pts", "3", "--format", "json", "--algorithm", "brute")
	require.NoError(t, err)

	var got clusterOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.NumClusters)
	assert.Equal(t, "brute", got.Algorithm)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, -1}, got.Labels)
}

func TestClusterCommand_EnvOverride(t *testing.T) {
	t.Setenv("DBSCAN_EPS", "0.2")
	t.Setenv("DBSCAN_MIN_PTS", "4")
	out, _, err := run(t, samplePoints, "cluster", "--format", "json")
	require.NoError(t, err)

	var got clusterOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.NumClusters)
}

func TestClusterCommand_ConfigFile(t *testing.T) {
	cfgPath := writeTempFile(t, "dbscan.yaml", "eps: 0.25\nmin_pts: 3\nmetric: manhattan\n")
	out, _, err := run(t, samplePoints, "cluster", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, sampleCSVOutput, out)

	// Flags win over the config file.
	out, _, err = run(t, samplePoints, "cluster", "--config", cfgPath, "--min-pts", "4", "--format", "json")
	require.NoError(t, err)
	var got clusterOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.NumClusters)
	assert.Equal(t, "brute", got.Algorithm)
}

// Each command reads its own format key, so a cluster-only format in the
// config file or environment does not leak into estimate.
func TestFormatKeysArePerCommand(t *testing.T) {
	cfgPath := writeTempFile(t, "dbscan.yaml", "eps: 0.2\nmin_pts: 3\ncluster:\n  format: csv\n")
	out, _, err := run(t, "0\n1\n3\n6\n", "estimate", "--config", cfgPath, "-k", "1")
	require.NoError(t, err)
	assert.Equal(t, "k=1 suggested_eps=3\n", out)

	out, _, err = run(t, samplePoints, "cluster", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, sampleCSVOutput, out)

	t.Setenv("DBSCAN_CLUSTER_FORMAT", "json")
	out, _, err = run(t, samplePoints, "cluster", "--config", cfgPath)
	require.NoError(t, err)
	var got clusterOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.NumClusters)

	out, _, err = run(t, "0\n1\n3\n6\n", "estimate", "-k", "1")
	require.NoError(t, err)
	assert.Equal(t, "k=1 suggested_eps=3\n", out)
}

func TestClusterCommand_Normalize(t *testing.T) {
	// After min-max scaling the two groups sit near 0 and 0.25 on both axes.
	out, _, err := run(t, samplePoints, "cluster", "--eps", "0.05", "--min-pts", "3", "--normalize", "minmax")
	require.NoError(t, err)
	assert.Equal(t, sampleCSVOutput, out)
}

func TestClusterCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad eps", []string{"cluster", "--eps", "-1"}, "Eps must be"},
		{"bad metric", []string{"cluster", "--metric", "hamming"}, "unknown metric"},
		{"bad normalize", []string{"cluster", "--normalize", "log"}, "unknown normalization"},
		{"bad format", []string{"cluster", "--format", "xml"}, "unknown format"},
		{"missing file", []string{"cluster", "does-not-exist.csv"}, "failed to open"},
		{"missing config", []string{"cluster", "--config", "does-not-exist.toml"}, "failed to read config file"},
		{"bad k", []string{"estimate", "-k", "50"}, "k must be in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, samplePoints, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClusterCommand_ErrorsKeepMarks(t *testing.T) {
	_, _, err := run(t, samplePoints, "cluster", "--min-pts", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbscan.ErrInvalidConfig))

	_, _, err = run(t, "1,2\n3\n", "cluster")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbscan.ErrInvalidData))
}

func TestClusterCommand_VerboseLogsToStderr(t *testing.T) {
	out, stderr, err := run(t, samplePoints, "-vv", "cluster", "--eps", "0.2", "--min-pts", "3")
	require.NoError(t, err)
	assert.Equal(t, sampleCSVOutput, out)
	assert.Contains(t, stderr, "clustering complete")
	assert.Contains(t, stderr, "cluster expanded")

	_, stderr, err = run(t, samplePoints, "cluster", "--eps", "0.2", "--min-pts", "3")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestEstimateCommand(t *testing.T) {
	in := "0\n1\n3\n6\n"
	out, _, err := run(t, in, "estimate", "-k", "1")
	require.NoError(t, err)
	assert.Equal(t, "k=1 suggested_eps=3\n", out)

	out, _, err = run(t, in, "estimate", "-k", "2", "--distances")
	require.NoError(t, err)
	assert.Equal(t, "k=2 suggested_eps=5\n0,3\n1,2\n2,3\n3,5\n", out)

	out, _, err = run(t, in, "estimate", "-k", "1", "--format", "json")
	require.NoError(t, err)
	var got estimateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, estimateOutput{K: 1, SuggestedEps: 3}, got)
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, verbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, verbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, verbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, verbosityToLevel(5))
}
