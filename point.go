package dbscan

import "math"

// Point is a single observation. Index is its position in the original
// collection; Coords must not change while a clustering call is running.
type Point struct {
	Index  int
	Coords []float64
	Label  Label
}

// NewPoints copies data into a new point collection. All coordinates live in
// one backing array owned by the collection; each Point's Coords is a window
// into it. Rows are copied as-is, so ragged input is reported by the
// clustering call rather than here.
func NewPoints(data [][]float64) []Point {
	total := 0
	for _, row := range data {
		total += len(row)
	}
	buf := make([]float64, total)
	points := make([]Point, len(data))
	off := 0
	for i, row := range data {
		coords := buf[off : off+len(row) : off+len(row)]
		copy(coords, row)
		off += len(row)
		points[i] = Point{Index: i, Coords: coords}
	}
	return points
}

// Rows returns the coordinate vectors of points, in order, without copying.
func Rows(points []Point) [][]float64 {
	rows := make([][]float64, len(points))
	for i := range points {
		rows[i] = points[i].Coords
	}
	return rows
}

// validateData checks that data is a non-empty rectangular matrix of finite
// values and returns its dimensionality.
func validateData(data [][]float64) (int, error) {
	if len(data) == 0 {
		return 0, dataErrorf("no points")
	}
	dims := len(data[0])
	if dims == 0 {
		return 0, dataErrorf("points must have at least one dimension")
	}
	for i, row := range data {
		if len(row) != dims {
			return 0, dataErrorf("point %d has %d dimensions, expected %d", i, len(row), dims)
		}
		for d, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, dataErrorf("point %d has non-finite coordinate %v in dimension %d", i, v, d)
			}
		}
	}
	return dims, nil
}

// flatten copies validated rows into a row-major slice of length n*dims.
func flatten(data [][]float64, dims int) []float64 {
	flat := make([]float64, len(data)*dims)
	for i, row := range data {
		copy(flat[i*dims:], row)
	}
	return flat
}
