package dbscan

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NormalizeMinMax rescales every dimension of data in place to [0, 1].
// A dimension whose values are all equal becomes 0.
func NormalizeMinMax(data [][]float64) error {
	dims, err := validateData(data)
	if err != nil {
		return err
	}
	col := make([]float64, len(data))
	for d := 0; d < dims; d++ {
		column(data, d, col)
		lo, hi := floats.Min(col), floats.Max(col)
		span := hi - lo
		for _, row := range data {
			if span == 0 {
				row[d] = 0
				continue
			}
			row[d] = (row[d] - lo) / span
		}
	}
	return nil
}

// NormalizeZScore standardizes every dimension of data in place to zero
// mean and unit population standard deviation. A dimension with zero
// standard deviation becomes 0.
func NormalizeZScore(data [][]float64) error {
	dims, err := validateData(data)
	if err != nil {
		return err
	}
	col := make([]float64, len(data))
	for d := 0; d < dims; d++ {
		column(data, d, col)
		mean, std := stat.PopMeanStdDev(col, nil)
		for _, row := range data {
			if std == 0 {
				row[d] = 0
				continue
			}
			row[d] = (row[d] - mean) / std
		}
	}
	return nil
}

func column(data [][]float64, d int, dst []float64) {
	for i, row := range data {
		dst[i] = row[d]
	}
}
