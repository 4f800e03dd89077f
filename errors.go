package dbscan

import "github.com/cockroachdb/errors"

// Sentinel errors. Every error returned by this package is marked with one
// of these, so callers can classify failures with errors.Is.
var (
	// ErrInvalidConfig reports a Config that cannot be used for clustering.
	ErrInvalidConfig = errors.New("dbscan: invalid config")

	// ErrInvalidData reports malformed input points: no points, zero
	// dimensions, ragged rows, or non-finite coordinates.
	ErrInvalidData = errors.New("dbscan: invalid data")

	// ErrInvalidVector reports coordinate vectors that a distance function
	// cannot compare.
	ErrInvalidVector = errors.New("dbscan: invalid vector")

	// ErrInvalidK reports a neighbour rank outside [1, n-1].
	ErrInvalidK = errors.New("dbscan: k out of range")
)

func configErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("dbscan: "+format, args...), ErrInvalidConfig)
}

func dataErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("dbscan: "+format, args...), ErrInvalidData)
}

func vectorErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("dbscan: "+format, args...), ErrInvalidVector)
}
