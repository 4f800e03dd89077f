package commands

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// openInput returns the file named by args[0], or stdin when no file or
// "-" is given.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", args[0])
	}
	return f, nil
}

// readPoints parses CSV rows of coordinates. A first row that does not
// parse as numbers is skipped as a header. Row lengths are not checked here;
// the library reports ragged input.
func readPoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var data [][]float64
	for first := true; ; first = false {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV")
		}
		row, err := parseRow(record)
		if err != nil {
			if first {
				continue
			}
			line, _ := cr.FieldPos(0)
			return nil, errors.Wrapf(err, "line %d", line)
		}
		data = append(data, row)
	}
	if len(data) == 0 {
		return nil, errors.New("no points in input")
	}
	return data, nil
}

func parseRow(record []string) ([]float64, error) {
	row := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		row[i] = v
	}
	return row, nil
}
