package report

import (
	"fmt"
	"io"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// PrintColumns writes buffers side by side, one column per buffer and one
// element per row, separated by sep (default ","). Shorter buffers leave
// their column blank. With rowIndex set, each row starts with its index.
func PrintColumns(w io.Writer, t workload.DataType, buffers [][]byte, rowIndex bool, sep string) error {
	switch t {
	case workload.Int32:
		return printColumns[int32](w, buffers, rowIndex, sep)
	case workload.Int64:
		return printColumns[int64](w, buffers, rowIndex, sep)
	case workload.Float32:
		return printColumns[float32](w, buffers, rowIndex, sep)
	case workload.Float64:
		return printColumns[float64](w, buffers, rowIndex, sep)
	}
	return &datagen.UnsupportedTypeError{Op: "PrintColumns", DataType: t}
}

func printColumns[T datagen.Scalar](w io.Writer, buffers [][]byte, rowIndex bool, sep string) error {
	if sep == "" {
		sep = ","
	}
	views := make([][]T, len(buffers))
	rows := 0
	for i, b := range buffers {
		views[i] = datagen.View[T](b)
		if len(views[i]) > rows {
			rows = len(views[i])
		}
	}
	for r := 0; r < rows; r++ {
		if rowIndex {
			if _, err := fmt.Fprintf(w, "%d%s", r, sep); err != nil {
				return err
			}
		}
		for i, v := range views {
			if i > 0 {
				if _, err := io.WriteString(w, sep); err != nil {
					return err
				}
			}
			if r < len(v) {
				if _, err := fmt.Fprintf(w, "%v", v[r]); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
