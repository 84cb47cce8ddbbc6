// Package exportsvc turns a panel's visible rows into downloadable documents.
// Adapters are pure formatting functions of a core.Table: no network access,
// one output row per input row, same order.
package exportsvc

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
)

// WriteCSV writes one header line followed by every row of t.
func WriteCSV(w io.Writer, t core.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
