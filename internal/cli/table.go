package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/store"
)

// renderTable prints rows with the display-only No column first.
func renderTable(out io.Writer, rows []store.Row) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", domain.ColumnIndex,
		domain.ColumnDistance, domain.ColumnDepth, domain.ColumnMagnitude, domain.ColumnRisk)
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.No, r.Distance, r.Depth, r.Magnitude, r.Risk)
	}
	return w.Flush()
}
