package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

// WriteCSV writes a header row and one row per record to w.
func WriteCSV(w io.Writer, records []domain.ClassifiedRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].Fields()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to a CSV file at path.
func ExportCSV(path string, records []domain.ClassifiedRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	return writeFile(path, func(w io.Writer) error {
		return WriteCSV(w, records)
	})
}
