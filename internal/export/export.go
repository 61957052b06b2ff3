// Package export writes the record table to CSV and PDF files.
//
// Exporters only read the records they are given. An empty record slice is
// refused with ErrNoRecords before any file is created.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoRecords is returned when an export is requested with zero records.
var ErrNoRecords = errors.New("no records to export")

// NoRecordsMessage is the user-facing warning for ErrNoRecords.
const NoRecordsMessage = "Tidak ada data untuk diekspor!"

// writeFile creates path, streams content into it and removes the file again
// if anything fails, so a failed export never leaves a truncated file behind.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
