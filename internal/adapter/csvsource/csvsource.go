// Package csvsource imports batches of measurements from CSV files.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

// Submitter classifies and stores one measurement. session.Session implements it.
type Submitter interface {
	SubmitMeasurement(ctx context.Context, m domain.Measurement) (domain.ClassifiedRecord, error)
}

// RowError records a data row that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result summarizes an import.
type Result struct {
	Imported int
	Skipped  []RowError
}

// headerAliases maps lower-cased header cells to measurement fields.
var headerAliases = map[string]string{
	domain.FieldDistance:  domain.FieldDistance,
	domain.FieldDepth:     domain.FieldDepth,
	domain.FieldMagnitude: domain.FieldMagnitude,
	"jarak dari pantai":   domain.FieldDistance,
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ImportFile opens path and imports it with Import.
func ImportFile(ctx context.Context, path string, sub Submitter) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return Import(ctx, f, sub)
}

// Import reads a header row followed by measurement rows from r and submits
// each row in file order. Rows that fail validation are collected in
// Result.Skipped and do not stop the import; malformed CSV does.
func Import(ctx context.Context, r io.Reader, sub Submitter) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, errors.New("read csv: empty file")
		}
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}
	colIdx, err := resolveColumns(header)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		m, err := domain.ParseMeasurement(
			get(row, colIdx, domain.FieldDistance),
			get(row, colIdx, domain.FieldDepth),
			get(row, colIdx, domain.FieldMagnitude),
		)
		if err == nil {
			_, err = sub.SubmitMeasurement(ctx, m)
		}
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: err})
			continue
		}
		res.Imported++
	}
}

func resolveColumns(header []string) (map[string]int, error) {
	colIdx := make(map[string]int, 3)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := headerAliases[key]; ok {
			if _, dup := colIdx[field]; !dup {
				colIdx[field] = i
			}
		}
	}
	for _, field := range []string{domain.FieldDistance, domain.FieldDepth, domain.FieldMagnitude} {
		if _, ok := colIdx[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}
	return colIdx, nil
}

func get(row []string, colIdx map[string]int, field string) string {
	i := colIdx[field]
	if i < len(row) {
		return row[i]
	}
	return ""
}
