// Package session coordinates one run of the classifier: it validates and
// classifies submissions, appends them to the record store, optionally
// publishes them, and exports the accumulated table.
//
// Every shell (terminal form, HTTP, CSV import, Kafka pipeline) drives the
// same Session, so they share one record table per process.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/export"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	"github.com/couchcryptid/quake-risk-service/internal/store"
)

// Publisher forwards classified events to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, event domain.ClassifiedEvent) error
}

// Export formats, used for metric labels and logs.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Session owns the record store for the lifetime of the process.
type Session struct {
	store     *store.RecordStore
	exportDir string
	logger    *slog.Logger
	metrics   *observability.Metrics
	publisher Publisher
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics sets the metrics sink. Without it metrics are recorded on an
// unregistered set.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithPublisher publishes every accepted record through p.
func WithPublisher(p Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// New creates a Session backed by st. Exports with no explicit destination
// are written to exportDir under their default names.
func New(st *store.RecordStore, exportDir string, opts ...Option) *Session {
	s := &Session{
		store:     st,
		exportDir: exportDir,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetricsForTesting()
	}
	return s
}

// Submit validates the three text fields, classifies them and appends the
// result. On invalid input it returns an error wrapping
// domain.ErrInvalidInput and the store is left unchanged.
func (s *Session) Submit(ctx context.Context, distance, depth, magnitude string) (domain.ClassifiedRecord, error) {
	m, err := domain.ParseMeasurement(distance, depth, magnitude)
	if err != nil {
		s.metrics.InvalidInput.Inc()
		s.logger.Debug("submission rejected", "error", err)
		return domain.ClassifiedRecord{}, err
	}
	return s.SubmitMeasurement(ctx, m)
}

// SubmitMeasurement classifies an already-numeric measurement and appends
// it. A publish failure is logged and counted; the record stays stored.
func (s *Session) SubmitMeasurement(ctx context.Context, m domain.Measurement) (domain.ClassifiedRecord, error) {
	if !finite(m.Distance) || !finite(m.Depth) || !finite(m.Magnitude) {
		s.metrics.InvalidInput.Inc()
		return domain.ClassifiedRecord{}, fmt.Errorf("%w: measurement is not finite", domain.ErrInvalidInput)
	}

	rec := domain.Classify(m)
	n := s.store.Append(rec)

	s.metrics.RecordsClassified.WithLabelValues(string(rec.Risk)).Inc()
	s.metrics.RecordsStored.Set(float64(n))
	s.logger.Debug("record stored",
		"no", n,
		"jarak", rec.Distance,
		"kedalaman", rec.Depth,
		"skala", rec.Magnitude,
		"efek", rec.Risk,
	)

	if s.publisher != nil {
		event := domain.NewClassifiedEvent(m, n)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("publish classified record failed", "error", err, "id", event.ID)
		}
	}
	return rec, nil
}

// Rows returns the stored records numbered for display.
func (s *Session) Rows() []store.Row {
	return s.store.Rows()
}

// Snapshot returns a copy of the stored records.
func (s *Session) Snapshot() []domain.ClassifiedRecord {
	return s.store.Snapshot()
}

// IsEmpty reports whether nothing has been submitted yet.
func (s *Session) IsEmpty() bool {
	return s.store.IsEmpty()
}

// ExportCSV writes the table to dest, or to the default CSV name inside the
// export directory when dest is empty, and returns the path written.
// An empty table returns export.ErrNoRecords and creates no file.
func (s *Session) ExportCSV(dest string) (string, error) {
	return s.export(FormatCSV, dest, domain.DefaultCSVName, func(path string, recs []domain.ClassifiedRecord, _ time.Time) error {
		return export.ExportCSV(path, recs)
	})
}

// ExportPDF writes the report to dest, or to the default PDF name inside the
// export directory when dest is empty, and returns the path written.
func (s *Session) ExportPDF(dest string) (string, error) {
	return s.export(FormatPDF, dest, domain.DefaultPDFName, export.ExportPDF)
}

func (s *Session) export(
	format, dest string,
	defaultName func(time.Time) string,
	write func(string, []domain.ClassifiedRecord, time.Time) error,
) (string, error) {
	recs := s.store.Snapshot()
	if len(recs) == 0 {
		s.metrics.Exports.WithLabelValues(format, "empty").Inc()
		return "", export.ErrNoRecords
	}

	now := domain.Now()
	path := dest
	if path == "" {
		path = filepath.Join(s.exportDir, defaultName(now))
	}

	start := time.Now()
	if err := write(path, recs, now); err != nil {
		s.metrics.Exports.WithLabelValues(format, "error").Inc()
		s.logger.Error("export failed", "format", format, "path", path, "error", err)
		return "", err
	}
	s.metrics.ExportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	s.metrics.Exports.WithLabelValues(format, "success").Inc()
	s.logger.Info("export written", "format", format, "path", path, "records", len(recs))
	return path, nil
}

// WriteCSV streams the table as CSV to w and returns the default file name
// for it, for shells that deliver the export as a download.
func (s *Session) WriteCSV(w io.Writer) (string, error) {
	return s.stream(FormatCSV, w, domain.DefaultCSVName, func(w io.Writer, recs []domain.ClassifiedRecord, _ time.Time) error {
		return export.WriteCSV(w, recs)
	})
}

// WritePDF streams the report to w and returns its default file name.
func (s *Session) WritePDF(w io.Writer) (string, error) {
	return s.stream(FormatPDF, w, domain.DefaultPDFName, export.WritePDF)
}

func (s *Session) stream(
	format string,
	w io.Writer,
	defaultName func(time.Time) string,
	write func(io.Writer, []domain.ClassifiedRecord, time.Time) error,
) (string, error) {
	recs := s.store.Snapshot()
	if len(recs) == 0 {
		s.metrics.Exports.WithLabelValues(format, "empty").Inc()
		return "", export.ErrNoRecords
	}

	now := domain.Now()
	start := time.Now()
	if err := write(w, recs, now); err != nil {
		s.metrics.Exports.WithLabelValues(format, "error").Inc()
		s.logger.Error("export stream failed", "format", format, "error", err)
		return "", err
	}
	s.metrics.ExportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	s.metrics.Exports.WithLabelValues(format, "success").Inc()
	return defaultName(now), nil
}

// CheckReadiness reports an error unless the export directory exists.
func (s *Session) CheckReadiness(_ context.Context) error {
	info, err := os.Stat(s.exportDir)
	if err != nil {
		return fmt.Errorf("export dir: %w", err)
	}
	if !info.IsDir() {
		return errors.New("export dir is not a directory: " + s.exportDir)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
