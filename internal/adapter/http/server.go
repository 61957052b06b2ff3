package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/export"
	"github.com/couchcryptid/quake-risk-service/internal/store"
)

const maxBodyBytes = 1 << 16

// RecordService is the session surface the form endpoints drive.
type RecordService interface {
	Submit(ctx context.Context, distance, depth, magnitude string) (domain.ClassifiedRecord, error)
	Rows() []store.Row
	WriteCSV(w io.Writer) (string, error)
	WritePDF(w io.Writer) (string, error)
}

// Server exposes the record form API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	records    RecordService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /records, /export, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, records RecordService, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		records: records,
		logger:  logger,
	}

	mux.HandleFunc("POST /records", s.handleSubmit)
	mux.HandleFunc("GET /records", s.handleList)
	mux.HandleFunc("GET /export/csv", s.handleExport("text/csv; charset=utf-8", records.WriteCSV))
	mux.HandleFunc("GET /export/pdf", s.handleExport("application/pdf", records.WritePDF))

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type listResponse struct {
	Count int         `json:"count"`
	Rows  []store.Row `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	raw, err := decodeMeasurement(r)
	if err != nil {
		s.logger.Debug("undecodable submission", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: domain.InvalidInputMessage})
		return
	}

	rec, err := s.records.Submit(r.Context(), raw.Distance, raw.Depth, raw.Magnitude)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: domain.InvalidInputMessage})
			return
		}
		s.logger.Error("submit failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// decodeMeasurement reads a JSON body or form values, depending on Content-Type.
func decodeMeasurement(r *http.Request) (domain.RawMeasurement, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var raw domain.RawMeasurement
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return domain.RawMeasurement{}, err
		}
		return raw, nil
	}

	if err := r.ParseForm(); err != nil {
		return domain.RawMeasurement{}, err
	}
	return domain.RawMeasurement{
		Distance:  r.PostFormValue(domain.FieldDistance),
		Depth:     r.PostFormValue(domain.FieldDepth),
		Magnitude: r.PostFormValue(domain.FieldMagnitude),
	}, nil
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	rows := s.records.Rows()
	writeJSON(w, http.StatusOK, listResponse{Count: len(rows), Rows: rows})
}

func (s *Server) handleExport(contentType string, write func(io.Writer) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		name, err := write(&buf)
		if err != nil {
			if errors.Is(err, export.ErrNoRecords) {
				writeJSON(w, http.StatusConflict, errorResponse{Error: export.NoRecordsMessage})
				return
			}
			s.logger.Error("export failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "export failed"})
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			s.logger.Warn("export response write failed", "error", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
