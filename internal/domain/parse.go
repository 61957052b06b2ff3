package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a measurement field is not a finite number.
var ErrInvalidInput = errors.New("invalid measurement input")

// InvalidInputMessage is the user-facing notice for ErrInvalidInput.
const InvalidInputMessage = "Pastikan semua input berupa angka!"

// Field names used in input errors.
const (
	FieldDistance  = "jarak"
	FieldDepth     = "kedalaman"
	FieldMagnitude = "skala"
)

// ParseMeasurement validates three text inputs and converts them to a
// Measurement. Surrounding whitespace is ignored. NaN and infinities are
// rejected.
func ParseMeasurement(distance, depth, magnitude string) (Measurement, error) {
	d, err := parseFinite(FieldDistance, distance)
	if err != nil {
		return Measurement{}, err
	}
	k, err := parseFinite(FieldDepth, depth)
	if err != nil {
		return Measurement{}, err
	}
	m, err := parseFinite(FieldMagnitude, magnitude)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Distance: d, Depth: k, Magnitude: m}, nil
}

// Parse validates a RawMeasurement.
func (r RawMeasurement) Parse() (Measurement, error) {
	return ParseMeasurement(r.Distance, r.Depth, r.Magnitude)
}

// UnmarshalJSON accepts each field as either a JSON string or a JSON number,
// keeping the literal text for Parse to validate.
func (r *RawMeasurement) UnmarshalJSON(data []byte) error {
	var aux struct {
		Distance  json.RawMessage `json:"jarak"`
		Depth     json.RawMessage `json:"kedalaman"`
		Magnitude json.RawMessage `json:"skala"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if r.Distance, err = rawText(aux.Distance); err != nil {
		return fmt.Errorf("%s: %w", FieldDistance, err)
	}
	if r.Depth, err = rawText(aux.Depth); err != nil {
		return fmt.Errorf("%s: %w", FieldDepth, err)
	}
	if r.Magnitude, err = rawText(aux.Magnitude); err != nil {
		return fmt.Errorf("%s: %w", FieldMagnitude, err)
	}
	return nil
}

func rawText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(v), nil
}

// FieldError reports which measurement field failed validation. It matches
// ErrInvalidInput with errors.Is.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s %s", ErrInvalidInput, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s %q %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func parseFinite(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &FieldError{Field: field, Reason: "is empty"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Value: s, Reason: "is not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: s, Reason: "is not finite"}
	}
	return v, nil
}
