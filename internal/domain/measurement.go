package domain

import (
	"context"
	"time"
)

// DistanceCategory discretizes distance from the coast.
type DistanceCategory string

const (
	DistanceNear    DistanceCategory = "Dekat"
	DistanceMedium  DistanceCategory = "Sedang"
	DistanceFar     DistanceCategory = "Jauh"
	DistanceInvalid DistanceCategory = "Tidak Valid"
)

// Valid reports whether c is one of the defined distance categories.
func (c DistanceCategory) Valid() bool {
	switch c {
	case DistanceNear, DistanceMedium, DistanceFar, DistanceInvalid:
		return true
	}
	return false
}

// DepthCategory discretizes hypocenter depth.
type DepthCategory string

const (
	DepthDeep     DepthCategory = "Dalam"
	DepthVeryDeep DepthCategory = "Sangat Dalam"
)

// Valid reports whether c is one of the defined depth categories.
func (c DepthCategory) Valid() bool {
	return c == DepthDeep || c == DepthVeryDeep
}

// MagnitudeCategory discretizes earthquake magnitude.
type MagnitudeCategory string

const (
	MagnitudeSmall   MagnitudeCategory = "Kecil"
	MagnitudeMedium  MagnitudeCategory = "Sedang"
	MagnitudeHigh    MagnitudeCategory = "Tinggi"
	MagnitudeInvalid MagnitudeCategory = "Tidak Valid"
)

// Valid reports whether c is one of the defined magnitude categories.
func (c MagnitudeCategory) Valid() bool {
	switch c {
	case MagnitudeSmall, MagnitudeMedium, MagnitudeHigh, MagnitudeInvalid:
		return true
	}
	return false
}

// RiskLabel is the final tsunami-potential classification.
type RiskLabel string

const (
	RiskTsunami          RiskLabel = "Tsunami"
	RiskPotentialTsunami RiskLabel = "Potensi Tsunami"
	RiskNone             RiskLabel = "Tidak Berpotensi"
)

// Valid reports whether l is one of the defined risk labels.
func (l RiskLabel) Valid() bool {
	switch l {
	case RiskTsunami, RiskPotentialTsunami, RiskNone:
		return true
	}
	return false
}

// Column headers shared by the CSV and PDF exports and the on-screen table.
const (
	ColumnDistance  = "Jarak Dari Pantai"
	ColumnDepth     = "Kedalaman"
	ColumnMagnitude = "Skala"
	ColumnRisk      = "Efek"
	ColumnIndex     = "No"
)

// ExportHeader is the header row of exported files. The display index is
// deliberately absent.
var ExportHeader = []string{ColumnDistance, ColumnDepth, ColumnMagnitude, ColumnRisk}

// Measurement is a validated set of numeric inputs for one earthquake.
type Measurement struct {
	Distance  float64 `json:"jarak"`
	Depth     float64 `json:"kedalaman"`
	Magnitude float64 `json:"skala"`
}

// RawMeasurement is a measurement as text, before validation. It is the shape
// accepted by the form shells and the Kafka source topic.
type RawMeasurement struct {
	Distance  string `json:"jarak"`
	Depth     string `json:"kedalaman"`
	Magnitude string `json:"skala"`
}

// ClassifiedRecord is one row of the record table. It is never mutated after
// creation.
type ClassifiedRecord struct {
	Distance  DistanceCategory  `json:"jarak_dari_pantai"`
	Depth     DepthCategory     `json:"kedalaman"`
	Magnitude MagnitudeCategory `json:"skala"`
	Risk      RiskLabel         `json:"efek"`
}

// Fields returns the record in export column order.
func (r ClassifiedRecord) Fields() []string {
	return []string{string(r.Distance), string(r.Depth), string(r.Magnitude), string(r.Risk)}
}

// ClassifiedEvent is the message published for every accepted measurement.
type ClassifiedEvent struct {
	ID           string           `json:"id"`
	Measurement  Measurement      `json:"measurement"`
	Record       ClassifiedRecord `json:"record"`
	ClassifiedAt time.Time        `json:"classified_at"`
}

// RawMessage is an unprocessed message from the measurement source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}
