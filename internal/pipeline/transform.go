package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

// MeasurementTransformer implements Transformer for JSON-encoded
// domain.RawMeasurement payloads. Fields may be strings or numbers.
type MeasurementTransformer struct{}

// NewTransformer creates a MeasurementTransformer.
func NewTransformer() *MeasurementTransformer {
	return &MeasurementTransformer{}
}

func (t *MeasurementTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.Measurement, error) {
	var rm domain.RawMeasurement
	if err := json.Unmarshal(raw.Value, &rm); err != nil {
		return domain.Measurement{}, fmt.Errorf("%w: decode message: %v", domain.ErrInvalidInput, err)
	}
	return rm.Parse()
}
