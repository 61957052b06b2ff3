package domain

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDistance(t *testing.T) {
	tests := []struct {
		name     string
		km       float64
		expected DistanceCategory
	}{
		{"coastline", 0, DistanceNear},
		{"near", 10, DistanceNear},
		{"near upper bound", 25, DistanceNear},
		{"gap just above 25", 25.0001, DistanceInvalid},
		{"gap middle", 25.5, DistanceInvalid},
		{"gap just below 26", 25.9999, DistanceInvalid},
		{"medium lower bound", 26, DistanceMedium},
		{"medium", 50, DistanceMedium},
		{"medium upper bound", 100, DistanceMedium},
		{"far", 100.01, DistanceFar},
		{"very far", 5000, DistanceFar},
		{"negative", -0.5, DistanceInvalid},
		{"large negative", -1000, DistanceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDistance(tt.km))
		})
	}
}

func TestClassifyDepth(t *testing.T) {
	tests := []struct {
		name     string
		km       float64
		expected DepthCategory
	}{
		{"negative", -3, DepthDeep},
		{"surface", 0, DepthDeep},
		{"shallow", 5, DepthDeep},
		{"upper bound", 15, DepthDeep},
		{"just over", 15.01, DepthVeryDeep},
		{"deep", 20, DepthVeryDeep},
		{"huge", 700, DepthVeryDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDepth(tt.km))
		})
	}
}

func TestClassifyDepth_Total(t *testing.T) {
	for k := -50.0; k <= 50.0; k += 0.25 {
		got := ClassifyDepth(k)
		assert.True(t, got.Valid(), "depth %g", k)
		assert.Equal(t, k <= 15, got == DepthDeep, "depth %g", k)
	}
}

func TestClassifyMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		m        float64
		expected MagnitudeCategory
	}{
		{"negative", -1, MagnitudeSmall},
		{"small", 3.0, MagnitudeSmall},
		{"just under 5", 4.99, MagnitudeSmall},
		{"exactly 5", 5.0, MagnitudeInvalid},
		{"gap", 5.05, MagnitudeInvalid},
		{"gap just below 5.1", 5.0999, MagnitudeInvalid},
		{"medium lower bound", 5.1, MagnitudeMedium},
		{"medium", 6.0, MagnitudeMedium},
		{"medium upper bound", 7.0, MagnitudeMedium},
		{"high", 7.01, MagnitudeHigh},
		{"great", 9.1, MagnitudeHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyMagnitude(tt.m))
		})
	}
}

func TestClassifiers_AlwaysReturnDefinedLabel(t *testing.T) {
	inputs := []float64{-1e9, -1, 0, 0.5, 5, 5.05, 25.5, 26, 99.9, 100, 1e9, math.SmallestNonzeroFloat64}
	for _, v := range inputs {
		assert.True(t, ClassifyDistance(v).Valid(), "distance %g", v)
		assert.True(t, ClassifyDepth(v).Valid(), "depth %g", v)
		assert.True(t, ClassifyMagnitude(v).Valid(), "magnitude %g", v)
	}
}

func TestEvaluateRisk(t *testing.T) {
	tests := []struct {
		name      string
		distance  DistanceCategory
		depth     DepthCategory
		magnitude float64
		expected  RiskLabel
	}{
		{"rule 1 near and deep", DistanceNear, DepthDeep, 7.1, RiskTsunami},
		{"rule 1 near only", DistanceNear, DepthVeryDeep, 7.5, RiskTsunami},
		{"rule 1 deep only", DistanceFar, DepthDeep, 8.0, RiskTsunami},
		{"rule 1 invalid distance but deep", DistanceInvalid, DepthDeep, 7.2, RiskTsunami},
		{"rule 2 far and very deep", DistanceFar, DepthVeryDeep, 7.1, RiskPotentialTsunami},
		{"rule 2 medium and very deep", DistanceMedium, DepthVeryDeep, 9.0, RiskPotentialTsunami},
		{"rule 3 medium distance", DistanceMedium, DepthVeryDeep, 6.0, RiskPotentialTsunami},
		{"rule 3 near lower bound", DistanceNear, DepthDeep, 5.1, RiskPotentialTsunami},
		{"rule 3 near upper bound", DistanceNear, DepthDeep, 7.0, RiskPotentialTsunami},
		{"rule 3 far does not match", DistanceFar, DepthDeep, 6.0, RiskNone},
		{"rule 3 invalid distance does not match", DistanceInvalid, DepthDeep, 6.0, RiskNone},
		{"magnitude gap", DistanceNear, DepthDeep, 5.05, RiskNone},
		{"small near deep", DistanceNear, DepthDeep, 3.0, RiskNone},
		{"small far very deep", DistanceFar, DepthVeryDeep, 3.0, RiskNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateRisk(tt.distance, tt.depth, tt.magnitude))
		})
	}
}

func TestClassify_EndToEnd(t *testing.T) {
	t.Run("near coast, very deep, high magnitude", func(t *testing.T) {
		rec := Classify(Measurement{Distance: 10, Depth: 20, Magnitude: 7.5})
		assert.Equal(t, ClassifiedRecord{
			Distance:  DistanceNear,
			Depth:     DepthVeryDeep,
			Magnitude: MagnitudeHigh,
			Risk:      RiskTsunami,
		}, rec)
	})

	t.Run("medium distance, shallow, medium magnitude", func(t *testing.T) {
		rec := Classify(Measurement{Distance: 50, Depth: 5, Magnitude: 6.0})
		assert.Equal(t, ClassifiedRecord{
			Distance:  DistanceMedium,
			Depth:     DepthDeep,
			Magnitude: MagnitudeMedium,
			Risk:      RiskPotentialTsunami,
		}, rec)
	})
}

func TestClassifiedRecord_Fields(t *testing.T) {
	rec := ClassifiedRecord{Distance: DistanceFar, Depth: DepthDeep, Magnitude: MagnitudeSmall, Risk: RiskNone}
	assert.Equal(t, []string{"Jauh", "Dalam", "Kecil", "Tidak Berpotensi"}, rec.Fields())
	assert.Len(t, ExportHeader, len(rec.Fields()))
}

func TestNewClassifiedEvent(t *testing.T) {
	fixed := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	m := Measurement{Distance: 10, Depth: 20, Magnitude: 7.5}

	evt := NewClassifiedEvent(m, 1)
	assert.Equal(t, fixed, evt.ClassifiedAt)
	assert.Equal(t, m, evt.Measurement)
	assert.Equal(t, RiskTsunami, evt.Record.Risk)
	assert.True(t, strings.HasPrefix(evt.ID, "quake-"))

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, evt.ID, NewClassifiedEvent(m, 1).ID)
	})

	t.Run("sequence distinguishes repeated input", func(t *testing.T) {
		assert.NotEqual(t, evt.ID, NewClassifiedEvent(m, 2).ID)
	})
}
