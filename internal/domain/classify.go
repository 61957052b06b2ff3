package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ClassifyDistance maps a distance from the coast (km) to its category.
// Values strictly between 25 and 26, and negative values, are Tidak Valid.
func ClassifyDistance(d float64) DistanceCategory {
	switch {
	case d >= 0 && d <= 25:
		return DistanceNear
	case d >= 26 && d <= 100:
		return DistanceMedium
	case d > 100:
		return DistanceFar
	default:
		return DistanceInvalid
	}
}

// ClassifyDepth maps a hypocenter depth (km) to its category. Every real
// number falls in one of the two bands.
func ClassifyDepth(k float64) DepthCategory {
	if k <= 15 {
		return DepthDeep
	}
	return DepthVeryDeep
}

// ClassifyMagnitude maps a magnitude to its category. Values from 5.0 up to
// but excluding 5.1 are Tidak Valid.
func ClassifyMagnitude(m float64) MagnitudeCategory {
	switch {
	case m < 5.0:
		return MagnitudeSmall
	case m >= 5.1 && m <= 7.0:
		return MagnitudeMedium
	case m > 7.0:
		return MagnitudeHigh
	default:
		return MagnitudeInvalid
	}
}

// EvaluateRisk derives the tsunami risk from the distance and depth
// categories and the raw magnitude. Rules are checked in order and the first
// match wins.
func EvaluateRisk(distance DistanceCategory, depth DepthCategory, magnitude float64) RiskLabel {
	switch {
	case magnitude > 7.0 && (distance == DistanceNear || depth == DepthDeep):
		return RiskTsunami
	case magnitude > 7.0 && depth == DepthVeryDeep:
		return RiskPotentialTsunami
	case magnitude >= 5.1 && magnitude <= 7.0 && (distance == DistanceNear || distance == DistanceMedium):
		return RiskPotentialTsunami
	default:
		return RiskNone
	}
}

// Classify runs the three classifiers and the risk evaluator over m.
func Classify(m Measurement) ClassifiedRecord {
	distance := ClassifyDistance(m.Distance)
	depth := ClassifyDepth(m.Depth)
	return ClassifiedRecord{
		Distance:  distance,
		Depth:     depth,
		Magnitude: ClassifyMagnitude(m.Magnitude),
		Risk:      EvaluateRisk(distance, depth, m.Magnitude),
	}
}

// NewClassifiedEvent classifies m and stamps it with the current clock time
// and a deterministic ID.
func NewClassifiedEvent(m Measurement, seq int) ClassifiedEvent {
	now := clock.Now()
	return ClassifiedEvent{
		ID:           generateID(m, seq, now),
		Measurement:  m,
		Record:       Classify(m),
		ClassifiedAt: now,
	}
}

// generateID hashes the measurement, its position in the session and the
// classification time. Replaying the same session yields the same IDs.
func generateID(m Measurement, seq int, at time.Time) string {
	input := fmt.Sprintf("%g|%g|%g|%d|%s", m.Distance, m.Depth, m.Magnitude, seq, at.UTC().Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(input))
	return "quake-" + hex.EncodeToString(hash[:8])
}
