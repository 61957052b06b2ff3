// Package domain models manually entered earthquake measurements and the
// tsunami-risk classification derived from them.
//
// # Measurements
//
// Three values are entered per earthquake:
//
//	jarak      distance from the coast, km (expected >= 0)
//	kedalaman  hypocenter depth, km (expected >= 0)
//	skala      magnitude (expected > 0)
//
// Out-of-range values are not rejected. They fall through to the
// "Tidak Valid" category of the relevant classifier. Only text that does not
// parse as a finite number is rejected, by [ParseMeasurement].
//
// # Category thresholds
//
//	Distance:  0–25 Dekat | 26–100 Sedang | >100 Jauh | anything else Tidak Valid
//	Depth:     <=15 Dalam | >15 Sangat Dalam
//	Magnitude: <5.0 Kecil | 5.1–7.0 Sedang | >7.0 Tinggi | anything else Tidak Valid
//
// The distance band has a hole between 25 and 26 km and the magnitude band a
// hole from 5.0 up to 5.1. Both land in Tidak Valid and are kept as is until
// the thresholds are confirmed by whoever owns them.
//
// Depth has no invalid category: the two bands cover every real number.
//
// # Risk
//
// [EvaluateRisk] applies a first-match rule table:
//
//  1. magnitude > 7.0 and (distance Dekat or depth Dalam)  -> Tsunami
//  2. magnitude > 7.0 and depth Sangat Dalam               -> Potensi Tsunami
//  3. 5.1 <= magnitude <= 7.0 and distance Dekat or Sedang -> Potensi Tsunami
//  4. otherwise                                            -> Tidak Berpotensi
//
// The raw magnitude is the discriminant, not its category.
package domain
