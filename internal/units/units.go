// Package units holds the angle and length conversions shared by the
// track geometry, validator, and API layers. Lengths are millimetres,
// angles are degrees with 0° along +x and counter-clockwise positive.
package units

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// ArcLength returns the length of a circular arc given its radius in
// millimetres and sweep in degrees. The result is sign-independent.
func ArcLength(radius, angleDeg float64) float64 {
	return math.Abs(radius * angleDeg * math.Pi / 180)
}

// ConvertLength converts a length stored in millimetres to the target
// display unit. Unknown units fall back to millimetres.
func ConvertLength(mm float64, targetUnits string) float64 {
	switch targetUnits {
	case "cm":
		return mm / 10
	case "m":
		return mm / 1000
	case "mm":
		return mm
	default:
		return mm
	}
}
