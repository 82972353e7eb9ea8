package models

import "math"

// MinorUnits converts a decimal amount to the gateway's minor unit
// (paise for INR, cents for USD). Rounding to the nearest integer avoids
// fractional-minor-unit errors on amounts like 99.5.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MajorUnits converts a minor-unit amount back to its decimal representation
// for display.
func MajorUnits(amount int64) float64 {
	return float64(amount) / 100
}
