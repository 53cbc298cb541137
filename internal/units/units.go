// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package units converts imperial source measurements to the metric values
// the output tables require, and formats numbers for CSV emission.
package units

import "strconv"

// kgPerLb is the conversion factor from pounds to kilograms.
const kgPerLb = 0.453592

// LbsToKg converts a weight in pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return lbs * kgPerLb
}

// MetersToKm converts a distance in meters to kilometers.
func MetersToKm(m float64) float64 {
	return m / 1000
}

// Float formats v with a fixed number of decimal places, rounding half away
// from zero. No thousands separators; decimal point only.
func Float(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// OptFloat formats an optional float, returning the empty string when the
// value was never observed.
func OptFloat(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return Float(*v, decimals)
}

// Num formats v with the minimal number of digits that round-trips the
// value, preserving whatever precision the source file carried.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int formats an integer count.
func Int(v int) string {
	return strconv.Itoa(v)
}

// OptInt formats an optional integer count, returning the empty string when
// the value was never observed.
func OptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
