package api

import (
	"strconv"
	"strings"
)

// CoordinateScale is the factor raw coordinates are multiplied by in the price data.
const CoordinateScale = 100000

// ValidateCoordinate reports whether raw looks like a scaled coordinate:
// an optional leading minus, digits, and at most one decimal point.
//
//	""       false
//	"123e7"  false
//	"-123"   true
//	"12.3"   true
func ValidateCoordinate(raw string) bool {
	s := strings.TrimPrefix(raw, "-")
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// NormalizeCoordinate converts a raw coordinate into decimal degrees.
// raw must have passed ValidateCoordinate.
func NormalizeCoordinate(raw string) float64 {
	v, _ := strconv.ParseFloat(raw, 64)
	return v / CoordinateScale
}
