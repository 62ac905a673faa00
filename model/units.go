package model

import "math"

// Length unit constants for OOXML geometry.
const (
	// EMUPerInch is the number of English Metric Units in one inch.
	EMUPerInch = 914400
	// EMUPerPoint is the number of English Metric Units in one typographic point.
	EMUPerPoint = 12700
	// PointsPerInch is the number of typographic points in one inch.
	PointsPerInch = 72
	// PixelsPerInch is the screen resolution used for glyph measurement.
	PixelsPerInch = 72
)

// Default slide dimensions (10 x 7.5 inches, the PowerPoint 4:3 default).
const (
	DefaultSlideWidthIn  = 10.0
	DefaultSlideHeightIn = 7.5
)

// EMUToInches converts English Metric Units to inches.
func EMUToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}

// InchesToEMU converts inches to English Metric Units, rounded to the
// nearest whole EMU.
func InchesToEMU(in float64) int64 {
	return int64(math.Round(in * EMUPerInch))
}

// EMUToPoints converts English Metric Units to typographic points.
func EMUToPoints(emu int64) float64 {
	return float64(emu) / EMUPerPoint
}

// PointsToInches converts typographic points to inches.
func PointsToInches(pt float64) float64 {
	return pt / PointsPerInch
}

// InchesToPoints converts inches to typographic points.
func InchesToPoints(in float64) float64 {
	return in * PointsPerInch
}

// InchesToPixels converts inches to screen pixels at 72 DPI, the unit
// space the auto-fit engine measures in.
func InchesToPixels(in float64) float64 {
	return in * PixelsPerInch
}
