// Package autofit computes the largest point size at which a string
// fits a text box, either by measuring real glyph outlines or by a
// character-count heuristic when no outline is available.
package autofit

import (
	"math"
	"strings"

	"github.com/tsawler/slidesmith/font"
	"github.com/tsawler/slidesmith/model"
)

// Measurer reports rendered text dimensions in pixels. *font.Cache
// satisfies it.
type Measurer interface {
	Measure(text, family string, size float64, bold, italic bool) (w, h float64, ok bool)
}

const (
	// DefaultMinSize is the smallest size Fit returns unless overridden.
	DefaultMinSize = 10.0
	// DefaultMaxSize is the largest size Fit returns unless overridden.
	DefaultMaxSize = 44.0

	// defaultSize is returned for empty text and anchors the heuristic.
	defaultSize = 18.0
	// lineHeight is the standard single-spacing multiplier.
	lineHeight = 1.2
	// searchStep is the descending search granularity in points.
	searchStep = 2.0

	shortTextLen   = 20
	shortBoxFactor = 0.28
	boldDiscount   = 0.95
)

// Options configure one fit computation.
type Options struct {
	FontFace string
	Bold     bool
	Italic   bool
	MinSize  float64  // 0 means DefaultMinSize
	MaxSize  float64  // 0 means DefaultMaxSize
	Metrics  Measurer // nil forces the heuristic
}

func (o Options) bounds() (minSize, maxSize float64) {
	minSize, maxSize = o.MinSize, o.MaxSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	return minSize, maxSize
}

// Fit returns the point size at which text fits a box of the given
// dimensions in inches. Empty or whitespace-only text returns 18
// without searching. The result is deterministic for a given input:
// the measurement mode is fixed for the whole call, so a family the
// metrics provider cannot measure uses the heuristic throughout.
func Fit(text string, boxWidthIn, boxHeightIn float64, opts Options) float64 {
	if strings.TrimSpace(text) == "" {
		return defaultSize
	}

	minSize, maxSize := opts.bounds()

	boxW := model.InchesToPixels(boxWidthIn)
	boxH := model.InchesToPixels(boxHeightIn)
	if boxW <= 0 || boxH <= 0 {
		return minSize
	}

	if opts.Metrics != nil {
		if size, ok := fitMeasured(text, boxW, boxH, minSize, maxSize, opts); ok {
			return size
		}
	}
	return fitHeuristic(text, boxW, boxH, minSize, maxSize, opts)
}

// fitMeasured searches downward from maxSize in 2pt steps and accepts
// the first size whose estimated wrapped height fits the box. A string
// no wider than the box occupies one line, so the width constraint is
// folded into the line count. ok is false when the family cannot be
// measured, in which case the caller runs the heuristic instead.
func fitMeasured(text string, boxW, boxH, minSize, maxSize float64, opts Options) (float64, bool) {
	for size := maxSize; size >= minSize; size -= searchStep {
		w, _, ok := opts.Metrics.Measure(text, opts.FontFace, size, opts.Bold, opts.Italic)
		if !ok {
			return 0, false
		}
		lines := math.Ceil(w / boxW)
		if lines < 1 {
			lines = 1
		}
		if lines*size*lineHeight <= boxH {
			return size, true
		}
	}
	return minSize, true
}

// fitHeuristic sizes text from character count and box area alone.
// Short text scales with the smaller box dimension; longer text starts
// at the 18pt baseline and scales down by the ratio of box height to
// estimated wrapped height.
func fitHeuristic(text string, boxW, boxH, minSize, maxSize float64, opts Options) float64 {
	n := len([]rune(strings.TrimSpace(text)))

	var size float64
	if n <= shortTextLen {
		size = shortBoxFactor * math.Min(boxW, boxH)
	} else {
		size = defaultSize
		estW := font.EstimateStringWidth(text, defaultSize, opts.FontFace, opts.Bold)
		lines := math.Ceil(estW / boxW)
		if lines < 1 {
			lines = 1
		}
		if estH := lines * defaultSize * lineHeight; estH > boxH {
			size = defaultSize * boxH / estH
		}
	}

	if opts.Bold {
		size *= boldDiscount
	}
	return clamp(size, minSize, maxSize)
}

func clamp(v, minSize, maxSize float64) float64 {
	if v < minSize {
		return minSize
	}
	if v > maxSize {
		return maxSize
	}
	return v
}
