// Package model provides the shared value types used across slidesmith:
// length units, slide-space geometry, and the positioned elements produced
// by the layout translator.
//
// # Units
//
// PPTX geometry is stored in English Metric Units (EMUs). Glyph measurement
// and auto-fit work in points and screen pixels at 72 DPI. The conversion
// helpers keep the unit spaces straight:
//
//	inches := model.EMUToInches(9144000) // 10.0
//	emu := model.InchesToEMU(7.5)        // 6858000
//	px := model.InchesToPixels(2.0)      // 144.0
//
// # Geometry
//
// The [Box] type is a top-left-origin rectangle in inches, used both for
// shape extents read from slide XML and for element placement during layout:
//
//	box := model.NewBox(0.5, 0.5, 9.0, 1.5)
//	if box.Intersects(other) {
//	    // overlapping elements
//	}
//
// # Elements
//
// An [Element] is the output of the markdown-to-layout translator: a typed,
// positioned, styled block ready to be placed on a slide. Layout validation
// reports problems as [Issue] values rather than errors, and document
// processing surfaces recoverable trouble as [Warning] values rather than
// logging.
package model
