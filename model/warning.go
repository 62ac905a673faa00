package model

// Warning records a non-fatal issue encountered while processing a
// package. Warnings accumulate instead of aborting: a deck with one
// malformed slide still has its remaining slides processed.
type Warning struct {
	Code    string // stable machine code, e.g. "slide_skipped"
	Slide   int    // 1-based slide number, 0 when not slide-specific
	Message string
}
