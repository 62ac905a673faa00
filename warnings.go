package slidesmith

import (
	"fmt"
	"strings"

	"github.com/tsawler/slidesmith/model"
)

// Warning describes a non-fatal issue encountered while processing a
// package, such as a skipped slide or a substituted font. Terminal
// operations return the warnings accumulated up to that point.
type Warning = model.Warning

// FormatWarnings renders warnings as a single human-readable string,
// suitable for logging by the caller.
//
// Example:
//
//	text, warnings, err := slidesmith.Open("deck.pptx").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidesmith.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		parts = append(parts, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return strings.Join(parts, "; ")
}
