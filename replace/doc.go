// Package replace implements safe find-and-replace over PPTX packages:
// a pre-scan that decides per request whether replacement is allowed,
// and an orchestrated mutation pass that rewrites matched paragraphs
// with auto-fitted, formatted runs.
//
// # Scanning
//
// [Scan] locates every occurrence of a phrase without modifying the
// package. Matching runs over each paragraph's concatenated run text
// after NFC normalization, so phrases split across runs or typed with
// composed characters are still found:
//
//	matches, warnings, err := replace.Scan(pkg, "{{NAME}}")
//	for _, m := range matches {
//	    fmt.Println(m.Location, m.Snippet)
//	}
//
// # Safety
//
// Every request is scanned before any mutation begins. A phrase with
// exactly one match is cleared automatically; a phrase with several
// matches is blocked unless its request sets ReplaceAll. Blocked
// requests are reported with match counts and sample locations and
// leave the package untouched.
//
// # Execution
//
// [Execute] runs the full pipeline: scan, mutate, repackage.
//
//	out, report, err := replace.Execute(deck, []replace.Request{
//	    {Find: "{{NAME}}", Replace: "World"},
//	    {Find: "Project", Replace: "Initiative", ReplaceAll: true},
//	}, replace.Options{Fonts: cache})
//
// Replacement text is parsed for inline formatting (markdown emphasis
// and code spans, plus <u>, <b>, <i>, <code> and <br> tags); each
// formatted stretch becomes its own run. The rewritten paragraph is
// sized by the auto-fit engine against its shape's box and keeps its
// original font family. Slides without a match keep their original
// bytes, and a call that changes nothing returns the input bytes
// unchanged.
package replace
