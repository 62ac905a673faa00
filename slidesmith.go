// Package slidesmith provides a fluent API for editing PowerPoint
// (PPTX) presentations: exact-phrase text replacement with inline
// formatting and auto-fit sizing, plus plain-text and markdown
// extraction.
//
// Basic usage:
//
//	out, report, err := slidesmith.Open("deck.pptx").Replace(replace.Request{
//	    Find:    "{{NAME}}",
//	    Replace: "Ada Lovelace",
//	})
//	if err != nil {
//	    // handle error
//	}
//	if !report.Success {
//	    log.Println(report.Message)
//	}
//
// With options:
//
//	out, report, err := slidesmith.FromBytes(deck).
//	    WithFontCache(font.NewCache()).
//	    WithSizeRange(10, 44).
//	    Replace(requests...)
//
// Replacement is safe by default: the whole deck is scanned before
// anything changes, and a phrase matching more than once is blocked
// unless its request sets ReplaceAll. For advanced use cases, the
// lower-level replace, opc, and slidexml packages are also available.
package slidesmith

import (
	"io"

	"github.com/tsawler/slidesmith/replace"
)

// Open prepares an Editor for a PPTX file on disk. The file is read
// when a terminal operation runs.
//
// Example:
//
//	text, warnings, err := slidesmith.Open("deck.pptx").Text()
func Open(filename string) *Editor {
	return &Editor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader prepares an Editor that reads the package from r. The
// reader is consumed by the first terminal operation; the caller
// remains responsible for closing it.
//
// Example:
//
//	f, err := os.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	md, _, err := slidesmith.FromReader(f).Markdown()
func FromReader(r io.Reader) *Editor {
	return &Editor{
		reader:  r,
		options: defaultOptions(),
	}
}

// FromBytes prepares an Editor over an in-memory package. The buffer
// is never modified; editing operations return new bytes.
//
// Example:
//
//	out, report, err := slidesmith.FromBytes(deck).Replace(reqs...)
func FromBytes(data []byte) *Editor {
	return &Editor{
		source:  data,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := slidesmith.Must(slidesmith.Open("deck.pptx").SlideCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text(), Markdown(), or
// ScanOnly() and panics if the error is non-nil. It discards warnings
// and returns just the value.
//
// Example:
//
//	text := slidesmith.MustText(slidesmith.Open("deck.pptx").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustBytes is a helper that wraps a call to Replace() and panics if
// the error is non-nil. It discards the report and returns the edited
// package bytes.
//
// Example:
//
//	out := slidesmith.MustBytes(slidesmith.FromBytes(deck).Replace(reqs...))
func MustBytes(out []byte, _ *replace.Report, err error) []byte {
	if err != nil {
		panic(err)
	}
	return out
}
