package slidesmith

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/slidesmith/font"
	"github.com/tsawler/slidesmith/format"
	"github.com/tsawler/slidesmith/opc"
	"github.com/tsawler/slidesmith/replace"
	"github.com/tsawler/slidesmith/slidexml"
)

// Editor provides a fluent interface for editing and reading PPTX
// presentations. Each configuration method returns a new Editor
// instance, making it safe for concurrent use and allowing method
// chaining. An Editor holds only bytes; there is nothing to close.
type Editor struct {
	// Source (exactly one is set by the constructors)
	filename string
	reader   io.Reader
	source   []byte

	// true once source holds validated package bytes
	loaded bool

	// Configuration
	options editOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Editor with a deep copy of
// options. This ensures immutability: each chain method returns a new
// instance.
func (e *Editor) clone() *Editor {
	return &Editor{
		filename: e.filename,
		reader:   e.reader,
		source:   e.source,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ensureSource materializes and validates the package bytes.
func (e *Editor) ensureSource() error {
	if e.loaded {
		return nil
	}

	switch {
	case e.source != nil:
	case e.reader != nil:
		data, err := io.ReadAll(e.reader)
		if err != nil {
			return fmt.Errorf("reading package: %w", err)
		}
		e.source = data
	case e.filename != "":
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return fmt.Errorf("opening %s: %w", e.filename, err)
		}
		e.source = data
	default:
		return fmt.Errorf("no package source specified")
	}

	if err := format.Sniff(e.source); err != nil {
		return err
	}
	e.loaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Editor instance)
// ============================================================================

// WithFontCache supplies a font cache for measured auto-fit sizing.
// Without one, replacement text is sized by a character-count
// heuristic.
//
// Example:
//
//	cache := font.NewCache()
//	out, report, err := slidesmith.Open("deck.pptx").WithFontCache(cache).Replace(reqs...)
func (e *Editor) WithFontCache(cache *font.Cache) *Editor {
	newEd := e.clone()
	newEd.options.fonts = cache
	return newEd
}

// WithSizeRange bounds the point size chosen by auto-fit. Zero keeps
// the default bound (10 and 44 points); equal values pin the size. An
// inverted or negative range fails the next terminal operation.
//
// Example:
//
//	out, _, err := slidesmith.Open("deck.pptx").WithSizeRange(12, 28).Replace(reqs...)
func (e *Editor) WithSizeRange(minPt, maxPt float64) *Editor {
	newEd := e.clone()
	if minPt < 0 || maxPt < 0 || (maxPt > 0 && maxPt < minPt) {
		newEd.err = fmt.Errorf("invalid size range: %g to %g points", minPt, maxPt)
		return newEd
	}
	newEd.options.minSize = minPt
	newEd.options.maxSize = maxPt
	return newEd
}

// Warnings returns the warnings accumulated so far. It is most useful
// after a terminal operation.
func (e *Editor) Warnings() []Warning {
	return append([]Warning(nil), e.warnings...)
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Replace applies replacement requests to the presentation and returns
// the new package bytes together with a per-request report. The whole
// deck is scanned before anything changes: a phrase that matches more
// than once is blocked unless its request sets ReplaceAll, and a
// blocked or failed scan never leaves the package half-edited. When no
// replacement lands, the returned bytes are the input bytes unchanged.
//
// Example:
//
//	out, report, err := slidesmith.Open("deck.pptx").Replace(replace.Request{
//	    Find:    "{{NAME}}",
//	    Replace: "Ada Lovelace",
//	})
func (e *Editor) Replace(reqs ...replace.Request) ([]byte, *replace.Report, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}

	out, report, err := replace.Execute(e.source, reqs, replace.Options{
		Fonts:   e.options.fonts,
		MinSize: e.options.minSize,
		MaxSize: e.options.maxSize,
	})
	if err != nil {
		return nil, nil, err
	}
	e.warnings = append(e.warnings, report.Warnings...)
	return out, report, nil
}

// ScanOnly locates every occurrence of a phrase without modifying the
// presentation. It is the dry-run companion to Replace: the matches it
// returns are the ones Replace would consider.
//
// Example:
//
//	matches, _, err := slidesmith.Open("deck.pptx").ScanOnly("Project")
func (e *Editor) ScanOnly(phrase string) ([]replace.Match, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}

	pkg, err := opc.FromBytes(e.source)
	if err != nil {
		return nil, nil, fmt.Errorf("opening package: %w", err)
	}
	matches, warnings, err := replace.Scan(pkg, phrase)
	e.warnings = append(e.warnings, warnings...)
	if err != nil {
		return nil, e.warnings, err
	}
	return matches, e.warnings, nil
}

// Text extracts the presentation's text in reading order, slides
// separated by blank lines. Slides whose XML cannot be parsed are
// skipped with a warning.
//
// Example:
//
//	text, warnings, err := slidesmith.Open("deck.pptx").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidesmith.FormatWarnings(warnings))
//	}
func (e *Editor) Text() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return "", nil, err
	}

	docs, err := e.slideDocs()
	if err != nil {
		return "", e.warnings, err
	}

	var sb strings.Builder
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		text := strings.TrimRight(doc.PlainText(), "\n")
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), e.warnings, nil
}

// Markdown renders the presentation as markdown: slide titles become
// headings, bullet paragraphs become list items, tables become pipe
// tables, and slides are separated by horizontal rules.
//
// Example:
//
//	md, _, err := slidesmith.Open("deck.pptx").Markdown()
func (e *Editor) Markdown() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return "", nil, err
	}

	docs, err := e.slideDocs()
	if err != nil {
		return "", e.warnings, err
	}

	var sb strings.Builder
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		md := strings.TrimRight(doc.Markdown(), "\n")
		if md == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		sb.WriteString(md)
	}
	return sb.String(), e.warnings, nil
}

// SlideCount returns the number of slides in the presentation.
//
// Example:
//
//	count := slidesmith.Must(slidesmith.Open("deck.pptx").SlideCount())
func (e *Editor) SlideCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}

	pkg, err := opc.FromBytes(e.source)
	if err != nil {
		return 0, fmt.Errorf("opening package: %w", err)
	}
	return len(pkg.SlideParts()), nil
}

// slideDocs parses every slide part in deck order. Unparseable slides
// yield a nil entry plus a warning; the call errors only when no slide
// could be parsed at all.
func (e *Editor) slideDocs() ([]*slidexml.Document, error) {
	pkg, err := opc.FromBytes(e.source)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}

	parts := pkg.SlideParts()
	docs := make([]*slidexml.Document, len(parts))
	parsed := 0
	for i, name := range parts {
		raw, err := pkg.Part(name)
		if err != nil {
			continue
		}
		doc, err := slidexml.Parse(name, raw)
		if err != nil {
			e.warnings = append(e.warnings, Warning{
				Code:    replace.WarnSlideSkipped,
				Slide:   i + 1,
				Message: fmt.Sprintf("slide %d: %v", i+1, err),
			})
			continue
		}
		docs[i] = doc
		parsed++
	}
	if parsed == 0 {
		return nil, fmt.Errorf("no slide part could be parsed")
	}
	return docs, nil
}
