package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tsawler/slidesmith/model"
)

// Package is an in-memory PPTX archive: part contents keyed by path, with
// original entry order preserved for deterministic repackaging. A Package
// is materialized at the start of an editing operation and discarded at
// the end; nothing is shared between invocations.
type Package struct {
	names    []string
	parts    map[string][]byte
	modified map[string]bool

	slideWidthIn  float64
	slideHeightIn float64
}

// FromBytes reads a PPTX package from a byte buffer.
func FromBytes(data []byte) (*Package, error) {
	return ReadPackage(bytes.NewReader(data), int64(len(data)))
}

// ReadPackage reads a PPTX package from a reader.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Package{
		parts:    make(map[string][]byte, len(zr.File)),
		modified: make(map[string]bool),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		p.names = append(p.names, f.Name)
		p.parts[f.Name] = data
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.slideWidthIn, p.slideHeightIn = p.parseSlideSize()

	return p, nil
}

// validate checks that required PPTX parts exist.
func (p *Package) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	for _, name := range required {
		if _, ok := p.parts[name]; !ok {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	hasSlide := false
	for name := range p.parts {
		if isSlidePart(name) {
			hasSlide = true
			break
		}
	}
	if !hasSlide {
		return fmt.Errorf("no slides found in presentation")
	}

	return nil
}

// Names returns all part paths in original archive order.
func (p *Package) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Has reports whether a part exists in the package.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// Part returns the current content of a part.
func (p *Package) Part(name string) ([]byte, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return data, nil
}

// SetPart overwrites a part's content and marks it modified. Setting a
// part that does not exist adds it at the end of the archive.
func (p *Package) SetPart(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
	p.modified[name] = true
}

// Modified reports whether a part has been overwritten since the package
// was read.
func (p *Package) Modified(name string) bool {
	return p.modified[name]
}

// AnyModified reports whether any part has been overwritten.
func (p *Package) AnyModified() bool {
	return len(p.modified) > 0
}

// SlideParts returns the slide part paths sorted by slide number
// (slide2.xml before slide10.xml).
func (p *Package) SlideParts() []string {
	var slides []string
	for _, name := range p.names {
		if isSlidePart(name) {
			slides = append(slides, name)
		}
	}

	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i]) < slideNumber(slides[j])
	})

	return slides
}

// SlideSize returns the slide dimensions in inches, read from the
// presentation's sldSz element. Falls back to the PowerPoint default of
// 10 x 7.5 inches when the element is absent or unreadable.
func (p *Package) SlideSize() (widthIn, heightIn float64) {
	return p.slideWidthIn, p.slideHeightIn
}

// Bytes repackages the archive and returns the resulting bytes. Entries
// are written in original order; parts never overwritten keep their
// original content byte-for-byte.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range p.names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("writing entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}

	return buf.Bytes(), nil
}

// isSlidePart reports whether a part path is a slide document (and not a
// slide relationships file).
func isSlidePart(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/slide") &&
		strings.HasSuffix(name, ".xml") &&
		!strings.Contains(name, "_rels")
}

// slideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func slideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// presentationXML is the subset of ppt/presentation.xml the container
// cares about.
type presentationXML struct {
	XMLName xml.Name `xml:"presentation"`
	SldSz   *struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

// parseSlideSize reads the slide dimensions from ppt/presentation.xml.
func (p *Package) parseSlideSize() (widthIn, heightIn float64) {
	widthIn = model.DefaultSlideWidthIn
	heightIn = model.DefaultSlideHeightIn

	data, ok := p.parts["ppt/presentation.xml"]
	if !ok {
		return widthIn, heightIn
	}

	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return widthIn, heightIn
	}
	if pres.SldSz == nil || pres.SldSz.Cx <= 0 || pres.SldSz.Cy <= 0 {
		return widthIn, heightIn
	}

	return model.EMUToInches(pres.SldSz.Cx), model.EMUToInches(pres.SldSz.Cy)
}
