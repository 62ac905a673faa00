package slidexml

import (
	"fmt"

	"github.com/beevik/etree"
)

// NodeKind classifies an element in a slide's shape tree.
type NodeKind int

const (
	// KindOther is any element the walker passes through untouched.
	KindOther NodeKind = iota
	// KindShape is a shape that carries geometry and may hold a text body.
	KindShape
	// KindGroup is a grouped-shape container.
	KindGroup
	// KindTable is a table inside a graphic frame.
	KindTable
	// KindParagraph is a paragraph inside a text body.
	KindParagraph
	// KindRun is a text run or field within a paragraph.
	KindRun
)

// String returns the name of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindGroup:
		return "group"
	case KindTable:
		return "table"
	case KindParagraph:
		return "paragraph"
	case KindRun:
		return "run"
	default:
		return "other"
	}
}

// Kind classifies a single element. Matching is on local names, so
// documents with unconventional namespace prefixes still classify.
func Kind(el *etree.Element) NodeKind {
	switch el.Tag {
	case "sp", "graphicFrame", "pic":
		return KindShape
	case "grpSp":
		return KindGroup
	case "tbl":
		return KindTable
	case "p":
		if parent := el.Parent(); parent != nil && parent.Tag == "txBody" {
			return KindParagraph
		}
		return KindOther
	case "r", "fld":
		if parent := el.Parent(); parent != nil && parent.Tag == "p" {
			return KindRun
		}
		return KindOther
	default:
		return KindOther
	}
}

// Document is one parsed slide part.
type Document struct {
	name string
	doc  *etree.Document

	paragraphs []*Paragraph // built lazily by Paragraphs
}

// Parse parses a slide part's XML into a Document.
func Parse(name string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing %s: no root element", name)
	}

	return &Document{name: name, doc: doc}, nil
}

// Name returns the part path this document was parsed from.
func (d *Document) Name() string {
	return d.name
}

// Root returns the root element of the slide tree.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Serialize writes the tree back to XML bytes.
func (d *Document) Serialize() ([]byte, error) {
	out, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", d.name, err)
	}
	return out, nil
}

// Visit walks the tree in document order, calling fn for every element
// with its classified kind. Returning false from fn stops the walk.
func (d *Document) Visit(fn func(el *etree.Element, kind NodeKind) bool) {
	visit(d.doc.Root(), fn)
}

func visit(el *etree.Element, fn func(el *etree.Element, kind NodeKind) bool) bool {
	if el == nil {
		return true
	}
	if !fn(el, Kind(el)) {
		return false
	}
	for _, child := range el.ChildElements() {
		if !visit(child, fn) {
			return false
		}
	}
	return true
}

// Paragraphs returns every paragraph in the slide in document order,
// regardless of nesting: plain shapes, table cells, and grouped shapes
// all contribute. The walk runs once; repeated calls return the same
// slice.
func (d *Document) Paragraphs() []*Paragraph {
	if d.paragraphs != nil {
		return d.paragraphs
	}

	d.paragraphs = []*Paragraph{}

	d.Visit(func(el *etree.Element, kind NodeKind) bool {
		if kind == KindParagraph {
			d.paragraphs = append(d.paragraphs, &Paragraph{
				el:    el,
				shape: enclosingShape(el),
				index: len(d.paragraphs),
			})
		}
		return true
	})

	return d.paragraphs
}

// enclosingShape returns the nearest shape ancestor of a paragraph.
// Table cell paragraphs resolve to the graphic frame that holds the
// table.
func enclosingShape(el *etree.Element) *etree.Element {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if Kind(cur) == KindShape {
			return cur
		}
	}
	return nil
}
