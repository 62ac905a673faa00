// Package slidexml provides the document model for slide parts: parsing a
// slide's XML into a navigable tree, locating paragraphs anywhere in the
// shape hierarchy, extracting their run text, and rewriting runs in place.
//
// The tree is backed by etree, which preserves element order, attribute
// order, and namespace prefixes through a parse/serialize cycle. Nodes are
// classified into a small set of kinds rather than matched ad hoc:
//
//   - [KindShape] - p:sp and p:graphicFrame, the units that carry geometry
//   - [KindGroup] - p:grpSp, nested shape containers
//   - [KindTable] - a:tbl inside a graphic frame
//   - [KindParagraph] - a:p inside any text body
//   - [KindRun] - a:r and a:fld, the smallest styleable text units
//   - [KindOther] - everything else, passed through untouched
//
// # Parsing and serializing
//
//	doc, err := slidexml.Parse("ppt/slides/slide1.xml", data)
//	out, err := doc.Serialize()
//
// # Paragraph access
//
// [Document.Paragraphs] walks the full tree once and returns every
// paragraph in document order, whether it sits in a plain shape, a table
// cell, or a nested group:
//
//	for _, para := range doc.Paragraphs() {
//	    full := para.Text() // concatenation of all runs, in order
//	}
//
// A paragraph's visible text may be split across several runs by earlier
// formatting operations; Text returns the concatenation, which is the unit
// any search must operate on.
//
// # Rewriting
//
// [Paragraph.Rewrite] discards the paragraph's run list and writes a new
// run per span, carrying the first original run's properties forward as a
// template:
//
//	spans := []model.Span{{Text: "Hello "}, {Text: "World", Bold: true}}
//	para.Rewrite(spans, 24, "Calibri")
//
// Only paragraphs that are rewritten change shape; untouched subtrees
// serialize exactly as parsed.
package slidexml
