// Package layout translates markdown content into positioned slide
// elements.
//
// The package parses markdown into structural blocks, assigns each block a
// position and size using a vertical flow model, and validates the
// resulting geometry.
//
// # Parsing
//
// [ParseMarkdown] converts markdown source into a flat block list:
//
//	blocks, err := layout.ParseMarkdown(src)
//
// Headings, paragraphs, nested lists, block quotes, fenced code, and pipe
// tables are recognized. [ParseInline] parses a single string of
// inline-formatted text (markdown emphasis and code spans, plus a small
// set of HTML tags) into styled spans for run construction.
//
// # Translation
//
// The [Translator] lays blocks out top to bottom on a slide canvas:
//
//	elements := layout.NewTranslator().Translate(blocks)
//
// Font sizes follow a fixed ladder: the slide title at 32pt, headings at
// 28/24/20pt by level, and body text at 14pt. Heights are estimated from
// character widths so wrapped text advances the flow correctly.
//
// # Pagination
//
// [Translator.Paginate] starts a new slide when the flow passes the
// bottom margin or the source contains a horizontal rule:
//
//	pages := layout.NewTranslator().Paginate(blocks)
//
// # Validation
//
// [Validate] reports elements that escape the page or overlap:
//
//	issues := layout.Validate(elements, layout.DefaultConfig())
package layout
