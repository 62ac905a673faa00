package model

// ElementType identifies the kind of content an element carries.
type ElementType string

const (
	// ElementText is a plain or styled text block (headings, paragraphs,
	// quotes, and code blocks all translate to text elements).
	ElementText ElementType = "text"
	// ElementBullets is a bulleted or numbered list block.
	ElementBullets ElementType = "bullets"
	// ElementTable is a table block with rows of cells.
	ElementTable ElementType = "table"
)

// Style carries the presentation hints attached to an element.
type Style struct {
	Size     float64 // font size in points
	Bold     bool
	Italic   bool
	Mono     bool // render in a monospace face (code blocks)
	Numbered bool // numbered rather than bulleted list items
}

// Element is one positioned block of slide content produced by the layout
// translator. Elements are immutable once created; consumers place them on
// a slide and discard them.
type Element struct {
	Type     ElementType
	Content  string     // text content (ElementText)
	Items    []string   // list items (ElementBullets)
	Levels   []int      // per-item nesting level, parallel to Items
	Rows     [][]string // table cells, row-major (ElementTable)
	Position Box        // placement on the slide, inches
	Style    Style
}

// Issue reports a layout validation problem. Issues are advisory; the
// translator still returns the elements that triggered them.
type Issue struct {
	Code    string // "overflow", "overlap"
	Element int    // index of the offending element
	Other   int    // second element index for pairwise issues, else -1
	Message string
}

// Span is one stretch of inline-formatted text. A replacement string or a
// markdown fragment parses into an ordered span list; each span becomes
// one run when written into a paragraph.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Code      bool // monospace stretch
}
