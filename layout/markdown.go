package layout

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind identifies the structural type of a parsed markdown block.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockBullets
	BlockNumbered
	BlockQuote
	BlockCode
	BlockTable
	BlockRule // horizontal rule, a slide break during pagination
)

// String returns a string representation of the block kind
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockBullets:
		return "bullets"
	case BlockNumbered:
		return "numbered"
	case BlockQuote:
		return "quote"
	case BlockCode:
		return "code"
	case BlockTable:
		return "table"
	case BlockRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Block is one structural unit of parsed markdown. Which fields are
// populated depends on Kind: Text for headings, paragraphs, quotes, and
// code; Items and Levels for lists; Rows for tables.
type Block struct {
	Kind   BlockKind
	Text   string
	Level  int        // heading level (1-6)
	Items  []string   // list item text in document order
	Levels []int      // per-item nesting depth, parallel to Items
	Rows   [][]string // table cells, row-major, header first
}

// blockMarkdown is shared across calls. The parser configuration never
// changes and parsing creates per-call state, so reuse is safe.
var blockMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ParseMarkdown parses markdown source into a flat block list. Inline
// formatting inside blocks is flattened to plain text; soft line breaks
// become spaces so hard-wrapped source reflows on the slide. Blocks with
// no visible content are dropped. HTML blocks are not representable on a
// slide and are skipped.
func ParseMarkdown(src []byte) ([]Block, error) {
	doc := blockMarkdown.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: v.Level,
				Text:  plainText(v, src),
			})
		case *ast.Paragraph, *ast.TextBlock:
			if t := plainText(v, src); t != "" {
				blocks = append(blocks, Block{Kind: BlockParagraph, Text: t})
			}
		case *ast.List:
			b := Block{Kind: BlockBullets}
			if v.IsOrdered() {
				b.Kind = BlockNumbered
			}
			collectItems(v, src, 0, &b)
			if len(b.Items) > 0 {
				blocks = append(blocks, b)
			}
		case *ast.Blockquote:
			if t := quoteText(v, src); t != "" {
				blocks = append(blocks, Block{Kind: BlockQuote, Text: t})
			}
		case *ast.FencedCodeBlock:
			blocks = append(blocks, Block{Kind: BlockCode, Text: codeText(v, src)})
		case *ast.CodeBlock:
			blocks = append(blocks, Block{Kind: BlockCode, Text: codeText(v, src)})
		case *extast.Table:
			if rows := tableRows(v, src); len(rows) > 0 {
				blocks = append(blocks, Block{Kind: BlockTable, Rows: rows})
			}
		case *ast.ThematicBreak:
			blocks = append(blocks, Block{Kind: BlockRule})
		}
	}
	return blocks, nil
}

// collectItems flattens a list and its nested sublists into the block's
// Items and Levels, in document order.
func collectItems(list *ast.List, src []byte, depth int, b *Block) {
	for it := list.FirstChild(); it != nil; it = it.NextSibling() {
		item, ok := it.(*ast.ListItem)
		if !ok {
			continue
		}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				collectItems(nested, src, depth+1, b)
				continue
			}
			if t := plainText(c, src); t != "" {
				b.Items = append(b.Items, t)
				b.Levels = append(b.Levels, depth)
			}
		}
	}
}

// quoteText joins the paragraphs of a block quote with newlines.
func quoteText(q *ast.Blockquote, src []byte) string {
	var parts []string
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		if t := plainText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// codeText returns the verbatim source of a code block without the
// trailing newline.
func codeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// tableRows extracts cell text from a pipe table. The header row comes
// first; the separator row is consumed by the parser.
func tableRows(t *extast.Table, src []byte) [][]string {
	var rows [][]string
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case extast.KindTableHeader, extast.KindTableRow:
			var cells []string
			for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
				if cell.Kind() == extast.KindTableCell {
					cells = append(cells, plainText(cell, src))
				}
			}
			rows = append(rows, cells)
		}
	}
	return rows
}
