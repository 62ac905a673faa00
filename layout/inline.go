package layout

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/tsawler/slidesmith/model"
)

// inlineMarkdown parses with the paragraph parser only, so a string
// keeps its literal line starts: "1. done" or "# note" stay text instead
// of becoming lists or headings. Inline constructs (emphasis, code
// spans, raw HTML) are parsed normally.
var inlineMarkdown = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// ParseInline parses one string of inline-formatted text into styled
// spans. Bold, italic, and code follow markdown conventions; <b>, <i>,
// <u>, <code>, and <br> tags are honored as well. Line breaks in the
// input are preserved. Adjacent stretches with identical styling are
// merged, so plain text yields a single span.
func ParseInline(s string) []model.Span {
	if s == "" {
		return nil
	}
	src := []byte(s)
	doc := inlineMarkdown.Parse(text.NewReader(src))
	w := &spanWalker{src: src, soft: "\n", sep: "\n\n"}
	ast.Walk(doc, w.walk)
	return w.spans
}

// plainText flattens a node's inline content to unstyled text. Soft
// line breaks become spaces so hard-wrapped source reflows.
func plainText(n ast.Node, src []byte) string {
	w := &spanWalker{src: src, soft: " ", sep: "\n"}
	ast.Walk(n, w.walk)
	var sb strings.Builder
	for _, sp := range w.spans {
		sb.WriteString(sp.Text)
	}
	return strings.TrimSpace(sb.String())
}

// spanWalker accumulates styled spans from an inline AST walk. Style
// counters rather than booleans keep nested emphasis balanced.
type spanWalker struct {
	src   []byte
	soft  string // emitted for a soft line break
	sep   string // emitted between sibling blocks
	spans []model.Span

	bold      int
	italic    int
	underline int
	code      int
}

func (w *spanWalker) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering && len(w.spans) > 0 {
			w.emit(w.sep)
		}
	case *ast.Text:
		if entering {
			w.emit(string(v.Segment.Value(w.src)))
			if v.HardLineBreak() {
				w.emit("\n")
			} else if v.SoftLineBreak() {
				w.emit(w.soft)
			}
		}
	case *ast.String:
		if entering {
			w.emit(string(v.Value))
		}
	case *ast.Emphasis:
		step := 1
		if !entering {
			step = -1
		}
		if v.Level >= 2 {
			w.bold += step
		} else {
			w.italic += step
		}
	case *ast.CodeSpan:
		if entering {
			w.code++
		} else {
			w.code--
		}
	case *ast.RawHTML:
		if entering {
			var raw strings.Builder
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				raw.Write(seg.Value(w.src))
			}
			w.handleTag(raw.String())
			return ast.WalkSkipChildren, nil
		}
	case *ast.AutoLink:
		if entering {
			w.emit(string(v.URL(w.src)))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

// handleTag applies a raw inline HTML fragment to the style state. The
// parser delivers each tag as its own node, so a fragment is typically a
// single start or end tag.
func (w *spanWalker) handleTag(raw string) {
	tz := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return
		}
		tok := tz.Token()
		switch tt {
		case html.StartTagToken:
			switch tok.Data {
			case "br":
				w.emit("\n")
			case "u", "ins":
				w.underline++
			case "b", "strong":
				w.bold++
			case "i", "em":
				w.italic++
			case "code", "tt":
				w.code++
			}
		case html.SelfClosingTagToken:
			if tok.Data == "br" {
				w.emit("\n")
			}
		case html.EndTagToken:
			switch tok.Data {
			case "u", "ins":
				w.underline--
			case "b", "strong":
				w.bold--
			case "i", "em":
				w.italic--
			case "code", "tt":
				w.code--
			}
		}
	}
}

// emit appends text under the current style, extending the previous
// span when the style is unchanged.
func (w *spanWalker) emit(text string) {
	if text == "" {
		return
	}
	sp := model.Span{
		Text:      text,
		Bold:      w.bold > 0,
		Italic:    w.italic > 0,
		Underline: w.underline > 0,
		Code:      w.code > 0,
	}
	if n := len(w.spans); n > 0 && sameStyle(w.spans[n-1], sp) {
		w.spans[n-1].Text += text
		return
	}
	w.spans = append(w.spans, sp)
}

func sameStyle(a, b model.Span) bool {
	return a.Bold == b.Bold && a.Italic == b.Italic &&
		a.Underline == b.Underline && a.Code == b.Code
}
