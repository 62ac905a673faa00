package slidexml

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// renderPara is one paragraph prepared for rendering.
type renderPara struct {
	text     string
	level    int
	bullet   bool
	numbered bool
	bulletCh string
}

// renderBlock groups the rendered paragraphs of one text body.
type renderBlock struct {
	title bool
	paras []renderPara
}

// renderTable holds a table's cell text by row.
type renderTable struct {
	rows [][]string
}

// PlainText renders the slide's text in reading order. The title comes
// first, bullet items are indented two spaces per level, and tables are
// omitted.
func (d *Document) PlainText() string {
	blocks, _ := d.renderModel()

	var sb strings.Builder
	if title := firstTitle(blocks); title != "" {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	for _, b := range blocks {
		if b.title {
			continue
		}
		wrote := false
		for _, para := range b.paras {
			if para.text == "" {
				continue
			}
			if para.bullet || para.numbered {
				sb.WriteString(strings.Repeat("  ", para.level))
				if para.bullet && para.bulletCh != "" {
					sb.WriteString(para.bulletCh + " ")
				} else {
					sb.WriteString("• ")
				}
			}
			sb.WriteString(para.text)
			sb.WriteString("\n")
			wrote = true
		}
		if wrote {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Markdown renders the slide as markdown: the title as an H1 heading,
// bullet paragraphs as list items, numbered paragraphs as ordered list
// items, and tables as pipe tables.
func (d *Document) Markdown() string {
	blocks, tables := d.renderModel()

	var sb strings.Builder
	if title := firstTitle(blocks); title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	for _, b := range blocks {
		if b.title {
			continue
		}
		for _, para := range b.paras {
			if para.text == "" {
				continue
			}
			switch {
			case para.numbered:
				sb.WriteString(strings.Repeat("  ", para.level))
				sb.WriteString("1. ")
				sb.WriteString(para.text)
				sb.WriteString("\n")
			case para.bullet:
				sb.WriteString(strings.Repeat("  ", para.level))
				sb.WriteString("- ")
				sb.WriteString(para.text)
				sb.WriteString("\n")
			default:
				sb.WriteString(para.text)
				sb.WriteString("\n\n")
			}
		}
	}
	for _, table := range tables {
		sb.WriteString("\n")
		sb.WriteString(markdownTable(table))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderModel walks the tree once, producing text blocks in reading
// order plus the slide's tables.
func (d *Document) renderModel() ([]renderBlock, []renderTable) {
	var blocks []renderBlock
	var tables []renderTable

	d.Visit(func(el *etree.Element, kind NodeKind) bool {
		switch {
		case kind == KindShape && el.Tag == "sp":
			if b, ok := textBlock(el); ok {
				blocks = append(blocks, b)
			}
		case kind == KindTable:
			tables = append(tables, renderTable{rows: tableRows(el)})
		}
		return true
	})
	return blocks, tables
}

// textBlock renders the paragraphs of one shape's text body.
func textBlock(sp *etree.Element) (renderBlock, bool) {
	txBody := sp.SelectElement("txBody")
	if txBody == nil {
		return renderBlock{}, false
	}
	b := renderBlock{title: isTitle(sp)}
	for _, child := range txBody.ChildElements() {
		if child.Tag != "p" {
			continue
		}
		b.paras = append(b.paras, paraForRender(child))
	}
	return b, len(b.paras) > 0
}

// paraForRender reads a paragraph's text and bullet properties.
func paraForRender(p *etree.Element) renderPara {
	para := renderPara{text: strings.TrimSpace((&Paragraph{el: p}).Text())}
	ppr := p.SelectElement("pPr")
	if ppr == nil {
		return para
	}
	if lvl := ppr.SelectAttrValue("lvl", ""); lvl != "" {
		if n, err := strconv.Atoi(lvl); err == nil {
			para.level = n
		}
	}
	// Explicit buNone suppresses any bullet; otherwise an auto-number
	// or character bullet applies, and indented items default to
	// bullets.
	if ppr.SelectElement("buNone") == nil {
		switch {
		case ppr.SelectElement("buAutoNum") != nil:
			para.numbered = true
		case ppr.SelectElement("buChar") != nil:
			para.bullet = true
			para.bulletCh = ppr.SelectElement("buChar").SelectAttrValue("char", "")
		case para.level > 0:
			para.bullet = true
		}
	}
	return para
}

// isTitle reports whether a shape is a title placeholder.
func isTitle(sp *etree.Element) bool {
	t := placeholderType(sp)
	return t == "title" || t == "ctrTitle"
}

// placeholderType returns a shape's ph type attribute, or "".
func placeholderType(sp *etree.Element) string {
	nv := sp.SelectElement("nvSpPr")
	if nv == nil {
		return ""
	}
	nvPr := nv.SelectElement("nvPr")
	if nvPr == nil {
		return ""
	}
	ph := nvPr.SelectElement("ph")
	if ph == nil {
		return ""
	}
	return ph.SelectAttrValue("type", "")
}

// firstTitle returns the first non-empty paragraph of the first title
// block.
func firstTitle(blocks []renderBlock) string {
	for _, b := range blocks {
		if !b.title {
			continue
		}
		for _, para := range b.paras {
			if para.text != "" {
				return para.text
			}
		}
	}
	return ""
}

// tableRows extracts cell text from an a:tbl element.
func tableRows(tbl *etree.Element) [][]string {
	var rows [][]string
	for _, tr := range tbl.ChildElements() {
		if tr.Tag != "tr" {
			continue
		}
		var row []string
		for _, tc := range tr.ChildElements() {
			if tc.Tag != "tc" {
				continue
			}
			row = append(row, cellText(tc))
		}
		rows = append(rows, row)
	}
	return rows
}

// cellText joins a cell's paragraphs with spaces.
func cellText(tc *etree.Element) string {
	txBody := tc.SelectElement("txBody")
	if txBody == nil {
		return ""
	}
	var parts []string
	for _, p := range txBody.ChildElements() {
		if p.Tag != "p" {
			continue
		}
		if text := strings.TrimSpace((&Paragraph{el: p}).Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// markdownTable renders rows as a pipe table, first row as the header.
func markdownTable(t renderTable) string {
	if len(t.rows) == 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("|")
	for _, cell := range t.rows[0] {
		sb.WriteString(" " + escapeCell(cell) + " |")
	}
	sb.WriteString("\n|")
	for range t.rows[0] {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, row := range t.rows[1:] {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" " + escapeCell(cell) + " |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// escapeCell flattens cell text for a single markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
