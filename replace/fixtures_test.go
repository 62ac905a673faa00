package replace

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/slidesmith/opc"
	"github.com/tsawler/slidesmith/slidexml"
)

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

const fixturePresentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId1"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

const slideHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>`

const slideFooter = `</p:spTree>
  </p:cSld>
</p:sld>`

// slideWithParagraphs builds a slide with one shape holding one
// single-run paragraph per argument. Text is inserted verbatim, so XML
// metacharacters must arrive pre-escaped.
func slideWithParagraphs(paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(slideHeader)
	sb.WriteString(`<p:sp><p:txBody><a:bodyPr/>`)
	for _, text := range paragraphs {
		sb.WriteString(`<a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	sb.WriteString(slideFooter)
	return sb.String()
}

// slideWithRuns builds a slide with a single paragraph whose text is
// split across one run per argument.
func slideWithRuns(runs ...string) string {
	var sb strings.Builder
	sb.WriteString(slideHeader)
	sb.WriteString(`<p:sp><p:txBody><a:bodyPr/><a:p>`)
	for _, text := range runs {
		sb.WriteString(`<a:r><a:t>` + text + `</a:t></a:r>`)
	}
	sb.WriteString(`</a:p></p:txBody></p:sp>`)
	sb.WriteString(slideFooter)
	return sb.String()
}

// slideWithBox builds a slide whose shape declares an explicit extent
// in EMUs, so replacements fit against that box instead of the slide.
func slideWithBox(text string, cx, cy int64) string {
	return slideHeader + fmt.Sprintf(`<p:sp><p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr><p:txBody><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, cx, cy, text) + slideFooter
}

// slideWithStyledRun builds a slide whose single run carries explicit
// size and typeface properties.
func slideWithStyledRun(text, typeface string, sz int) string {
	return slideHeader + fmt.Sprintf(`<p:sp><p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="en-US" sz="%d" b="1"><a:latin typeface="%s"/></a:rPr><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, sz, typeface, text) + slideFooter
}

// buildDeck assembles an in-memory PPTX archive with the given slide
// parts in order.
func buildDeck(t testing.TB, slides ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeDeckFile(t, zw, "[Content_Types].xml", fixtureContentTypes)
	writeDeckFile(t, zw, "ppt/presentation.xml", fixturePresentation)
	for i, s := range slides {
		writeDeckFile(t, zw, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), s)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing deck archive: %v", err)
	}
	return buf.Bytes()
}

func writeDeckFile(t testing.TB, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// openDeck parses package bytes produced by Execute.
func openDeck(t *testing.T, data []byte) *opc.Package {
	t.Helper()
	pkg, err := opc.FromBytes(data)
	if err != nil {
		t.Fatalf("reading package: %v", err)
	}
	return pkg
}

// slideText returns all paragraph text of one slide, joined by
// newlines. slide is 1-based.
func slideText(t *testing.T, data []byte, slide int) string {
	t.Helper()
	doc := parseSlide(t, data, slide)
	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n")
}

// slideRuns returns the run views of one paragraph. slide is 1-based,
// para is the walk index.
func slideRuns(t *testing.T, data []byte, slide, para int) []slidexml.Run {
	t.Helper()
	doc := parseSlide(t, data, slide)
	paras := doc.Paragraphs()
	if para >= len(paras) {
		t.Fatalf("slide %d has %d paragraphs, want index %d", slide, len(paras), para)
	}
	return paras[para].Runs()
}

func parseSlide(t *testing.T, data []byte, slide int) *slidexml.Document {
	t.Helper()
	pkg := openDeck(t, data)
	parts := pkg.SlideParts()
	if slide > len(parts) {
		t.Fatalf("package has %d slides, want slide %d", len(parts), slide)
	}
	raw, err := pkg.Part(parts[slide-1])
	if err != nil {
		t.Fatalf("reading slide %d: %v", slide, err)
	}
	doc, err := slidexml.Parse(parts[slide-1], raw)
	if err != nil {
		t.Fatalf("parsing slide %d: %v", slide, err)
	}
	return doc
}
