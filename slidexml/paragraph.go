package slidexml

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/slidesmith/model"
)

// Paragraph is one a:p element plus enough context to read and edit it
// in place.
type Paragraph struct {
	el    *etree.Element
	shape *etree.Element
	index int
}

// Run is a read-only view of one text run's content and formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	SizePt    float64
	Font      string
}

// Index returns the paragraph's position in the slide's walk order.
func (p *Paragraph) Index() int {
	return p.index
}

// Text returns the paragraph's visible text: run and field text in
// document order, with explicit line breaks rendered as "\n". This is
// the unit of search for phrase matching.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, child := range p.el.ChildElements() {
		switch child.Tag {
		case "r", "fld":
			if t := child.SelectElement("t"); t != nil {
				sb.WriteString(t.Text())
			}
		case "br":
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Runs returns a view of each run in document order. Explicit line
// breaks appear as runs whose Text is "\n".
func (p *Paragraph) Runs() []Run {
	var runs []Run
	for _, child := range p.el.ChildElements() {
		switch child.Tag {
		case "r", "fld":
			run := runProps(child.SelectElement("rPr"))
			if t := child.SelectElement("t"); t != nil {
				run.Text = t.Text()
			}
			runs = append(runs, run)
		case "br":
			runs = append(runs, Run{Text: "\n"})
		}
	}
	return runs
}

// FontFace returns the paragraph's effective latin typeface: the first
// run that names one, falling back to the a:pPr/a:defRPr default. Empty
// when nothing names a face.
func (p *Paragraph) FontFace() string {
	for _, run := range p.Runs() {
		if run.Font != "" {
			return run.Font
		}
	}
	if def := paragraphDefaults(p.el); def != nil {
		if latin := def.SelectElement("latin"); latin != nil {
			return latin.SelectAttrValue("typeface", "")
		}
	}
	return ""
}

// FontSize returns the first explicit run size in points, falling back
// to the a:pPr/a:defRPr default. Zero when no size is declared.
func (p *Paragraph) FontSize() float64 {
	for _, run := range p.Runs() {
		if run.SizePt > 0 {
			return run.SizePt
		}
	}
	if def := paragraphDefaults(p.el); def != nil {
		return sizeAttr(def)
	}
	return 0
}

// Bold reports whether the paragraph's first run is bold.
func (p *Paragraph) Bold() bool {
	runs := p.Runs()
	return len(runs) > 0 && runs[0].Bold
}

// BoxInches returns the enclosing shape's width and height in inches.
// Table paragraphs report the graphic frame's extent. Shapes nested in
// groups are scaled by each ancestor group's ext/chExt ratio. ok is
// false when the shape has no usable transform; callers typically fall
// back to the slide dimensions.
func (p *Paragraph) BoxInches() (w, h float64, ok bool) {
	if p.shape == nil {
		return 0, 0, false
	}
	ext := shapeExtent(p.shape)
	if ext == nil {
		return 0, 0, false
	}
	cx, errX := strconv.ParseInt(ext.SelectAttrValue("cx", ""), 10, 64)
	cy, errY := strconv.ParseInt(ext.SelectAttrValue("cy", ""), 10, 64)
	if errX != nil || errY != nil || cx <= 0 || cy <= 0 {
		return 0, 0, false
	}

	w = model.EMUToInches(cx)
	h = model.EMUToInches(cy)

	// A group drawn at ext but laid out in chExt child units rescales
	// every descendant by ext/chExt.
	for cur := p.shape.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Tag != "grpSp" {
			continue
		}
		sx, sy := groupScale(cur)
		w *= sx
		h *= sy
	}
	return w, h, true
}

// Rewrite replaces the paragraph's entire run list with one run per
// span. Formatting for each new run starts from a deep copy of the
// first original run's properties, so color, language, and similar
// attributes survive; bold, italic, underline, size, and typeface are
// then forced from the span. a:pPr and a:endParaRPr are left in place.
// sizePt <= 0 keeps the template's size; face == "" keeps its typeface.
// A "\n" inside a span becomes an explicit a:br.
func (p *Paragraph) Rewrite(spans []model.Span, sizePt float64, face string) {
	space := p.el.Space

	var template *etree.Element
	var stale []*etree.Element
	for _, child := range p.el.ChildElements() {
		switch child.Tag {
		case "r", "fld":
			if template == nil {
				if rpr := child.SelectElement("rPr"); rpr != nil {
					template = rpr.Copy()
				}
			}
			stale = append(stale, child)
		case "br":
			stale = append(stale, child)
		}
	}
	for _, child := range stale {
		p.el.RemoveChild(child)
	}

	endPr := p.el.SelectElement("endParaRPr")

	for _, span := range spans {
		segments := strings.Split(span.Text, "\n")
		for i, segment := range segments {
			if i > 0 {
				p.el.CreateElement(prefixed(space, "br"))
			}
			if segment == "" {
				continue
			}
			run := p.el.CreateElement(prefixed(space, "r"))
			rpr := cloneRunProps(run, template, space)
			applySpan(rpr, span, sizePt, face, space)
			run.CreateElement(prefixed(space, "t")).SetText(segment)
		}
	}

	// endParaRPr must stay the last child of a:p.
	if endPr != nil {
		p.el.AddChild(endPr)
	}
}

// cloneRunProps attaches an rPr to a new run, copied from the template
// when one exists.
func cloneRunProps(run, template *etree.Element, space string) *etree.Element {
	if template == nil {
		return run.CreateElement(prefixed(space, "rPr"))
	}
	rpr := template.Copy()
	run.AddChild(rpr)
	return rpr
}

// applySpan forces span-level formatting onto an rPr element.
func applySpan(rpr *etree.Element, span model.Span, sizePt float64, face, space string) {
	if sizePt > 0 {
		rpr.CreateAttr("sz", strconv.Itoa(int(math.Round(sizePt*100))))
	}
	setFlag(rpr, "b", span.Bold)
	setFlag(rpr, "i", span.Italic)
	if span.Underline {
		rpr.CreateAttr("u", "sng")
	} else {
		rpr.RemoveAttr("u")
	}
	if span.Code {
		face = "Courier New"
	}
	if face != "" {
		latin := rpr.SelectElement("latin")
		if latin == nil {
			latin = rpr.CreateElement(prefixed(space, "latin"))
		}
		latin.CreateAttr("typeface", face)
	}
}

func setFlag(rpr *etree.Element, key string, on bool) {
	if on {
		rpr.CreateAttr(key, "1")
	} else {
		rpr.RemoveAttr(key)
	}
}

// runProps reads formatting off an rPr element. A nil rPr yields the
// zero Run.
func runProps(rpr *etree.Element) Run {
	var run Run
	if rpr == nil {
		return run
	}
	run.Bold = onOff(rpr.SelectAttrValue("b", ""))
	run.Italic = onOff(rpr.SelectAttrValue("i", ""))
	if u := rpr.SelectAttrValue("u", ""); u != "" && u != "none" {
		run.Underline = true
	}
	run.SizePt = sizeAttr(rpr)
	if latin := rpr.SelectElement("latin"); latin != nil {
		run.Font = latin.SelectAttrValue("typeface", "")
	}
	return run
}

// paragraphDefaults returns the a:defRPr element under a:pPr, if any.
func paragraphDefaults(p *etree.Element) *etree.Element {
	if ppr := p.SelectElement("pPr"); ppr != nil {
		return ppr.SelectElement("defRPr")
	}
	return nil
}

// sizeAttr reads an sz attribute expressed in hundredths of a point.
func sizeAttr(el *etree.Element) float64 {
	sz := el.SelectAttrValue("sz", "")
	if sz == "" {
		return 0
	}
	n, err := strconv.Atoi(sz)
	if err != nil || n <= 0 {
		return 0
	}
	return float64(n) / 100.0
}

// onOff interprets a DrawingML boolean attribute.
func onOff(v string) bool {
	return v == "1" || v == "true"
}

// shapeExtent locates the a:ext of a shape's transform. Plain shapes
// and pictures keep the transform under spPr; graphic frames carry it
// directly.
func shapeExtent(shape *etree.Element) *etree.Element {
	var xfrm *etree.Element
	if spPr := shape.SelectElement("spPr"); spPr != nil {
		xfrm = spPr.SelectElement("xfrm")
	}
	if xfrm == nil {
		xfrm = shape.SelectElement("xfrm")
	}
	if xfrm == nil {
		return nil
	}
	return xfrm.SelectElement("ext")
}

// groupScale returns the ext/chExt scale factors of one group element.
// Missing or degenerate transforms scale by 1.
func groupScale(group *etree.Element) (sx, sy float64) {
	sx, sy = 1, 1
	grpSpPr := group.SelectElement("grpSpPr")
	if grpSpPr == nil {
		return sx, sy
	}
	xfrm := grpSpPr.SelectElement("xfrm")
	if xfrm == nil {
		return sx, sy
	}
	ext := xfrm.SelectElement("ext")
	chExt := xfrm.SelectElement("chExt")
	if ext == nil || chExt == nil {
		return sx, sy
	}
	cx, _ := strconv.ParseFloat(ext.SelectAttrValue("cx", ""), 64)
	cy, _ := strconv.ParseFloat(ext.SelectAttrValue("cy", ""), 64)
	ccx, _ := strconv.ParseFloat(chExt.SelectAttrValue("cx", ""), 64)
	ccy, _ := strconv.ParseFloat(chExt.SelectAttrValue("cy", ""), 64)
	if cx > 0 && ccx > 0 {
		sx = cx / ccx
	}
	if cy > 0 && ccy > 0 {
		sy = cy / ccy
	}
	return sx, sy
}

// prefixed rejoins a namespace prefix with a local name.
func prefixed(space, tag string) string {
	if space == "" {
		return tag
	}
	return space + ":" + tag
}
