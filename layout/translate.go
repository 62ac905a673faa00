package layout

import (
	"math"
	"strings"

	"github.com/tsawler/slidesmith/font"
	"github.com/tsawler/slidesmith/model"
)

// Font size ladder in points. The first level-1 heading on a page is
// the slide title; lower heading levels step down; everything else
// renders at body size.
const (
	TitleFontSize = 32.0
	H1FontSize    = 28.0
	H2FontSize    = 24.0
	H3FontSize    = 20.0
	BodyFontSize  = 14.0

	// LineHeight is the multiplier applied to font size for one line.
	LineHeight = 1.5
)

const (
	// listIndentPt is the horizontal indent per list nesting level.
	listIndentPt = 20.0

	// quoteIndentIn shifts block quotes in from the left margin.
	quoteIndentIn = 0.25

	// tableRowPt is the allotted height of one table row.
	tableRowPt = 30.0

	// blockGapPt separates code blocks and tables from the next block.
	blockGapPt = 10.0
)

// Config holds the page geometry and estimation faces for translation.
type Config struct {
	// PageWidth and PageHeight are the slide dimensions in inches.
	PageWidth  float64
	PageHeight float64

	// Margin is applied on all four sides, in inches.
	Margin float64

	// BodyFont is the face used for width estimation of regular text.
	BodyFont string

	// MonoFont is the face used for width estimation of code blocks.
	MonoFont string
}

// DefaultConfig returns the standard 4:3 page setup.
func DefaultConfig() Config {
	return Config{
		PageWidth:  model.DefaultSlideWidthIn,
		PageHeight: model.DefaultSlideHeightIn,
		Margin:     0.5,
		BodyFont:   "Calibri",
		MonoFont:   "Courier New",
	}
}

// WidescreenConfig returns the 16:9 page setup.
func WidescreenConfig() Config {
	c := DefaultConfig()
	c.PageWidth = 13.333
	return c
}

// Translator converts parsed blocks into positioned elements.
type Translator struct {
	config Config
}

// NewTranslator creates a translator with the default page setup.
func NewTranslator() *Translator {
	return &Translator{config: DefaultConfig()}
}

// NewTranslatorWithConfig creates a translator with custom geometry.
func NewTranslatorWithConfig(config Config) *Translator {
	return &Translator{config: config}
}

// TranslateBlocks lays blocks out with the given configuration.
func TranslateBlocks(blocks []Block, config Config) []model.Element {
	return NewTranslatorWithConfig(config).Translate(blocks)
}

// Paginate splits blocks across slides with the given configuration.
func Paginate(blocks []Block, config Config) [][]model.Element {
	return NewTranslatorWithConfig(config).Paginate(blocks)
}

// Translate lays blocks out top to bottom on a single canvas.
// Horizontal rules place nothing; use Paginate to honor them as slide
// breaks.
func (t *Translator) Translate(blocks []Block) []model.Element {
	f := t.newFlow()
	var elements []model.Element
	for _, b := range blocks {
		if el, ok := f.place(b); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

// Paginate translates blocks into one element list per slide. A new
// slide starts when an element would cross the bottom margin or at an
// explicit horizontal rule. An element taller than a whole page is
// placed alone and left to Validate to report.
func (t *Translator) Paginate(blocks []Block) [][]model.Element {
	f := t.newFlow()
	var pages [][]model.Element
	var page []model.Element
	for _, b := range blocks {
		if b.Kind == BlockRule {
			if len(page) > 0 {
				pages = append(pages, page)
				page = nil
			}
			f.reset()
			continue
		}
		el, ok := f.place(b)
		if !ok {
			continue
		}
		if el.Position.Bottom() > f.bottom() && len(page) > 0 {
			pages = append(pages, page)
			page = nil
			f.reset()
			el, _ = f.place(b)
		}
		page = append(page, el)
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

// flow tracks the vertical cursor while elements are placed on a page.
type flow struct {
	config    Config
	y         float64 // inches from the top edge
	titleSeen bool
}

func (t *Translator) newFlow() *flow {
	return &flow{config: t.config, y: t.config.Margin}
}

func (f *flow) reset() {
	f.y = f.config.Margin
	f.titleSeen = false
}

func (f *flow) contentWidth() float64 {
	return f.config.PageWidth - 2*f.config.Margin
}

func (f *flow) bottom() float64 {
	return f.config.PageHeight - f.config.Margin
}

// place computes the element for a block at the current cursor and
// advances past it. Rules place nothing.
func (f *flow) place(b Block) (model.Element, bool) {
	switch b.Kind {
	case BlockHeading:
		return f.placeHeading(b), true
	case BlockParagraph, BlockQuote:
		return f.placeText(b), true
	case BlockCode:
		return f.placeCode(b), true
	case BlockBullets, BlockNumbered:
		return f.placeList(b), true
	case BlockTable:
		return f.placeTable(b), true
	}
	return model.Element{}, false
}

func (f *flow) placeHeading(b Block) model.Element {
	size := f.headingSize(b.Level)
	lines := wrappedLines(b.Text, size, f.config.BodyFont, true, f.contentWidth())
	height := linesHeightIn(lines, size)
	el := model.Element{
		Type:     model.ElementText,
		Content:  b.Text,
		Position: model.NewBox(f.config.Margin, f.y, f.contentWidth(), height),
		Style:    model.Style{Size: size, Bold: true},
	}
	advance := height * 1.2
	if size == TitleFontSize {
		advance = height * 1.5
	}
	f.y += advance
	return el
}

// headingSize maps a heading level onto the size ladder.
func (f *flow) headingSize(level int) float64 {
	if level <= 1 {
		if !f.titleSeen {
			f.titleSeen = true
			return TitleFontSize
		}
		return H1FontSize
	}
	if level == 2 {
		return H2FontSize
	}
	return H3FontSize
}

func (f *flow) placeText(b Block) model.Element {
	x := f.config.Margin
	width := f.contentWidth()
	style := model.Style{Size: BodyFontSize}
	if b.Kind == BlockQuote {
		x += quoteIndentIn
		width -= quoteIndentIn
		style.Italic = true
	}
	lines := 0
	for _, line := range strings.Split(b.Text, "\n") {
		lines += wrappedLines(line, BodyFontSize, f.config.BodyFont, false, width)
	}
	height := linesHeightIn(lines, BodyFontSize)
	el := model.Element{
		Type:     model.ElementText,
		Content:  b.Text,
		Position: model.NewBox(x, f.y, width, height),
		Style:    style,
	}
	f.y += height
	return el
}

func (f *flow) placeCode(b Block) model.Element {
	width := f.contentWidth()
	lines := 0
	for _, line := range strings.Split(b.Text, "\n") {
		lines += wrappedLines(line, BodyFontSize, f.config.MonoFont, false, width)
	}
	height := linesHeightIn(lines, BodyFontSize)
	el := model.Element{
		Type:     model.ElementText,
		Content:  b.Text,
		Position: model.NewBox(f.config.Margin, f.y, width, height),
		Style:    model.Style{Size: BodyFontSize, Mono: true},
	}
	f.y += height + model.PointsToInches(blockGapPt)
	return el
}

func (f *flow) placeList(b Block) model.Element {
	width := f.contentWidth()
	lines := 0
	for i, item := range b.Items {
		indent := 0.0
		if i < len(b.Levels) {
			indent = model.PointsToInches(float64(b.Levels[i]) * listIndentPt)
		}
		lines += wrappedLines(item, BodyFontSize, f.config.BodyFont, false, width-indent)
	}
	height := linesHeightIn(lines, BodyFontSize)
	el := model.Element{
		Type:     model.ElementBullets,
		Items:    b.Items,
		Levels:   b.Levels,
		Position: model.NewBox(f.config.Margin, f.y, width, height),
		Style:    model.Style{Size: BodyFontSize, Numbered: b.Kind == BlockNumbered},
	}
	f.y += height
	return el
}

func (f *flow) placeTable(b Block) model.Element {
	height := model.PointsToInches(float64(len(b.Rows)) * tableRowPt)
	el := model.Element{
		Type:     model.ElementTable,
		Rows:     b.Rows,
		Position: model.NewBox(f.config.Margin, f.y, f.contentWidth(), height),
		Style:    model.Style{Size: BodyFontSize},
	}
	f.y += height + model.PointsToInches(blockGapPt)
	return el
}

// linesHeightIn converts a wrapped line count at a font size to inches.
func linesHeightIn(lines int, sizePt float64) float64 {
	return model.PointsToInches(float64(lines) * sizePt * LineHeight)
}

// wrappedLines estimates how many lines text occupies at a size within a
// width. Estimation uses the character width tables, matching the
// auto-fit engine's line model.
func wrappedLines(text string, sizePt float64, face string, bold bool, widthIn float64) int {
	widthPt := model.InchesToPoints(widthIn)
	if widthPt <= 0 || text == "" {
		return 1
	}
	est := font.EstimateStringWidth(text, sizePt, face, bold)
	if est <= widthPt {
		return 1
	}
	return int(math.Ceil(est / widthPt))
}
