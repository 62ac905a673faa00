package replace

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/slidesmith/autofit"
	"github.com/tsawler/slidesmith/font"
	"github.com/tsawler/slidesmith/layout"
	"github.com/tsawler/slidesmith/model"
	"github.com/tsawler/slidesmith/opc"
	"github.com/tsawler/slidesmith/slidexml"
)

// Options configure one Execute invocation.
type Options struct {
	// Fonts measures replacement text for auto-fit sizing. Nil uses
	// the character-count heuristic throughout.
	Fonts *font.Cache

	// MinSize and MaxSize bound the fitted point size in points. Zero
	// values use the autofit defaults.
	MinSize float64
	MaxSize float64
}

// Execute applies replacement requests to a PPTX package and returns
// the resulting bytes plus a report. The work runs in three phases:
// scan every request across every slide, then mutate the cleared
// requests one parse and one walk per affected slide, then repackage
// with untouched parts byte-identical. A request whose phrase matches
// more than once is blocked unless it sets ReplaceAll; blocked and
// not-found requests mutate nothing. When no replacement lands at all
// the caller's bytes are returned unchanged.
func Execute(pkgBytes []byte, reqs []Request, opts Options) ([]byte, *Report, error) {
	if len(reqs) == 0 {
		return nil, nil, fmt.Errorf("no replacement requests provided")
	}
	results := make([]*result, len(reqs))
	phrases := make([]string, len(reqs))
	for i, req := range reqs {
		if strings.TrimSpace(req.Find) == "" {
			return nil, nil, fmt.Errorf("request %d: empty find phrase", i)
		}
		req.Find = norm.NFC.String(req.Find)
		req.Replace = norm.NFC.String(req.Replace)
		results[i] = &result{req: req}
		phrases[i] = req.Find
	}

	pkg, err := opc.FromBytes(pkgBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("opening package: %w", err)
	}

	// Phase 1: scan everything before touching anything, so blocking
	// decisions never race a mutation.
	s := newScanner(pkg)
	matches, err := s.scan(phrases)
	if err != nil {
		return nil, nil, err
	}
	for i, res := range results {
		res.matches = matches[i]
		switch {
		case len(res.matches) == 0:
			// Not found: reported, nothing to do.
		case len(res.matches) == 1 || res.req.ReplaceAll:
			res.apply = true
		default:
			res.blocked = true
		}
	}

	a := &applier{
		pkg:     pkg,
		scanner: s,
		results: results,
		minSize: opts.MinSize,
		maxSize: opts.MaxSize,
	}
	if opts.Fonts != nil {
		a.fonts = opts.Fonts
		a.metrics = opts.Fonts
	}

	// Phase 2: load fonts first, then mutate.
	a.warmFonts()
	a.applyAll()
	a.sweep()

	report := buildReport(results, append(s.warnings, a.warnings...))

	// Phase 3: repackage. An untouched package round-trips the
	// caller's bytes exactly.
	if !pkg.AnyModified() {
		return pkgBytes, report, nil
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("repackaging: %w", err)
	}
	return out, report, nil
}

// applier owns the mutation pass over the scanner's parsed documents.
type applier struct {
	pkg     *opc.Package
	scanner *scanner
	results []*result

	fonts   *font.Cache
	metrics autofit.Measurer // nil when no cache was supplied
	minSize float64
	maxSize float64

	warnings []model.Warning
}

// applyPhrases returns the find phrases of requests cleared to apply.
func (a *applier) applyPhrases() []string {
	var phrases []string
	for _, res := range a.results {
		if res.apply {
			phrases = append(phrases, res.req.Find)
		}
	}
	return phrases
}

// warmFonts resolves and loads every font family the mutation pass
// will measure, before the first rewrite. Substituted families are
// surfaced as warnings; families that stay unmeasurable fall back to
// estimated widths inside the fitting search.
func (a *applier) warmFonts() {
	if a.fonts == nil {
		return
	}
	phrases := a.applyPhrases()
	if len(phrases) == 0 {
		return
	}

	warned := make(map[string]bool)
	seen := make(map[string]bool)
	var families []string
	for _, name := range a.pkg.SlideParts() {
		doc := a.scanner.docs[name]
		if doc == nil {
			continue
		}
		for _, para := range doc.Paragraphs() {
			if !containsAny(norm.NFC.String(para.Text()), phrases) {
				continue
			}
			face := para.FontFace()
			resolved, substituted := font.Resolve(face)
			if substituted && !warned[face] {
				warned[face] = true
				a.warn(WarnFontSubstituted, a.scanner.slideNum[name],
					fmt.Sprintf("font %q measured as %q", face, resolved))
			}
			if !seen[resolved] {
				seen[resolved] = true
				families = append(families, resolved)
			}
		}
	}
	a.fonts.Warm(families)
}

// applyAll mutates every affected slide document in deck order.
func (a *applier) applyAll() {
	for _, name := range a.pkg.SlideParts() {
		if doc := a.scanner.docs[name]; doc != nil {
			a.applyPart(name, doc)
		}
	}
}

// applyPart rewrites every matching paragraph in one slide document.
// Replacement counts commit only after the document serializes; a part
// that cannot be written back keeps its original bytes and its
// replacements are dropped from the report.
func (a *applier) applyPart(name string, doc *slidexml.Document) {
	num := a.scanner.slideNum[name]
	slideW, slideH := a.pkg.SlideSize()

	type pending struct {
		res   *result
		count int
	}
	var applied []pending

	for _, para := range doc.Paragraphs() {
		text := norm.NFC.String(para.Text())
		res := a.firstEligible(text)
		if res == nil {
			continue
		}

		count := 1
		if res.req.ReplaceAll {
			count = strings.Count(text, res.req.Find)
		}
		spans := renderSpans(text, res.req.Find, res.req.Replace, count)

		w, h, ok := para.BoxInches()
		if !ok {
			w, h = slideW, slideH
		}
		face := para.FontFace()
		resolved, _ := font.Resolve(face)
		size := autofit.Fit(spanText(spans), w, h, autofit.Options{
			FontFace: resolved,
			Bold:     para.Bold(),
			MinSize:  a.minSize,
			MaxSize:  a.maxSize,
			Metrics:  a.metrics,
		})

		para.Rewrite(spans, size, face)
		applied = append(applied, pending{res: res, count: count})
		if !res.req.ReplaceAll {
			res.done = true
		}
	}

	if len(applied) == 0 {
		return
	}
	data, err := doc.Serialize()
	if err != nil {
		a.warn(WarnSlideSkipped, num, fmt.Sprintf("slide %d: %v", num, err))
		return
	}
	a.pkg.SetPart(name, data)
	for _, p := range applied {
		p.res.performed += p.count
		p.res.slides = appendUnique(p.res.slides, num)
	}
}

// firstEligible returns the first request, in request order, whose
// phrase occurs in the paragraph text and which may still replace. A
// paragraph takes at most one replacement: later requests that also
// match are shadowed for this paragraph and recorded as such.
func (a *applier) firstEligible(text string) *result {
	var winner *result
	for _, res := range a.results {
		if !res.apply || res.done {
			continue
		}
		if !strings.Contains(text, res.req.Find) {
			continue
		}
		if winner == nil {
			winner = res
		} else {
			res.shadowed = true
		}
	}
	return winner
}

// sweep resolves requests that were cleared to apply but never landed.
func (a *applier) sweep() {
	for _, res := range a.results {
		if !res.apply || res.performed > 0 {
			continue
		}
		if res.shadowed {
			a.warn(WarnMatchShadowed, 0,
				fmt.Sprintf("phrase %q lost to an earlier request in the same paragraph; not applied", res.req.Find))
		} else {
			res.failed = true
		}
	}
}

func (a *applier) warn(code string, slide int, message string) {
	a.warnings = append(a.warnings, model.Warning{Code: code, Slide: slide, Message: message})
}

// renderSpans builds a matched paragraph's new span list: the text
// around each replaced occurrence is carried over literally, while the
// replacement itself is parsed for inline formatting. count caps how
// many occurrences are consumed.
func renderSpans(text, find, replace string, count int) []model.Span {
	parsed := layout.ParseInline(replace)

	var spans []model.Span
	rest := text
	for i := 0; i < count; i++ {
		idx := strings.Index(rest, find)
		if idx < 0 {
			break
		}
		if idx > 0 {
			spans = append(spans, model.Span{Text: rest[:idx]})
		}
		spans = append(spans, parsed...)
		rest = rest[idx+len(find):]
	}
	if rest != "" {
		spans = append(spans, model.Span{Text: rest})
	}
	return spans
}

// spanText concatenates rendered span text, the string the fit search
// measures.
func spanText(spans []model.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func appendUnique(list []int, n int) []int {
	for _, v := range list {
		if v == n {
			return list
		}
	}
	return append(list, n)
}
