package replace

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/slidesmith/model"
	"github.com/tsawler/slidesmith/opc"
	"github.com/tsawler/slidesmith/slidexml"
)

// maxSampleLocations caps the match locations quoted in a blocked
// detail.
const maxSampleLocations = 5

// snippetContext is the number of bytes of surrounding text kept on
// each side of a match snippet.
const snippetContext = 20

// tagPattern strips XML tags for the raw-text pre-filter.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Scan locates every occurrence of one phrase across the package's
// slides without modifying anything. Matching runs over each
// paragraph's concatenated run text, so a phrase split across runs is
// still found. Slides whose XML cannot be parsed are skipped with a
// warning; Scan fails only when every slide part is unparseable.
func Scan(pkg *opc.Package, phrase string) ([]Match, []model.Warning, error) {
	if phrase == "" {
		return nil, nil, fmt.Errorf("empty find phrase")
	}
	s := newScanner(pkg)
	matches, err := s.scan([]string{norm.NFC.String(phrase)})
	if err != nil {
		return nil, s.warnings, err
	}
	return matches[0], s.warnings, nil
}

// scanner walks slide parts once and records matches for a set of
// phrases. Parsed documents are kept so the apply phase does not parse
// a part twice.
type scanner struct {
	pkg      *opc.Package
	docs     map[string]*slidexml.Document
	slideNum map[string]int // part name -> 1-based deck position
	warnings []model.Warning
}

func newScanner(pkg *opc.Package) *scanner {
	return &scanner{
		pkg:      pkg,
		docs:     make(map[string]*slidexml.Document),
		slideNum: make(map[string]int),
	}
}

// scan returns one match list per phrase, in phrase order. Phrases must
// already be NFC-normalized.
func (s *scanner) scan(phrases []string) ([][]Match, error) {
	matches := make([][]Match, len(phrases))
	parts := s.pkg.SlideParts()

	failed := 0
	for i, name := range parts {
		num := i + 1
		s.slideNum[name] = num

		raw, err := s.pkg.Part(name)
		if err != nil {
			continue
		}

		// Cheap containment check on tag-stripped text before paying
		// for a parse. It can pass parts the paragraph walk then
		// rejects, never the reverse.
		stripped := norm.NFC.String(html.UnescapeString(tagPattern.ReplaceAllString(string(raw), "")))
		if !containsAny(stripped, phrases) {
			continue
		}

		doc, err := slidexml.Parse(name, raw)
		if err != nil {
			failed++
			s.warn(WarnSlideSkipped, num, fmt.Sprintf("slide %d: %v", num, err))
			continue
		}
		s.docs[name] = doc

		for _, para := range doc.Paragraphs() {
			text := norm.NFC.String(para.Text())
			for pi, phrase := range phrases {
				matches[pi] = append(matches[pi], paragraphMatches(text, phrase, num, para.Index())...)
			}
		}
	}

	if failed > 0 && failed == len(parts) {
		return nil, fmt.Errorf("no slide part could be parsed")
	}
	return matches, nil
}

func (s *scanner) warn(code string, slide int, message string) {
	s.warnings = append(s.warnings, model.Warning{Code: code, Slide: slide, Message: message})
}

// paragraphMatches records each occurrence of phrase within one
// paragraph's concatenated text.
func paragraphMatches(text, phrase string, slide, para int) []Match {
	var out []Match
	for start := 0; ; {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return out
		}
		at := start + i
		out = append(out, Match{
			Slide:     slide,
			Paragraph: para,
			Snippet:   snippet(text, at, len(phrase)),
			Location:  fmt.Sprintf("slide %d, paragraph %d", slide, para+1),
		})
		start = at + len(phrase)
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// snippet quotes a match with up to snippetContext bytes of context on
// each side, trimmed to rune boundaries.
func snippet(text string, at, n int) string {
	start := at - snippetContext
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	end := at + n + snippetContext
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	out := text[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
