package replace

// Request asks for one phrase to be replaced throughout a package. The
// replacement text may carry inline markdown (bold, italic, code spans)
// and the HTML tags <u>, <b>, <i>, <code>, <br>; formatting becomes
// separate runs when the matched paragraph is rewritten.
type Request struct {
	// Find is the phrase to search for. Matching is exact after NFC
	// normalization and may span run boundaries within a paragraph.
	Find string `json:"find"`

	// Replace is the text written in place of Find. Empty deletes the
	// matched phrase.
	Replace string `json:"replace"`

	// ReplaceAll permits replacement when Find matches more than once.
	// Without it a multi-match request is blocked.
	ReplaceAll bool `json:"replace_all,omitempty"`
}

// Match locates one occurrence of a find phrase.
type Match struct {
	// Slide is the 1-based slide position in deck order.
	Slide int `json:"slide"`

	// Paragraph is the paragraph's index in the slide's walk order.
	Paragraph int `json:"paragraph"`

	// Snippet is the matched text with surrounding context.
	Snippet string `json:"snippet"`

	// Location is a human-readable place label, "slide 2, paragraph 3".
	Location string `json:"location"`
}

// Per-request status values reported in Detail.Status.
const (
	StatusReplaced = "replaced"
	StatusNotFound = "not_found"
	StatusBlocked  = "blocked"
)

// Warning codes recorded while scanning and applying.
const (
	// WarnSlideSkipped marks a slide whose XML could not be parsed or
	// written back; the slide keeps its original bytes.
	WarnSlideSkipped = "slide_skipped"

	// WarnFontSubstituted marks a font family measured with a bundled
	// substitute because no outline for the named family is available.
	WarnFontSubstituted = "font_substituted"

	// WarnMatchShadowed marks a request whose only matches sat in
	// paragraphs already rewritten by an earlier request.
	WarnMatchShadowed = "match_shadowed"
)
