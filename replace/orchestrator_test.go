package replace

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/slidesmith/font"
)

func TestExecuteReplacesPlaceholder(t *testing.T) {
	deck := buildDeck(t, slideWithRuns("Hello {{NA", "ME}}"))

	out, report, err := Execute(deck, []Request{{Find: "{{NAME}}", Replace: "World"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got := slideText(t, out, 1); got != "Hello World" {
		t.Errorf("slide text = %q, want %q", got, "Hello World")
	}
	if !report.Success || report.Status != OutcomeAllSuccessful {
		t.Errorf("success = %v, status = %q", report.Success, report.Status)
	}
	if report.TotalReplacements != 1 {
		t.Errorf("total replacements = %d, want 1", report.TotalReplacements)
	}
	if len(report.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(report.Details))
	}
	d := report.Details[0]
	if d.Status != StatusReplaced || d.Occurrences != 1 {
		t.Errorf("detail = %+v", d)
	}
	if len(d.Slides) != 1 || d.Slides[0] != 1 {
		t.Errorf("slides = %v, want [1]", d.Slides)
	}
	if report.Message != "applied 1 replacement across 1 slide" {
		t.Errorf("message = %q", report.Message)
	}

	// Short text in a shape with no extent sizes against the slide box
	// and hits the maximum.
	runs := slideRuns(t, out, 1, 0)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text != "Hello " || runs[1].Text != "World" {
		t.Errorf("run text = %q, %q", runs[0].Text, runs[1].Text)
	}
	if runs[0].SizePt != 44 {
		t.Errorf("fitted size = %v, want 44", runs[0].SizePt)
	}
}

func TestExecuteBlocksAmbiguousMatches(t *testing.T) {
	deck := buildDeck(t,
		slideWithParagraphs("Project alpha"),
		slideWithParagraphs("Project beta", "Project gamma"),
		slideWithParagraphs("Project delta and Project epsilon"),
	)

	out, report, err := Execute(deck, []Request{{Find: "Project", Replace: "Initiative"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !bytes.Equal(out, deck) {
		t.Error("blocked invocation must return the input bytes unchanged")
	}
	if report.Success || report.Status != OutcomeAllBlocked {
		t.Errorf("success = %v, status = %q", report.Success, report.Status)
	}
	if report.TotalReplacements != 0 || report.BlockedCount != 1 {
		t.Errorf("total = %d, blocked = %d", report.TotalReplacements, report.BlockedCount)
	}
	if len(report.Blocked) != 1 {
		t.Fatalf("expected 1 blocked detail, got %d", len(report.Blocked))
	}
	b := report.Blocked[0]
	if b.MatchCount != 5 || len(b.Samples) != 5 {
		t.Errorf("match count = %d, samples = %d, want 5 and 5", b.MatchCount, len(b.Samples))
	}
	if b.Hint == "" {
		t.Error("blocked detail must carry a remediation hint")
	}
	if b.Samples[0].Location != "slide 1, paragraph 1" {
		t.Errorf("first sample location = %q", b.Samples[0].Location)
	}
	if report.Details[0].Status != StatusBlocked || report.Details[0].Occurrences != 5 {
		t.Errorf("detail = %+v", report.Details[0])
	}
}

func TestExecuteReplaceAll(t *testing.T) {
	deck := buildDeck(t,
		slideWithParagraphs("Project alpha"),
		slideWithParagraphs("Project beta", "Project gamma"),
		slideWithParagraphs("Project delta and Project epsilon"),
	)

	out, report, err := Execute(deck, []Request{{Find: "Project", Replace: "Initiative", ReplaceAll: true}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !report.Success || report.Status != OutcomeAllSuccessful {
		t.Errorf("success = %v, status = %q", report.Success, report.Status)
	}
	if report.TotalReplacements != 5 {
		t.Errorf("total replacements = %d, want 5", report.TotalReplacements)
	}
	d := report.Details[0]
	if d.Occurrences != 5 {
		t.Errorf("occurrences = %d, want 5", d.Occurrences)
	}
	if len(d.Slides) != 3 || d.Slides[0] != 1 || d.Slides[2] != 3 {
		t.Errorf("slides = %v, want [1 2 3]", d.Slides)
	}
	if got := slideText(t, out, 2); got != "Initiative beta\nInitiative gamma" {
		t.Errorf("slide 2 text = %q", got)
	}
	if got := slideText(t, out, 3); got != "Initiative delta and Initiative epsilon" {
		t.Errorf("slide 3 text = %q", got)
	}
}

func TestExecutePhraseNotFound(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("Quarterly results"))

	out, report, err := Execute(deck, []Request{{Find: "missing phrase", Replace: "x"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !bytes.Equal(out, deck) {
		t.Error("a no-op invocation must return the input bytes unchanged")
	}
	if !report.Success || report.Status != OutcomeAllSuccessful {
		t.Errorf("success = %v, status = %q", report.Success, report.Status)
	}
	if report.ReplacementsNotFound != 1 || report.ReplacementsFound != 0 {
		t.Errorf("found = %d, not found = %d", report.ReplacementsFound, report.ReplacementsNotFound)
	}
	if report.Details[0].Status != StatusNotFound {
		t.Errorf("detail status = %q", report.Details[0].Status)
	}
	if !strings.Contains(report.Warning, `"missing phrase"`) {
		t.Errorf("warning = %q", report.Warning)
	}
	if report.Message != "no requested phrases were found; package unchanged" {
		t.Errorf("message = %q", report.Message)
	}
}

func TestExecuteMixedOutcomes(t *testing.T) {
	deck := buildDeck(t,
		slideWithParagraphs("alpha one", "shared term here"),
		slideWithParagraphs("shared term again"),
	)
	reqs := []Request{
		{Find: "alpha", Replace: "ALPHA"},
		{Find: "missing", Replace: "x"},
		{Find: "shared term", Replace: "S"},
	}

	out, report, err := Execute(deck, reqs, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !report.Success || report.Status != OutcomePartialSuccess {
		t.Errorf("success = %v, status = %q", report.Success, report.Status)
	}
	if report.TotalReplacements != 1 || report.BlockedCount != 1 {
		t.Errorf("total = %d, blocked = %d", report.TotalReplacements, report.BlockedCount)
	}
	if report.ReplacementsFound != 2 || report.ReplacementsNotFound != 1 {
		t.Errorf("found = %d, not found = %d", report.ReplacementsFound, report.ReplacementsNotFound)
	}
	wantStatus := []string{StatusReplaced, StatusNotFound, StatusBlocked}
	for i, want := range wantStatus {
		if report.Details[i].Status != want {
			t.Errorf("detail %d status = %q, want %q", i, report.Details[i].Status, want)
		}
	}
	if !strings.Contains(report.Warning, "not found:") || !strings.Contains(report.Warning, "blocked:") {
		t.Errorf("warning = %q", report.Warning)
	}
	if report.Message != "applied 1 replacement; 1 request blocked" {
		t.Errorf("message = %q", report.Message)
	}
	if got := slideText(t, out, 1); got != "ALPHA one\nshared term here" {
		t.Errorf("slide 1 text = %q", got)
	}
}

func TestExecuteBlockedSampleCap(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs(
		"Project a", "Project b", "Project c", "Project d",
		"Project e", "Project f", "Project g",
	))

	_, report, err := Execute(deck, []Request{{Find: "Project", Replace: "P"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(report.Blocked) != 1 {
		t.Fatalf("expected 1 blocked detail, got %d", len(report.Blocked))
	}
	b := report.Blocked[0]
	if b.MatchCount != 7 {
		t.Errorf("match count = %d, want 7", b.MatchCount)
	}
	if len(b.Samples) != 5 {
		t.Errorf("samples = %d, want 5", len(b.Samples))
	}
}

func TestExecuteLeavesBlockedPhraseIntact(t *testing.T) {
	deck := buildDeck(t,
		slideWithParagraphs("alpha target", "beta"),
		slideWithParagraphs("gamma target"),
	)
	reqs := []Request{
		{Find: "beta", Replace: "BETA"},
		{Find: "target", Replace: "X"},
	}

	out, report, err := Execute(deck, reqs, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if report.Details[1].Status != StatusBlocked {
		t.Fatalf("detail 1 status = %q", report.Details[1].Status)
	}
	if got := slideText(t, out, 1); got != "alpha target\nBETA" {
		t.Errorf("slide 1 text = %q", got)
	}
	if got := slideText(t, out, 2); got != "gamma target" {
		t.Errorf("slide 2 text = %q", got)
	}
}

func TestExecutePreservesUntouchedParts(t *testing.T) {
	slide2 := slideWithParagraphs("untouched content")
	deck := buildDeck(t, slideWithParagraphs("change me"), slide2)

	out, _, err := Execute(deck, []Request{{Find: "change me", Replace: "changed"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	pkg := openDeck(t, out)
	raw, err := pkg.Part("ppt/slides/slide2.xml")
	if err != nil {
		t.Fatalf("reading slide 2: %v", err)
	}
	if string(raw) != slide2 {
		t.Error("untouched slide part was rewritten")
	}
	pres, err := pkg.Part("ppt/presentation.xml")
	if err != nil {
		t.Fatalf("reading presentation part: %v", err)
	}
	if string(pres) != fixturePresentation {
		t.Error("presentation part was rewritten")
	}
}

func TestExecuteSkipsMalformedSlide(t *testing.T) {
	deck := buildDeck(t,
		"Project plan <broken",
		slideWithParagraphs("Project plan"),
	)

	out, report, err := Execute(deck, []Request{{Find: "Project plan", Replace: "Roadmap"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got := slideText(t, out, 2); got != "Roadmap" {
		t.Errorf("slide 2 text = %q", got)
	}
	if !report.Success || report.TotalReplacements != 1 {
		t.Errorf("success = %v, total = %d", report.Success, report.TotalReplacements)
	}
	found := false
	for _, w := range report.Warnings {
		if w.Code == WarnSlideSkipped && w.Slide == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s warning for slide 1, got %v", WarnSlideSkipped, report.Warnings)
	}
}

func TestExecuteFormattedReplacement(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("Status: pending"))

	out, _, err := Execute(deck, []Request{{Find: "pending", Replace: "**Urgent** update"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got := slideText(t, out, 1); got != "Status: Urgent update" {
		t.Errorf("slide text = %q", got)
	}
	runs := slideRuns(t, out, 1, 0)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Bold || !runs[1].Bold || runs[2].Bold {
		t.Errorf("bold runs = %v %v %v, want only the middle", runs[0].Bold, runs[1].Bold, runs[2].Bold)
	}
	if runs[1].Text != "Urgent" {
		t.Errorf("bold run text = %q", runs[1].Text)
	}
}

func TestExecuteKeepsLiteralText(t *testing.T) {
	// Asterisks in the surviving paragraph text must not be
	// reinterpreted as markdown emphasis.
	deck := buildDeck(t, slideWithParagraphs("3*4*5 equals sixty"))

	out, _, err := Execute(deck, []Request{{Find: "sixty", Replace: "60"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got := slideText(t, out, 1); got != "3*4*5 equals 60" {
		t.Errorf("slide text = %q", got)
	}
	for i, r := range slideRuns(t, out, 1, 0) {
		if r.Italic || r.Bold {
			t.Errorf("run %d %q picked up styling", i, r.Text)
		}
	}
}

func TestExecuteKeepsFontFamily(t *testing.T) {
	deck := buildDeck(t, slideWithStyledRun("Total: 99", "Calibri", 2400))

	out, report, err := Execute(deck, []Request{{Find: "99", Replace: "100"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	runs := slideRuns(t, out, 1, 0)
	for i, r := range runs {
		if r.Font != "Calibri" {
			t.Errorf("run %d font = %q, want Calibri", i, r.Font)
		}
	}
	// Without a font cache nothing is measured, so no substitution is
	// reported.
	for _, w := range report.Warnings {
		if w.Code == WarnFontSubstituted {
			t.Errorf("unexpected substitution warning: %+v", w)
		}
	}
}

func TestExecuteFontSubstitutionWarning(t *testing.T) {
	deck := buildDeck(t, slideWithStyledRun("Total: 99", "Calibri", 2400))

	_, report, err := Execute(deck, []Request{{Find: "99", Replace: "100"}}, Options{
		Fonts: font.NewCache(),
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	found := false
	for _, w := range report.Warnings {
		if w.Code == WarnFontSubstituted && strings.Contains(w.Message, "Calibri") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s warning, got %v", WarnFontSubstituted, report.Warnings)
	}
}

func TestExecuteFirstRequestWins(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("Hello World"))
	reqs := []Request{
		{Find: "Hello World", Replace: "Greetings"},
		{Find: "World", Replace: "Planet"},
	}

	out, report, err := Execute(deck, reqs, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got := slideText(t, out, 1); got != "Greetings" {
		t.Errorf("slide text = %q", got)
	}
	if report.Details[0].Status != StatusReplaced {
		t.Errorf("detail 0 status = %q", report.Details[0].Status)
	}
	if report.Details[1].Status != StatusNotFound {
		t.Errorf("detail 1 status = %q", report.Details[1].Status)
	}
	if !report.Success {
		t.Error("a shadowed request must not fail the invocation")
	}
	found := false
	for _, w := range report.Warnings {
		if w.Code == WarnMatchShadowed {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s warning, got %v", WarnMatchShadowed, report.Warnings)
	}
}

func TestExecuteReplaceAllWithinParagraph(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("aaa bbb aaa"))

	out, report, err := Execute(deck, []Request{{Find: "aaa", Replace: "ccc", ReplaceAll: true}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := slideText(t, out, 1); got != "ccc bbb ccc" {
		t.Errorf("slide text = %q", got)
	}
	if report.TotalReplacements != 2 {
		t.Errorf("total replacements = %d, want 2", report.TotalReplacements)
	}
}

func TestExecuteDeletesPhrase(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("remove this word now"))

	out, _, err := Execute(deck, []Request{{Find: " this word", Replace: ""}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := slideText(t, out, 1); got != "remove now" {
		t.Errorf("slide text = %q", got)
	}
}

func TestExecutePinnedSizeRange(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("resize me"))

	out, _, err := Execute(deck, []Request{{Find: "resize me", Replace: "done"}}, Options{
		MinSize: 12,
		MaxSize: 12,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	runs := slideRuns(t, out, 1, 0)
	if runs[0].SizePt != 12 {
		t.Errorf("fitted size = %v, want 12", runs[0].SizePt)
	}
}

func TestExecuteFitsShapeBox(t *testing.T) {
	// 8x2 inch shape: a two-letter replacement sizes against the short
	// box edge instead of the slide.
	deck := buildDeck(t, slideWithBox("Say Hi", 7315200, 1828800))

	out, _, err := Execute(deck, []Request{{Find: "Say Hi", Replace: "Hi"}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	runs := slideRuns(t, out, 1, 0)
	if math.Abs(runs[0].SizePt-40.32) > 0.01 {
		t.Errorf("fitted size = %v, want 40.32", runs[0].SizePt)
	}
}

func TestExecuteShrinksLongText(t *testing.T) {
	// 2x0.8 inch shape: 140 characters cannot fit at readable sizes
	// and clamp to the minimum.
	deck := buildDeck(t, slideWithBox("placeholder", 1828800, 731520))

	out, _, err := Execute(deck, []Request{{Find: "placeholder", Replace: strings.Repeat("x", 140)}}, Options{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	runs := slideRuns(t, out, 1, 0)
	if runs[0].SizePt != 10 {
		t.Errorf("fitted size = %v, want 10", runs[0].SizePt)
	}
}

func TestExecuteInputErrors(t *testing.T) {
	deck := buildDeck(t, slideWithParagraphs("text"))

	tests := []struct {
		name string
		pkg  []byte
		reqs []Request
	}{
		{"no requests", deck, nil},
		{"blank find", deck, []Request{{Find: "   ", Replace: "x"}}},
		{"not a package", []byte("not a zip archive"), []Request{{Find: "a", Replace: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Execute(tt.pkg, tt.reqs, Options{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildReportOutcomes(t *testing.T) {
	replaced := func() *result {
		return &result{req: Request{Find: "a"}, apply: true, matches: []Match{{Slide: 1}}, performed: 1, slides: []int{1}}
	}
	blocked := func() *result {
		return &result{req: Request{Find: "b"}, blocked: true, matches: []Match{{Slide: 1}, {Slide: 2}}}
	}
	failed := func() *result {
		return &result{req: Request{Find: "c"}, apply: true, matches: []Match{{Slide: 1}}, failed: true}
	}
	missing := func() *result {
		return &result{req: Request{Find: "d"}}
	}

	tests := []struct {
		name        string
		results     []*result
		wantStatus  string
		wantSuccess bool
	}{
		{"all replaced", []*result{replaced(), replaced()}, OutcomeAllSuccessful, true},
		{"none found", []*result{missing()}, OutcomeAllSuccessful, true},
		{"all blocked", []*result{blocked(), blocked()}, OutcomeAllBlocked, false},
		{"replaced and blocked", []*result{replaced(), blocked()}, OutcomePartialSuccess, true},
		{"replaced and failed", []*result{replaced(), failed()}, OutcomePartialSuccess, false},
		{"only failures", []*result{failed(), missing()}, OutcomeAllFailed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildReport(tt.results, nil)
			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", r.Success, tt.wantSuccess)
			}
		})
	}
}

func TestReportJSON(t *testing.T) {
	results := []*result{
		{req: Request{Find: "x", Replace: "y"}, blocked: true, matches: []Match{{Slide: 1, Location: "slide 1, paragraph 1"}}},
	}
	data, err := json.Marshal(buildReport(results, nil))
	if err != nil {
		t.Fatalf("marshaling report: %v", err)
	}
	for _, key := range []string{`"success"`, `"status"`, `"total_replacements"`, `"blocked_count"`, `"match_count"`, `"hint"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("report JSON missing %s: %s", key, data)
		}
	}
	if bytes.Contains(data, []byte(`"Warnings"`)) {
		t.Error("structured warnings must not serialize with the report")
	}
}

func BenchmarkExecute(b *testing.B) {
	slides := make([]string, 20)
	for i := range slides {
		slides[i] = slideWithParagraphs("Quarterly Project review", "Budget and headcount", "Project milestones")
	}
	deck := buildDeck(b, slides...)
	reqs := []Request{{Find: "Project", Replace: "Initiative", ReplaceAll: true}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Execute(deck, reqs, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
