package replace

import (
	"fmt"
	"strings"

	"github.com/tsawler/slidesmith/model"
)

// Overall outcome values for Report.Status.
const (
	OutcomeAllSuccessful  = "all_successful"
	OutcomePartialSuccess = "partial_success"
	OutcomeAllFailed      = "all_failed"
	OutcomeAllBlocked     = "all_blocked"
)

// blockedHint tells the caller how to unblock an ambiguous request.
const blockedHint = "narrow the find phrase or set replace_all to update every occurrence"

// Detail reports the outcome of a single request.
type Detail struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`

	// Status is replaced, not_found, or blocked.
	Status string `json:"status"`

	// Occurrences counts replacements performed, or matches found for
	// a blocked request.
	Occurrences int `json:"occurrences"`

	// Slides lists the 1-based slides where replacements landed.
	Slides []int `json:"slides,omitempty"`
}

// BlockedDetail explains why a request was not applied.
type BlockedDetail struct {
	Find       string  `json:"find"`
	MatchCount int     `json:"match_count"`
	Samples    []Match `json:"samples"`
	Hint       string  `json:"hint"`
}

// Report summarizes one Execute invocation. The JSON field names are
// the wire format callers consume.
type Report struct {
	Success               bool            `json:"success"`
	Status                string          `json:"status"`
	TotalReplacements     int             `json:"total_replacements"`
	ReplacementsRequested int             `json:"replacements_requested"`
	ReplacementsFound     int             `json:"replacements_found"`
	ReplacementsNotFound  int             `json:"replacements_not_found"`
	BlockedCount          int             `json:"blocked_count"`
	Blocked               []BlockedDetail `json:"blocked,omitempty"`
	Details               []Detail        `json:"details"`
	Warning               string          `json:"warning,omitempty"`
	Message               string          `json:"message"`

	// Warnings holds structured processing notes (skipped slides, font
	// substitutions, shadowed matches). They are not part of the
	// serialized report; the facade surfaces them separately.
	Warnings []model.Warning `json:"-"`
}

// result tracks one request from scan through application.
type result struct {
	req      Request
	matches  []Match
	apply    bool // cleared to mutate after the scan
	blocked  bool
	done     bool // single-permitted replacement already made
	shadowed bool // lost a paragraph to an earlier request
	failed   bool // cleared to apply but nothing landed

	performed int
	slides    []int
}

// buildReport aggregates per-request results into the response report.
func buildReport(results []*result, warnings []model.Warning) *Report {
	r := &Report{
		ReplacementsRequested: len(results),
		Details:               make([]Detail, 0, len(results)),
		Warnings:              warnings,
	}

	var notFound, blocked []string
	replaced, failed := 0, 0
	slideSet := make(map[int]bool)

	for _, res := range results {
		d := Detail{Find: res.req.Find, Replace: res.req.Replace}
		switch {
		case res.blocked:
			d.Status = StatusBlocked
			d.Occurrences = len(res.matches)
			r.BlockedCount++
			r.Blocked = append(r.Blocked, blockedDetail(res))
			blocked = append(blocked, fmt.Sprintf("%q (%s)", res.req.Find, countNoun(len(res.matches), "match", "matches")))
		case res.performed > 0:
			d.Status = StatusReplaced
			d.Occurrences = res.performed
			d.Slides = res.slides
			replaced++
			r.TotalReplacements += res.performed
			for _, n := range res.slides {
				slideSet[n] = true
			}
		default:
			d.Status = StatusNotFound
			if len(res.matches) == 0 {
				notFound = append(notFound, fmt.Sprintf("%q", res.req.Find))
			}
			if res.failed {
				failed++
			}
		}
		if len(res.matches) > 0 {
			r.ReplacementsFound++
		} else {
			r.ReplacementsNotFound++
		}
		r.Details = append(r.Details, d)
	}

	switch {
	case failed > 0 && replaced == 0:
		r.Status = OutcomeAllFailed
		r.Success = false
	case failed > 0:
		r.Status = OutcomePartialSuccess
		r.Success = false
	case r.BlockedCount == len(results):
		r.Status = OutcomeAllBlocked
		r.Success = false
	case r.BlockedCount > 0:
		r.Status = OutcomePartialSuccess
		r.Success = true
	default:
		r.Status = OutcomeAllSuccessful
		r.Success = true
	}

	var warn []string
	if len(notFound) > 0 {
		warn = append(warn, "not found: "+strings.Join(notFound, ", "))
	}
	if len(blocked) > 0 {
		warn = append(warn, "blocked: "+strings.Join(blocked, ", "))
	}
	r.Warning = strings.Join(warn, "; ")

	r.Message = reportMessage(r, len(slideSet), failed)
	return r
}

func reportMessage(r *Report, slides, failed int) string {
	switch r.Status {
	case OutcomeAllSuccessful:
		if r.TotalReplacements == 0 {
			return "no requested phrases were found; package unchanged"
		}
		return fmt.Sprintf("applied %s across %s",
			countNoun(r.TotalReplacements, "replacement", "replacements"),
			countNoun(slides, "slide", "slides"))
	case OutcomeAllBlocked:
		return "all requests were blocked by ambiguous matches; no changes applied"
	case OutcomeAllFailed:
		return "no replacements could be applied"
	default:
		parts := []string{fmt.Sprintf("applied %s",
			countNoun(r.TotalReplacements, "replacement", "replacements"))}
		if r.BlockedCount > 0 {
			parts = append(parts, fmt.Sprintf("%s blocked",
				countNoun(r.BlockedCount, "request", "requests")))
		}
		if failed > 0 {
			parts = append(parts, fmt.Sprintf("%s failed",
				countNoun(failed, "request", "requests")))
		}
		return strings.Join(parts, "; ")
	}
}

func blockedDetail(res *result) BlockedDetail {
	samples := res.matches
	if len(samples) > maxSampleLocations {
		samples = samples[:maxSampleLocations]
	}
	return BlockedDetail{
		Find:       res.req.Find,
		MatchCount: len(res.matches),
		Samples:    samples,
		Hint:       blockedHint,
	}
}

// countNoun formats a count with the right noun form.
func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}
