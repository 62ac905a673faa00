package font

import "strings"

// fallbacks maps families that are rarely present on a measuring host
// to a bundled family with comparable proportions. Monospace families
// map to Go Mono, everything else to Go.
var fallbacks = map[string]string{
	"calibri":         "Go",
	"calibri light":   "Go",
	"arial":           "Go",
	"helvetica":       "Go",
	"segoe ui":        "Go",
	"verdana":         "Go",
	"tahoma":          "Go",
	"times new roman": "Go",
	"georgia":         "Go",
	"cambria":         "Go",
	"courier new":     "Go Mono",
	"consolas":        "Go Mono",
	"menlo":           "Go Mono",
	"monaco":          "Go Mono",
}

// Resolve maps a requested family to one the cache can measure.
// substituted reports that a fallback applied, which callers surface
// as a warning. An empty family resolves to the bundled default
// without a substitution flag, since no named font was displaced.
func Resolve(family string) (resolved string, substituted bool) {
	if family == "" {
		return "Go", false
	}
	if sub, ok := fallbacks[strings.ToLower(family)]; ok {
		return sub, true
	}
	return family, false
}
