package layout

import (
	"fmt"

	"github.com/tsawler/slidesmith/model"
)

// Issue codes reported by Validate.
const (
	IssueOverflow = "overflow"
	IssueOverlap  = "overlap"
)

// overlapTolerance ignores overlaps below 1% of the smaller element, so
// elements sharing an edge do not report.
const overlapTolerance = 0.01

// Validate checks element geometry against the page. It reports
// elements extending outside the page bounds and pairs of elements whose
// boxes materially overlap. Issues are advisory; the elements themselves
// are not modified.
func Validate(elements []model.Element, config Config) []model.Issue {
	page := model.NewBox(0, 0, config.PageWidth, config.PageHeight)

	var issues []model.Issue
	for i, el := range elements {
		if !page.ContainsBox(el.Position) {
			issues = append(issues, model.Issue{
				Code:    IssueOverflow,
				Element: i,
				Other:   -1,
				Message: fmt.Sprintf("element %d extends outside the %gx%g in page", i, config.PageWidth, config.PageHeight),
			})
		}
	}
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			ratio := elements[i].Position.OverlapRatio(elements[j].Position)
			if ratio > overlapTolerance {
				issues = append(issues, model.Issue{
					Code:    IssueOverlap,
					Element: i,
					Other:   j,
					Message: fmt.Sprintf("elements %d and %d overlap by %.0f%%", i, j, ratio*100),
				})
			}
		}
	}
	return issues
}
