package briefing

import (
	"regexp"
	"strings"

	"github.com/ShayCichocki/cascade/internal/gate"
)

// htmlTagPattern matches anything that still looks like an opening HTML
// tag after extraction.
var htmlTagPattern = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// ExtractionGate validates extraction quality before any model tokens are
// spent on the content.
func ExtractionGate() gate.Gate[Extract] {
	return gate.Gate[Extract]{
		Name: "extraction",
		Checks: []gate.Check[Extract]{
			{Name: "min_length", Test: func(e Extract) bool {
				return e.ExtractedLength > 100
			}},
			{Name: "no_html_tags", Test: func(e Extract) bool {
				return !htmlTagPattern.MatchString(e.Content)
			}},
			{Name: "has_substance", Test: func(e Extract) bool {
				return strings.TrimSpace(e.Content) != ""
			}},
		},
	}
}

// SummaryGate validates the summarize stage's structured output.
func SummaryGate() gate.Gate[*Summary] {
	return gate.Gate[*Summary]{
		Name: "summary",
		Checks: []gate.Check[*Summary]{
			{Name: "has_summary", Test: func(s *Summary) bool {
				return strings.TrimSpace(s.Summary) != ""
			}},
			{Name: "has_key_points", Test: func(s *Summary) bool {
				return len(s.KeyPoints) > 0
			}},
			{Name: "no_html_tags", Test: func(s *Summary) bool {
				return !htmlTagPattern.MatchString(s.Summary)
			}},
		},
	}
}
