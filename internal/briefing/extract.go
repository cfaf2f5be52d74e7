package briefing

import (
	"regexp"
	"strings"

	"github.com/ShayCichocki/cascade/internal/corpus"
)

// Extract is the product of the local extraction stage: cleaned content
// plus the measurements the extraction gate checks.
type Extract struct {
	Content         string `json:"extracted_content"`
	OriginalLength  int    `json:"original_length"`
	ExtractedLength int    `json:"extracted_length"`
	Title           string `json:"title"`
}

var (
	scriptPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	navPattern    = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	footerPattern = regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`)
	headerPattern = regexp.MustCompile(`(?is)<header[^>]*>.*?</header>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// StripHTML removes script, style, and page-chrome blocks, strips the
// remaining tags, decodes common entities, and normalizes whitespace.
func StripHTML(html string) string {
	text := html
	for _, block := range []*regexp.Regexp{scriptPattern, stylePattern, navPattern, footerPattern, headerPattern} {
		text = block.ReplaceAllString(text, "")
	}
	text = tagPattern.ReplaceAllString(text, " ")

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&copy;", "(c)")

	return normalizeWhitespace(text)
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// ExtractItem cleans a content item according to its format. HTML is
// stripped down to text; text and markdown only get their whitespace
// normalized.
func ExtractItem(item corpus.Item) Extract {
	var extracted string
	if item.Format == corpus.FormatHTML {
		extracted = StripHTML(item.Content)
	} else {
		extracted = normalizeWhitespace(item.Content)
	}

	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	return Extract{
		Content:         extracted,
		OriginalLength:  len(item.Content),
		ExtractedLength: len(extracted),
		Title:           title,
	}
}
