package briefing

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/cascade/internal/corpus"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "removes script blocks",
			in:   `<p>keep this</p><script src="analytics.js">track();</script>`,
			want: "keep this",
		},
		{
			name: "removes style blocks",
			in:   `<style>p { color: red }</style><p>body text</p>`,
			want: "body text",
		},
		{
			name: "removes page chrome",
			in:   `<nav><a href="/">Home</a></nav><p>article body</p><footer>fine print</footer>`,
			want: "article body",
		},
		{
			name: "removes header blocks",
			in:   `<header><h1>Site</h1></header><p>content</p>`,
			want: "content",
		},
		{
			name: "block removal is case insensitive",
			in:   "<SCRIPT>track()</SCRIPT><p>kept</p>",
			want: "kept",
		},
		{
			name: "block removal spans lines",
			in:   "<script>\nvar a = 1;\nvar b = 2;\n</script><p>after</p>",
			want: "after",
		},
		{
			name: "tags become spaces",
			in:   "one<br>two<hr/>three",
			want: "one two three",
		},
		{
			name: "decodes entities",
			in:   "Fish &amp; Chips&nbsp;&copy; 2024",
			want: "Fish & Chips (c) 2024",
		},
		{
			name: "normalizes whitespace",
			in:   "a  \n\n b\t c",
			want: "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripHTMLSampleArticle(t *testing.T) {
	item, ok := corpus.NewStore().Get("article-001")
	if !ok {
		t.Fatal("article-001 missing from store")
	}

	got := StripHTML(item.Content)

	if !strings.Contains(got, "Machine learning is a subset of artificial intelligence") {
		t.Error("stripped article lost its body text")
	}
	if strings.Contains(got, "trackPageView") {
		t.Error("stripped article still contains script content")
	}
	if strings.Contains(got, "Privacy Policy") {
		t.Error("stripped article still contains footer content")
	}
	if htmlTagPattern.MatchString(got) {
		t.Errorf("stripped article still contains HTML tags: %q", htmlTagPattern.FindString(got))
	}
}

func TestExtractItem(t *testing.T) {
	t.Run("html is stripped", func(t *testing.T) {
		item := corpus.Item{
			ID:      "x",
			Title:   "Sample",
			Format:  corpus.FormatHTML,
			Content: `<html><body><p>real   content</p><script>noise()</script></body></html>`,
		}

		got := ExtractItem(item)

		if got.Content != "real content" {
			t.Errorf("Content = %q, want %q", got.Content, "real content")
		}
		if got.OriginalLength != len(item.Content) {
			t.Errorf("OriginalLength = %d, want %d", got.OriginalLength, len(item.Content))
		}
		if got.ExtractedLength != len(got.Content) {
			t.Errorf("ExtractedLength = %d, want %d", got.ExtractedLength, len(got.Content))
		}
		if got.Title != "Sample" {
			t.Errorf("Title = %q, want %q", got.Title, "Sample")
		}
	})

	t.Run("text only normalizes whitespace", func(t *testing.T) {
		item := corpus.Item{
			Format:  corpus.FormatText,
			Content: "  hello   world \n again ",
		}

		if got := ExtractItem(item).Content; got != "hello world again" {
			t.Errorf("Content = %q, want normalized text", got)
		}
	})

	t.Run("markdown keeps its syntax", func(t *testing.T) {
		item := corpus.Item{
			Format:  corpus.FormatMarkdown,
			Content: "# Title\n\nBody **text** here",
		}

		if got := ExtractItem(item).Content; got != "# Title Body **text** here" {
			t.Errorf("Content = %q, want markdown preserved", got)
		}
	})

	t.Run("missing title falls back", func(t *testing.T) {
		if got := ExtractItem(corpus.Item{Format: corpus.FormatText, Content: "x"}).Title; got != "Untitled" {
			t.Errorf("Title = %q, want %q", got, "Untitled")
		}
	})
}
