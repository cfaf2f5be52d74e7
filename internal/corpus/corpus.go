// Package corpus provides the built-in sample content the briefing
// pipeline runs against: a read-only store of articles and documents in
// several formats and languages.
package corpus

// Format describes how a content item's body is encoded.
type Format string

const (
	// FormatHTML marks content carrying full HTML markup.
	FormatHTML Format = "html"
	// FormatText marks plain-text content.
	FormatText Format = "text"
	// FormatMarkdown marks markdown content.
	FormatMarkdown Format = "markdown"
)

// Kind distinguishes editorial articles from business documents.
type Kind string

const (
	// KindArticle marks editorial content.
	KindArticle Kind = "article"
	// KindDocument marks business and technical documents.
	KindDocument Kind = "document"
)

// Item is one piece of sample content.
type Item struct {
	// ID is the lookup key (e.g., "article-001").
	ID string
	// Title is the display title.
	Title string
	// Kind is article or document.
	Kind Kind
	// Format describes the body encoding.
	Format Format
	// Language is the source language code (e.g., "en").
	Language string
	// Author names the content's author or team.
	Author string
	// Category is the editorial category or document type.
	Category string
	// WordCount is the approximate body word count.
	WordCount int
	// Content is the raw body.
	Content string
}

// Stats summarizes the store's contents.
type Stats struct {
	// Articles and Documents count items by kind.
	Articles  int
	Documents int
	// Words is the total approximate word count.
	Words int
	// Formats counts items per format.
	Formats map[Format]int
	// Languages counts items per source language.
	Languages map[string]int
}

// Store is a read-only content lookup seeded with the sample corpus.
type Store struct {
	items map[string]Item
	order []string
}

// NewStore creates a store seeded with the built-in sample content.
func NewStore() *Store {
	s := &Store{items: make(map[string]Item, len(samples))}
	for _, item := range samples {
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	return s
}

// Get retrieves a content item by ID.
func (s *Store) Get(id string) (Item, bool) {
	item, ok := s.items[id]
	return item, ok
}

// List returns all items in their seeded order.
func (s *Store) List() []Item {
	items := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

// Stats computes summary statistics over the store.
func (s *Store) Stats() Stats {
	stats := Stats{
		Formats:   make(map[Format]int),
		Languages: make(map[string]int),
	}
	for _, id := range s.order {
		item := s.items[id]
		switch item.Kind {
		case KindArticle:
			stats.Articles++
		case KindDocument:
			stats.Documents++
		}
		stats.Words += item.WordCount
		stats.Formats[item.Format]++
		stats.Languages[item.Language]++
	}
	return stats
}
