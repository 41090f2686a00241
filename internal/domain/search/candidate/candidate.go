package candidate

// Item is a document returned by one recall strategy prior to fusion.
// Identity for deduplication is the doc id; the score is whatever the
// producing strategy emitted, normalized so that higher means more relevant.
type Item struct {
	docID    string
	score    float64
	source   string
	content  string
	metadata map[string]string
}

// New creates a recall candidate.
func New(docID string, score float64, source, content string, metadata map[string]string) Item {
	return Item{
		docID:    docID,
		score:    score,
		source:   source,
		content:  content,
		metadata: metadata,
	}
}

// DocID returns the document identifier.
func (i *Item) DocID() string { return i.docID }

// Score returns the current relevance score.
func (i *Item) Score() float64 { return i.score }

// Source returns the recall source tag ("vector", "keyword", ...).
func (i *Item) Source() string { return i.source }

// Content returns the document content snippet, if the strategy populated it.
func (i *Item) Content() string { return i.content }

// Metadata returns the document metadata, if any.
func (i *Item) Metadata() map[string]string { return i.metadata }

// MetadataValue returns a single metadata field, or "" when absent.
func (i *Item) MetadataValue(key string) string {
	if i.metadata == nil {
		return ""
	}
	return i.metadata[key]
}

// WithScore returns a copy of the item carrying a new score.
func (i Item) WithScore(score float64) Item {
	i.score = score
	return i
}
