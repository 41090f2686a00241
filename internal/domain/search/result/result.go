package result

// Item is a single entry of the final search response.
type Item struct {
	docID    string
	score    float64
	content  string
	metadata map[string]string
}

// NewItem creates a response item.
func NewItem(docID string, score float64, content string, metadata map[string]string) Item {
	return Item{docID: docID, score: score, content: content, metadata: metadata}
}

// DocID returns the document identifier.
func (i *Item) DocID() string { return i.docID }

// Score returns the final relevance score.
func (i *Item) Score() float64 { return i.score }

// Content returns the document content snippet.
func (i *Item) Content() string { return i.content }

// Metadata returns the document metadata.
func (i *Item) Metadata() map[string]string { return i.metadata }

// Result is the complete search response. RecallStats maps each strategy
// name to its recall count plus a "merged" entry for the final size; it is
// observability data, not part of the ordering contract.
type Result struct {
	query       string
	items       []Item
	tookMS      float64
	recallStats map[string]int
}

// New creates a search result.
func New(query string, items []Item, tookMS float64, recallStats map[string]int) Result {
	return Result{query: query, items: items, tookMS: tookMS, recallStats: recallStats}
}

// Query returns the original query.
func (r *Result) Query() string { return r.query }

// Items returns the ordered result entries.
func (r *Result) Items() []Item { return r.items }

// Total returns the number of returned entries.
func (r *Result) Total() int { return len(r.items) }

// TookMS returns the elapsed wall-clock time in milliseconds.
func (r *Result) TookMS() float64 { return r.tookMS }

// RecallStats returns per-stage recall counts, or nil.
func (r *Result) RecallStats() map[string]int { return r.recallStats }
