package candidate

// Scored is a candidate after cross-encoder reranking. The final score drives
// ordering; the original recall score is kept for comparison, and the raw
// model score is optional (nil when the model degraded).
type Scored struct {
	docID         string
	finalScore    float64
	originalScore float64
	rerankScore   *float64
	content       string
	metadata      map[string]string
}

// NewScored creates a reranked item.
func NewScored(
	docID string, finalScore, originalScore float64, rerankScore *float64,
	content string, metadata map[string]string,
) Scored {
	return Scored{
		docID:         docID,
		finalScore:    finalScore,
		originalScore: originalScore,
		rerankScore:   rerankScore,
		content:       content,
		metadata:      metadata,
	}
}

// DocID returns the document identifier.
func (s *Scored) DocID() string { return s.docID }

// FinalScore returns the score used for final ordering.
func (s *Scored) FinalScore() float64 { return s.finalScore }

// OriginalScore returns the pre-rerank recall score.
func (s *Scored) OriginalScore() float64 { return s.originalScore }

// RerankScore returns the raw model score, or nil if the model did not run.
func (s *Scored) RerankScore() *float64 { return s.rerankScore }

// Content returns the document content snippet.
func (s *Scored) Content() string { return s.content }

// Metadata returns the document metadata.
func (s *Scored) Metadata() map[string]string { return s.metadata }

// Item converts the scored entry back into a pipeline candidate,
// carrying the final score forward.
func (s *Scored) Item() Item {
	return New(s.docID, s.finalScore, "rerank", s.content, s.metadata)
}
