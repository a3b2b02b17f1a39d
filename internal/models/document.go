// ABOUTME: Document models for the RAG pipeline
// ABOUTME: Defines document chunks, metadata, and retrieval results
package models

// Metadata holds scalar key-value pairs attached to a document chunk.
// Values are expected to be strings, integers, floats, or booleans.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Document is a bounded span of source text with attached metadata,
// produced by splitting a larger document. Immutable once embedded.
type Document struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// RetrievedDocument is a search hit produced for one query.
// Rank is 1-based and reflects position in the distance-ascending order
// before threshold filtering.
type RetrievedDocument struct {
	ID              string   `json:"id"`
	Metadata        Metadata `json:"metadata,omitempty"`
	Text            string   `json:"text"`
	SimilarityScore float64  `json:"similarity_score"`
	Distance        float64  `json:"distance"`
	Rank            int      `json:"rank"`
}
