// ABOUTME: Retriever turns a natural-language query into ranked context documents
// ABOUTME: Applies similarity scoring and threshold filtering over store results
package core

import (
	"log"
	"strings"

	"github.com/harper/docrag/internal/models"
	"github.com/harper/docrag/internal/storage"
)

// Embedder converts text into an embedding vector
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// VectorSearcher answers nearest-neighbor queries over stored documents
type VectorSearcher interface {
	Query(vector []float64, k int) ([]storage.QueryMatch, error)
}

// Retriever retrieves top-k relevant documents for a query using embedding
// similarity. Distances are cosine distances in [0, 2], so similarity
// scores (1 - distance) fall in [-1, 1].
type Retriever struct {
	embedder       Embedder
	store          VectorSearcher
	topK           int
	scoreThreshold float64
}

// NewRetriever creates a Retriever with the given defaults
func NewRetriever(embedder Embedder, store VectorSearcher, topK int, scoreThreshold float64) *Retriever {
	return &Retriever{
		embedder:       embedder,
		store:          store,
		topK:           topK,
		scoreThreshold: scoreThreshold,
	}
}

// Retrieve returns ranked, threshold-filtered documents for the query
// using the configured top-k
func (r *Retriever) Retrieve(query string) []models.RetrievedDocument {
	return r.RetrieveTopK(query, r.topK)
}

// RetrieveTopK is Retrieve with an explicit result limit.
//
// Ranks reflect position in the distance-ascending order before threshold
// filtering; filtering removes items without renumbering the survivors.
// Any embedding or store failure is logged and degrades to an empty
// result so a transient fault never aborts an interactive session.
func (r *Retriever) RetrieveTopK(query string, topK int) []models.RetrievedDocument {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	vector, err := r.embedder.GenerateEmbedding(query)
	if err != nil {
		log.Printf("retrieval degraded: embedding query failed: %v", err)
		return nil
	}

	matches, err := r.store.Query(vector, topK)
	if err != nil {
		log.Printf("retrieval degraded: store query failed: %v", err)
		return nil
	}

	var docs []models.RetrievedDocument
	for i, m := range matches {
		score := 1.0 - m.Distance
		if score < r.scoreThreshold {
			continue
		}
		docs = append(docs, models.RetrievedDocument{
			ID:              m.ID,
			Metadata:        m.Metadata,
			Text:            m.Text,
			SimilarityScore: score,
			Distance:        m.Distance,
			Rank:            i + 1,
		})
	}
	return docs
}
