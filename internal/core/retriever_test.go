// ABOUTME: Tests for the retriever
// ABOUTME: Verifies short-circuits, ranking, threshold filtering, and degradation
package core

import (
	"errors"
	"math"
	"testing"

	"github.com/harper/docrag/internal/storage"
)

type fakeEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	f.calls++
	return f.vector, f.err
}

type fakeSearcher struct {
	matches []storage.QueryMatch
	err     error
	calls   int
	lastK   int
}

func (f *fakeSearcher) Query(vector []float64, k int) ([]storage.QueryMatch, error) {
	f.calls++
	f.lastK = k
	return f.matches, f.err
}

func TestRetrieve_EmptyQueryShortCircuits(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float64{1}}
	searcher := &fakeSearcher{}
	r := NewRetriever(embedder, searcher, 5, 0.0)

	for _, query := range []string{"", "   ", "\n\t"} {
		if got := r.Retrieve(query); len(got) != 0 {
			t.Errorf("Retrieve(%q) returned %d docs, want 0", query, len(got))
		}
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for empty queries, want 0", embedder.calls)
	}
	if searcher.calls != 0 {
		t.Errorf("store called %d times for empty queries, want 0", searcher.calls)
	}
}

func TestRetrieve_RanksFollowDistanceOrder(t *testing.T) {
	searcher := &fakeSearcher{matches: []storage.QueryMatch{
		{ID: "doc_1", Text: "closest", Distance: 0.1},
		{ID: "doc_2", Text: "middle", Distance: 0.5},
		{ID: "doc_3", Text: "farthest", Distance: 0.9},
	}}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, searcher, 3, 0.0)

	docs := r.Retrieve("query")
	if len(docs) != 3 {
		t.Fatalf("Retrieve() returned %d docs, want 3", len(docs))
	}
	for i, doc := range docs {
		if doc.Rank != i+1 {
			t.Errorf("docs[%d].Rank = %d, want %d", i, doc.Rank, i+1)
		}
		wantScore := 1.0 - doc.Distance
		if math.Abs(doc.SimilarityScore-wantScore) > 1e-12 {
			t.Errorf("docs[%d].SimilarityScore = %v, want %v", i, doc.SimilarityScore, wantScore)
		}
	}
	if searcher.lastK != 3 {
		t.Errorf("store queried with k = %d, want 3", searcher.lastK)
	}
}

func TestRetrieve_ThresholdKeepsOriginalRanks(t *testing.T) {
	// Similarity scores 0.9, 0.5, 0.1; threshold 0.4 keeps the first two
	searcher := &fakeSearcher{matches: []storage.QueryMatch{
		{ID: "doc_1", Text: "a", Distance: 0.1},
		{ID: "doc_2", Text: "b", Distance: 0.5},
		{ID: "doc_3", Text: "c", Distance: 0.9},
	}}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, searcher, 3, 0.4)

	docs := r.Retrieve("query")
	if len(docs) != 2 {
		t.Fatalf("Retrieve() returned %d docs, want 2", len(docs))
	}
	if docs[0].ID != "doc_1" || docs[1].ID != "doc_2" {
		t.Errorf("kept ids = [%s, %s], want [doc_1, doc_2]", docs[0].ID, docs[1].ID)
	}
	// Filtering must not renumber survivors
	if docs[0].Rank != 1 || docs[1].Rank != 2 {
		t.Errorf("ranks = [%d, %d], want [1, 2]", docs[0].Rank, docs[1].Rank)
	}
}

func TestRetrieve_ThresholdSkipsMiddleButKeepsRanks(t *testing.T) {
	// A gap in the middle must leave a gap in the rank numbers
	searcher := &fakeSearcher{matches: []storage.QueryMatch{
		{ID: "doc_1", Text: "a", Distance: 0.1}, // score 0.9
		{ID: "doc_2", Text: "b", Distance: 0.7}, // score 0.3, dropped
		{ID: "doc_3", Text: "c", Distance: 0.4}, // score 0.6
	}}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, searcher, 3, 0.5)

	docs := r.Retrieve("query")
	if len(docs) != 2 {
		t.Fatalf("Retrieve() returned %d docs, want 2", len(docs))
	}
	if docs[0].Rank != 1 || docs[1].Rank != 3 {
		t.Errorf("ranks = [%d, %d], want [1, 3]", docs[0].Rank, docs[1].Rank)
	}
}

func TestRetrieve_EmbedderFailureDegradesToEmpty(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(&fakeEmbedder{err: errors.New("api down")}, searcher, 5, 0.0)

	if got := r.Retrieve("query"); len(got) != 0 {
		t.Errorf("Retrieve() returned %d docs on embedder failure, want 0", len(got))
	}
	if searcher.calls != 0 {
		t.Error("store should not be queried when embedding fails")
	}
}

func TestRetrieve_StoreFailureDegradesToEmpty(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("db locked")}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, searcher, 5, 0.0)

	if got := r.Retrieve("query"); len(got) != 0 {
		t.Errorf("Retrieve() returned %d docs on store failure, want 0", len(got))
	}
}

func TestRetrieveTopK_OverridesDefault(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, searcher, 5, 0.0)

	r.RetrieveTopK("query", 12)
	if searcher.lastK != 12 {
		t.Errorf("store queried with k = %d, want 12", searcher.lastK)
	}
}
