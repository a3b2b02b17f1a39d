// ABOUTME: Persistent vector store with content-id deduplication
// ABOUTME: Brute-force cosine distance search over SQLite-backed records
package storage

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"github.com/harper/docrag/internal/models"
	"github.com/harper/docrag/internal/storage/sqlite"
)

// dbFileName is the SQLite file created under the store path.
const dbFileName = "docrag.db"

// Store is a durable collection of document chunks with embedding vectors.
// Records are keyed by content-derived id; re-adding an identical
// (text, metadata) pair is a no-op.
type Store struct {
	db        *sqlite.DB
	docs      *sqlite.DocumentStore
	path      string
	dimension int
}

// AddResult reports how a batch insert went.
type AddResult struct {
	Added   int
	Skipped int
}

// QueryMatch is one nearest-neighbor hit, distance-ascending.
// Distance is cosine distance (1 - cosine similarity), in [0, 2].
type QueryMatch struct {
	ID       string
	Text     string
	Metadata models.Metadata
	Distance float64
}

// Open creates or reopens the collection at path. Calling twice with the
// same arguments reopens the same data. Returns ErrStorageInit if the path
// is not writable or the backing file is corrupt.
func Open(path, collection string, dimension int) (*Store, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrStorageInit, dimension)
	}

	db, err := sqlite.Open(filepath.Join(path, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	docs, err := sqlite.NewDocumentStore(db, collection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	return &Store{db: db, docs: docs, path: path, dimension: dimension}, nil
}

// OpenInMemory creates a non-persistent store (for testing)
func OpenInMemory(collection string, dimension int) (*Store, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrStorageInit, dimension)
	}

	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	docs, err := sqlite.NewDocumentStore(db, collection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	return &Store{db: db, docs: docs, path: ":memory:", dimension: dimension}, nil
}

// Add inserts document chunks with their embedding vectors, skipping any
// whose content id already exists in the collection or appeared earlier in
// the same batch. Stored metadata always carries doc_index (position in
// this batch) and doc_length (text length) alongside the chunk's own
// metadata. Writes are best-effort: on a mid-batch failure the rows written
// so far remain written and the partial counts are returned with the error.
func (s *Store) Add(docs []models.Document, vectors [][]float64) (AddResult, error) {
	var res AddResult

	if len(docs) != len(vectors) {
		return res, fmt.Errorf("%w: %d documents, %d embeddings", ErrArityMismatch, len(docs), len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != s.dimension {
			return res, fmt.Errorf("%w: embedding %d has dimension %d, want %d", ErrArityMismatch, i, len(vec), s.dimension)
		}
	}

	existing, err := s.docs.IDs()
	if err != nil {
		return res, fmt.Errorf("%w: listing existing ids: %v", ErrStorageWrite, err)
	}

	for i, doc := range docs {
		// The id hashes the chunk's own (text, metadata) only, never the
		// derived fields, so re-ingestion stays idempotent even when batch
		// positions shift between runs.
		id := DocumentID(doc.Text, doc.Metadata)
		if _, ok := existing[id]; ok {
			res.Skipped++
			continue
		}

		rec := sqlite.Record{
			ID:        id,
			Text:      doc.Text,
			Vector:    vectors[i],
			DocIndex:  i,
			DocLength: len(doc.Text),
			Metadata:  doc.Metadata,
		}
		if err := s.docs.Insert(rec); err != nil {
			return res, fmt.Errorf("%w: inserting %s: %v", ErrStorageWrite, id, err)
		}

		existing[id] = struct{}{}
		res.Added++
	}

	return res, nil
}

// Query returns at most k nearest neighbors by cosine distance, closest
// first. Ties are broken by insertion order. An empty collection yields an
// empty result. Returns ErrQuery on malformed input or a backend failure.
func (s *Store) Query(vector []float64, k int) ([]QueryMatch, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrQuery, k)
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, want %d", ErrQuery, len(vector), s.dimension)
	}

	records, err := s.docs.All()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	matches := make([]QueryMatch, 0, len(records))
	for _, rec := range records {
		meta := rec.Metadata.Clone()
		if meta == nil {
			meta = models.Metadata{}
		}
		meta["doc_index"] = rec.DocIndex
		meta["doc_length"] = rec.DocLength

		matches = append(matches, QueryMatch{
			ID:       rec.ID,
			Text:     rec.Text,
			Metadata: meta,
			Distance: 1.0 - cosineSimilarity(vector, rec.Vector),
		})
	}

	// Stable sort keeps insertion order for equal distances
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of records in the collection
func (s *Store) Count() (int, error) {
	count, err := s.docs.Count()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return count, nil
}

// Clear removes all records from the collection
func (s *Store) Clear() error {
	if err := s.docs.Clear(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

// Path returns the filesystem path backing the store
func (s *Store) Path() string {
	return s.path
}

// Collection returns the collection name
func (s *Store) Collection() string {
	return s.docs.Collection()
}

// Dimension returns the configured vector dimension
func (s *Store) Dimension() int {
	return s.dimension
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
