// ABOUTME: Document persistence operations for SQLite
// ABOUTME: Implements vector storage as BLOB with metadata as JSON
package sqlite

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/harper/docrag/internal/models"
)

// Record is a persisted document chunk with its embedding vector.
type Record struct {
	ID        string
	Text      string
	Vector    []float64
	DocIndex  int
	DocLength int
	Metadata  models.Metadata
}

// DocumentStore handles document persistence within one collection
type DocumentStore struct {
	db         *DB
	collection string
}

// NewDocumentStore opens the named collection, creating it if absent
func NewDocumentStore(db *DB, collection string) (*DocumentStore, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	_, err := db.Exec(`INSERT OR IGNORE INTO collections (name, created_at) VALUES (?, ?)`,
		collection, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %q: %w", collection, err)
	}
	return &DocumentStore{db: db, collection: collection}, nil
}

// Collection returns the collection name
func (s *DocumentStore) Collection() string {
	return s.collection
}

// Insert persists a single record. The caller is responsible for
// deduplication; inserting an existing id is a constraint violation.
func (s *DocumentStore) Insert(rec Record) error {
	metaJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (id, collection, text, vector, doc_index, doc_length, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, s.collection, rec.Text, vectorToBlob(rec.Vector), rec.DocIndex, rec.DocLength, string(metaJSON), time.Now())

	return err
}

// IDs returns the set of document ids currently persisted in the collection
func (s *DocumentStore) IDs() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT id FROM documents WHERE collection = ?`, s.collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// All returns every record in the collection in insertion order
func (s *DocumentStore) All() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, text, vector, doc_index, doc_length, metadata
		FROM documents
		WHERE collection = ?
		ORDER BY rowid
	`, s.collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec      Record
			blob     []byte
			metaJSON string
		)
		if err := rows.Scan(&rec.ID, &rec.Text, &blob, &rec.DocIndex, &rec.DocLength, &metaJSON); err != nil {
			return nil, err
		}
		rec.Vector = blobToVector(blob)
		if metaJSON != "" && metaJSON != "null" {
			if err := json.Unmarshal([]byte(metaJSON), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of records in the collection
func (s *DocumentStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE collection = ?`, s.collection).Scan(&count)
	return count, err
}

// Clear removes all records from the collection
func (s *DocumentStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE collection = ?`, s.collection)
	return err
}

// vectorToBlob encodes a float64 vector as a little-endian byte blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector decodes a little-endian byte blob back into a float64 vector
func blobToVector(blob []byte) []float64 {
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
