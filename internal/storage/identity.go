// ABOUTME: Content-addressed document identifiers for deduplication
// ABOUTME: Derives stable ids from chunk text and canonicalized metadata
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/docrag/internal/models"
)

// idPrefix namespaces document ids for debuggability.
const idPrefix = "doc_"

// idDigestBytes is the number of digest bytes kept (128 bits).
const idDigestBytes = 16

// DocumentID derives a deterministic identifier from a chunk's text and
// metadata. Identical (text, metadata) pairs always yield the same id, so
// the id doubles as the deduplication key: a collision means "same document".
func DocumentID(text string, meta models.Metadata) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte(canonicalMetadata(meta)))
	sum := h.Sum(nil)
	return idPrefix + hex.EncodeToString(sum[:idDigestBytes])
}

// canonicalMetadata serializes metadata into a stable form for hashing.
// Keys are sorted so equal maps hash equal regardless of construction order.
func canonicalMetadata(meta models.Metadata) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, meta[k])
	}
	return b.String()
}
