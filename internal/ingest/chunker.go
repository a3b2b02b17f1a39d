// ABOUTME: Recursive character text splitter for document chunking
// ABOUTME: Splits on paragraph, line, and word boundaries with overlap
package ingest

import (
	"strings"

	"github.com/harper/docrag/internal/models"
)

// Default chunking parameters
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// defaultSeparators are tried in priority order; the empty separator
// falls back to fixed-length splitting.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Chunker splits documents into chunks bounded by chunkSize characters,
// preferring natural boundaries and carrying overlap between chunks.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewChunker creates a Chunker. Non-positive size or negative overlap
// fall back to the defaults.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
		if chunkOverlap >= chunkSize {
			chunkOverlap = chunkSize / 5
		}
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split chunks each document, preserving its metadata on every chunk
func (c *Chunker) Split(docs []models.Document) []models.Document {
	var chunks []models.Document
	for _, doc := range docs {
		for _, text := range c.SplitText(doc.Text) {
			chunks = append(chunks, models.Document{
				Text:     text,
				Metadata: doc.Metadata.Clone(),
			})
		}
	}
	return chunks
}

// SplitText splits text into chunks of at most chunkSize characters
func (c *Chunker) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.split(text, c.separators)
}

func (c *Chunker) split(text string, separators []string) []string {
	if len(text) <= c.chunkSize {
		return []string{text}
	}

	// Pick the highest-priority separator present in the text
	sep := ""
	var rest []string
	for i, s := range separators {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}
	if sep == "" {
		return c.splitByLength(text)
	}

	var splits []string
	for _, piece := range strings.Split(text, sep) {
		if piece == "" {
			continue
		}
		if len(piece) > c.chunkSize {
			splits = append(splits, c.split(piece, rest)...)
		} else {
			splits = append(splits, piece)
		}
	}

	return c.merge(splits, sep)
}

// merge greedily packs splits into chunks up to chunkSize, retaining a
// tail of the previous window as overlap for the next chunk
func (c *Chunker) merge(splits []string, sep string) []string {
	sepLen := len(sep)
	var chunks []string
	var window []string

	flush := func() {
		if len(window) == 0 {
			return
		}
		chunk := strings.Join(window, sep)
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, s := range splits {
		if len(window) > 0 && joinedLen(window, sepLen)+sepLen+len(s) > c.chunkSize {
			flush()
			for len(window) > 0 && (joinedLen(window, sepLen) > c.chunkOverlap ||
				joinedLen(window, sepLen)+sepLen+len(s) > c.chunkSize) {
				window = window[1:]
			}
		}
		window = append(window, s)
	}
	flush()

	return chunks
}

// splitByLength is the last resort for text with no usable separators:
// fixed-size windows advancing by chunkSize minus overlap
func (c *Chunker) splitByLength(text string) []string {
	runes := []rune(text)
	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = c.chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func joinedLen(parts []string, sepLen int) int {
	n := 0
	for i, p := range parts {
		n += len(p)
		if i > 0 {
			n += sepLen
		}
	}
	return n
}
