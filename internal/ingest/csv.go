// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/mention-engine/internal/normalize"
	"github.com/pdiddy/mention-engine/pkg/types"
)

// CSVSource loads publications from a CSV file with a header row. The
// same loader covers PubMed exports and clinical trial registries; the
// registry files name their title column differently, so TitleField
// selects it.
type CSVSource struct {
	Path string

	// TitleField is the header name of the title column. Empty means
	// "title".
	TitleField string

	Type types.SourceType
}

func (s CSVSource) Name() string { return string(s.Type) }

func (s CSVSource) Load(opts Options) ([]types.Publication, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	r := newCSVReader(data)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s header: %w", s.Path, err)
	}
	cols := columnIndex(header)

	titleField := s.TitleField
	if titleField == "" {
		titleField = "title"
	}

	b := newRecordBuilder(s.Type, opts)
	var pubs []types.Publication
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row: %w", s.Path, err)
		}
		pub, ok := b.build(
			field(row, cols, "id"),
			field(row, cols, titleField),
			field(row, cols, "journal"),
			field(row, cols, "date"),
		)
		if !ok {
			continue
		}
		pubs = append(pubs, pub)
	}
	b.finish(s.Name(), opts)
	return pubs, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newCSVReader wraps raw file content in a tolerant CSV reader. Exports
// in the wild carry byte order marks, ragged rows, and stray quotes, so
// those are accepted rather than rejected.
func newCSVReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

// columnIndex maps normalized header names to their positions. When a
// name repeats, the last occurrence wins.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalize.Normalize(name)] = i
	}
	return cols
}

// field returns the named column from row, or "" when the column is
// absent or the row is too short to reach it.
func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
