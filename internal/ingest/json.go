// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaptinlin/jsonrepair"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// JSONSource loads publications from a JSON array file. Exports are not
// always strict JSON, so decoding falls back to jsonrepair for documents
// with trailing commas and similar defects.
type JSONSource struct {
	Path string
	Type types.SourceType
}

func (s JSONSource) Name() string { return string(s.Type) }

type jsonRecord struct {
	ID      json.RawMessage `json:"id"`
	Title   string          `json:"title"`
	Journal string          `json:"journal"`
	Date    string          `json:"date"`
}

func (s JSONSource) Load(opts Options) ([]types.Publication, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}

	b := newRecordBuilder(s.Type, opts)
	var pubs []types.Publication
	for _, rec := range records {
		pub, ok := b.build(idString(rec.ID), rec.Title, rec.Journal, rec.Date)
		if !ok {
			continue
		}
		pubs = append(pubs, pub)
	}
	b.finish(s.Name(), opts)
	return pubs, nil
}

// decodeRecords parses data as a JSON array, repairing the document when
// strict decoding fails.
func decodeRecords(data []byte) ([]jsonRecord, error) {
	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil, fmt.Errorf("repairing document: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &records); err != nil {
		return nil, fmt.Errorf("decoding repaired document: %w", err)
	}
	return records, nil
}

// idString renders a JSON id the way the source wrote it: strings pass
// through, numbers keep their literal form, anything else is treated as
// absent.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
