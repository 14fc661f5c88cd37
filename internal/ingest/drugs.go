// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdiddy/mention-engine/internal/normalize"
)

// LoadDrugs reads the vocabulary CSV and returns the distinct normalized
// drug names in sorted order. The file must carry a header row with a
// "drug" column; rows with a blank name are ignored. A readable file
// with no usable names returns an empty slice, not an error.
func LoadDrugs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drugs file: %w", err)
	}

	r := newCSVReader(data)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading drugs header: %w", err)
	}
	cols := columnIndex(header)

	set := make(map[string]struct{})
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading drugs row: %w", err)
		}
		name := normalize.Normalize(field(row, cols, "drug"))
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}

	var drugs []string
	for name := range set {
		drugs = append(drugs, name)
	}
	sort.Strings(drugs)
	return drugs, nil
}
