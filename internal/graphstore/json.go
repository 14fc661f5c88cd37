// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// SaveJSON writes g to path as two-space-indented JSON, creating the
// parent directory if needed. Key order in the file follows graph
// insertion order, so saving an unchanged graph rewrites identical
// bytes.
func SaveJSON(g *types.MentionGraph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing graph file: %w", err)
	}
	return nil
}

// LoadJSON reads a graph written by SaveJSON.
func LoadJSON(path string) (*types.MentionGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	g := types.NewMentionGraph()
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("decoding graph file %s: %w", path, err)
	}
	return g, nil
}
