// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// ExportEntry is one mention flattened to a standalone row for exports.
type ExportEntry struct {
	Drug             string `json:"drug" yaml:"drug"`
	Journal          string `json:"journal" yaml:"journal"`
	Date             string `json:"date" yaml:"date"`
	PublicationTitle string `json:"publication_title" yaml:"publication_title"`
	SourceType       string `json:"source_type" yaml:"source_type"`
	SourceID         string `json:"source_id" yaml:"source_id"`
}

// Flatten returns every mention of g as an export row, in stored graph
// order.
func Flatten(g *types.MentionGraph) []ExportEntry {
	entries := make([]ExportEntry, 0, g.TotalMentions())
	for _, drug := range g.Drugs() {
		for _, journal := range g.Journals(drug) {
			for _, m := range g.Mentions(drug, journal) {
				entries = append(entries, ExportEntry{
					Drug:             drug,
					Journal:          journal,
					Date:             m.Date,
					PublicationTitle: m.PublicationTitle,
					SourceType:       string(m.SourceType),
					SourceID:         m.SourceID,
				})
			}
		}
	}
	return entries
}

// ExportYAML writes the flattened graph to path as YAML.
func ExportYAML(g *types.MentionGraph, path string) error {
	data, err := yaml.Marshal(Flatten(g))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the flattened graph to path as indented JSON.
func ExportJSON(g *types.MentionGraph, path string) error {
	data, err := json.MarshalIndent(Flatten(g), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, data)
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
