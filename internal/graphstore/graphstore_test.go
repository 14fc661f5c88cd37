// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mention-engine/pkg/types"
)

func sampleGraph() *types.MentionGraph {
	g := types.NewMentionGraph()
	g.Add("ethanol", "psychopharmacology", types.Mention{
		Date:             "2020-01-01",
		PublicationTitle: "Ethanol Effects on Memory",
		SourceType:       types.SourcePubMedCSV,
		SourceID:         "1",
	})
	g.Add("ethanol", "nature", types.Mention{
		Date:             "2020-02-15",
		PublicationTitle: "Ethanol Metabolism Pathways",
		SourceType:       types.SourcePubMedJSON,
		SourceID:         "2",
	})
	g.Add("atropine", "nature", types.Mention{
		Date:             "2019-12-31",
		PublicationTitle: "Atropine in Resuscitation",
		SourceType:       types.SourceClinicalTrials,
		SourceID:         "3",
	})
	return g
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output", "graph.json")
	g := sampleGraph()

	require.NoError(t, SaveJSON(g, path))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, g.Drugs(), loaded.Drugs())
	assert.Equal(t, g.Journals("ethanol"), loaded.Journals("ethanol"))
	assert.Equal(t, g.Mentions("ethanol", "nature"), loaded.Mentions("ethanol", "nature"))

	// A second save of the loaded graph must reproduce the file exactly.
	again := filepath.Join(dir, "output", "graph2.json")
	require.NoError(t, SaveJSON(loaded, again))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	second, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, SaveJSON(sampleGraph(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "{\n  \"ethanol\": {"), "unexpected layout:\n%s", content)
	assert.True(t, strings.HasSuffix(content, "}\n"))
}

func TestSaveJSONKeepsRawAmpersand(t *testing.T) {
	g := types.NewMentionGraph()
	g.Add("gold", "science & medicine", types.Mention{
		Date:             "2020-01-01",
		PublicationTitle: "Gold <Au> Compounds",
		SourceType:       types.SourcePubMedCSV,
		SourceID:         "1",
	})
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, SaveJSON(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "science & medicine")
	assert.Contains(t, string(data), "Gold <Au> Compounds")
}

func TestLoadJSONErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadJSON(filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading graph file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = LoadJSON(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding graph file")
}

func TestFlatten(t *testing.T) {
	entries := Flatten(sampleGraph())
	require.Len(t, entries, 3)

	assert.Equal(t, ExportEntry{
		Drug:             "ethanol",
		Journal:          "psychopharmacology",
		Date:             "2020-01-01",
		PublicationTitle: "Ethanol Effects on Memory",
		SourceType:       "pubmed_csv",
		SourceID:         "1",
	}, entries[0])
	assert.Equal(t, "ethanol", entries[1].Drug)
	assert.Equal(t, "atropine", entries[2].Drug)

	assert.Empty(t, Flatten(types.NewMentionGraph()))
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "mentions.json")
	g := sampleGraph()
	require.NoError(t, ExportJSON(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []ExportEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, Flatten(g), got)
}

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "mentions.yaml")
	g := sampleGraph()
	require.NoError(t, ExportYAML(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, Flatten(g), got)
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "mentions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreImportAndMentions(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	summary, err := s.ImportGraph(ctx, sampleGraph())
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Mentions: 3, Drugs: 2, Journals: 2}, summary)

	rows, err := s.Mentions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0].SourceID)
	assert.Equal(t, "2", rows[1].SourceID)
	assert.Equal(t, "3", rows[2].SourceID)

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{"by drug", Filter{Drug: "atropine"}, []string{"3"}},
		{"by journal", Filter{Journal: "nature"}, []string{"2", "3"}},
		{"by source type", Filter{SourceType: "pubmed_json"}, []string{"2"}},
		{"by date prefix", Filter{DatePrefix: "2020"}, []string{"1", "2"}},
		{"by month prefix", Filter{DatePrefix: "2020-02"}, []string{"2"}},
		{"with limit", Filter{Limit: 2}, []string{"1", "2"}},
		{"combined", Filter{Journal: "nature", DatePrefix: "2019"}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.Mentions(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, r := range rows {
				ids = append(ids, r.SourceID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestImportGraphReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.ImportGraph(ctx, sampleGraph())
	require.NoError(t, err)

	small := types.NewMentionGraph()
	small.Add("aspirin", "bmj", types.Mention{
		Date:             "2021-06-01",
		PublicationTitle: "Aspirin Revisited",
		SourceType:       types.SourcePubMedCSV,
		SourceID:         "9",
	})
	summary, err := s.ImportGraph(ctx, small)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Mentions: 1, Drugs: 1, Journals: 1}, summary)

	rows, err := s.Mentions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "aspirin", rows[0].Drug)
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mentions.db")
	ctx := context.Background()

	s, err := Open(dbPath)
	require.NoError(t, err)
	_, err = s.ImportGraph(ctx, sampleGraph())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	rows, err := reopened.Mentions(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
