package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func mention(id string) Mention {
	return Mention{
		Date:             "2020-01-01",
		PublicationTitle: "A study of compound " + id,
		SourceType:       SourcePubMedCSV,
		SourceID:         id,
	}
}

// --- Add and accessors ---

func TestAddPreservesInsertionOrder(t *testing.T) {
	g := NewMentionGraph()
	g.Add("zopiclone", "the lancet", mention("1"))
	g.Add("atropine", "nature", mention("2"))
	g.Add("zopiclone", "bmj", mention("3"))

	wantDrugs := []string{"zopiclone", "atropine"}
	gotDrugs := g.Drugs()
	if len(gotDrugs) != len(wantDrugs) {
		t.Fatalf("Drugs() = %v, want %v", gotDrugs, wantDrugs)
	}
	for i := range wantDrugs {
		if gotDrugs[i] != wantDrugs[i] {
			t.Errorf("Drugs()[%d] = %q, want %q", i, gotDrugs[i], wantDrugs[i])
		}
	}

	wantJournals := []string{"the lancet", "bmj"}
	gotJournals := g.Journals("zopiclone")
	if len(gotJournals) != 2 || gotJournals[0] != wantJournals[0] || gotJournals[1] != wantJournals[1] {
		t.Errorf("Journals(zopiclone) = %v, want %v", gotJournals, wantJournals)
	}
}

func TestAddDeduplicates(t *testing.T) {
	base := mention("42")

	changed := func(mutate func(*Mention)) Mention {
		m := base
		mutate(&m)
		return m
	}

	tests := []struct {
		name      string
		journal   string
		m         Mention
		wantAdded bool
		wantTotal int
	}{
		{"identical tuple", "nature", base, false, 1},
		{"different date", "nature", changed(func(m *Mention) { m.Date = "2021-05-05" }), true, 2},
		{"different title", "nature", changed(func(m *Mention) { m.PublicationTitle = "Other title" }), true, 2},
		{"different source type", "nature", changed(func(m *Mention) { m.SourceType = SourcePubMedJSON }), true, 2},
		{"different source id", "nature", changed(func(m *Mention) { m.SourceID = "43" }), true, 2},
		{"different journal", "bmj", base, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMentionGraph()
			if !g.Add("ethanol", "nature", base) {
				t.Fatal("first Add returned false")
			}
			if added := g.Add("ethanol", tt.journal, tt.m); added != tt.wantAdded {
				t.Errorf("Add() = %v, want %v", added, tt.wantAdded)
			}
			if g.TotalMentions() != tt.wantTotal {
				t.Errorf("TotalMentions() = %d, want %d", g.TotalMentions(), tt.wantTotal)
			}
		})
	}
}

func TestSameMentionUnderTwoDrugs(t *testing.T) {
	g := NewMentionGraph()
	shared := mention("7")
	if !g.Add("ethanol", "nature", shared) {
		t.Error("Add under first drug returned false")
	}
	if !g.Add("atropine", "nature", shared) {
		t.Error("Add under second drug returned false")
	}
	if g.TotalMentions() != 2 {
		t.Errorf("TotalMentions() = %d, want 2", g.TotalMentions())
	}
}

func TestAccessorsOnMissingKeys(t *testing.T) {
	g := NewMentionGraph()
	g.Add("ethanol", "nature", mention("1"))

	if g.HasDrug("atropine") {
		t.Error("HasDrug(atropine) = true, want false")
	}
	if got := g.Journals("atropine"); len(got) != 0 {
		t.Errorf("Journals(atropine) = %v, want empty", got)
	}
	if got := g.Mentions("ethanol", "bmj"); len(got) != 0 {
		t.Errorf("Mentions(ethanol, bmj) = %v, want empty", got)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := NewMentionGraph()
	g.Add("ethanol", "nature", mention("1"))
	g.Add("ethanol", "bmj", mention("2"))

	journals := g.Journals("ethanol")
	journals[0] = "mutated"
	if g.Journals("ethanol")[0] != "nature" {
		t.Error("mutating the returned journal slice changed the graph")
	}

	ms := g.Mentions("ethanol", "nature")
	ms[0].SourceID = "mutated"
	if g.Mentions("ethanol", "nature")[0].SourceID != "1" {
		t.Error("mutating the returned mention slice changed the graph")
	}
}

// --- JSON ---

func TestMarshalJSONKeyOrder(t *testing.T) {
	g := NewMentionGraph()
	// Insertion order deliberately reverse-alphabetical so a sorted
	// encoding would be detected.
	g.Add("zopiclone", "the lancet", mention("1"))
	g.Add("atropine", "nature", mention("2"))
	g.Add("zopiclone", "bmj", mention("3"))

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	if zi, ai := strings.Index(s, `"zopiclone"`), strings.Index(s, `"atropine"`); zi < 0 || ai < 0 || zi > ai {
		t.Errorf("drug keys out of insertion order: %s", s)
	}
	if li, bi := strings.Index(s, `"the lancet"`), strings.Index(s, `"bmj"`); li < 0 || bi < 0 || li > bi {
		t.Errorf("journal keys out of insertion order: %s", s)
	}
}

func TestMarshalJSONEmptyGraph(t *testing.T) {
	data, err := json.Marshal(NewMentionGraph())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty graph = %s, want {}", data)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := NewMentionGraph()
	g.Add("zopiclone", "the lancet", mention("1"))
	g.Add("atropine", "nature", mention("2"))
	g.Add("zopiclone", "bmj", mention("3"))
	g.Add("zopiclone", "bmj", Mention{Date: UnknownDate, PublicationTitle: "Untitled", SourceType: SourceClinicalTrials, SourceID: "NCT01"})

	first, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	loaded := NewMentionGraph()
	if err := json.Unmarshal(first, loaded); err != nil {
		t.Fatal(err)
	}

	second, err := json.MarshalIndent(loaded, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the document:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if loaded.TotalMentions() != g.TotalMentions() {
		t.Errorf("TotalMentions after round trip = %d, want %d", loaded.TotalMentions(), g.TotalMentions())
	}
}

func TestUnmarshalJSONPreservesEmptyLevels(t *testing.T) {
	doc := `{"ethanol":{"nature":[]},"atropine":{}}`

	g := NewMentionGraph()
	if err := json.Unmarshal([]byte(doc), g); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != doc {
		t.Errorf("round trip = %s, want %s", data, doc)
	}
}

func TestUnmarshalJSONReplacesExistingContent(t *testing.T) {
	g := NewMentionGraph()
	g.Add("stale", "old journal", mention("9"))

	if err := json.Unmarshal([]byte(`{"ethanol":{"nature":[]}}`), g); err != nil {
		t.Fatal(err)
	}
	if g.HasDrug("stale") {
		t.Error("unmarshal should replace prior content, not merge")
	}
	if !g.HasDrug("ethanol") {
		t.Error("unmarshal dropped the document content")
	}
}

func TestUnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"top-level array", `[]`},
		{"journal value not a list", `{"ethanol":{"nature":{}}}`},
		{"drug value not an object", `{"ethanol":[]}`},
		{"truncated", `{"ethanol":{"nature":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMentionGraph()
			if err := json.Unmarshal([]byte(tt.doc), g); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tt.doc)
			}
		})
	}
}

// --- Publication ---

func TestPublicationMention(t *testing.T) {
	p := Publication{
		ID:            "123",
		Title:         "a study of ethanol",
		OriginalTitle: "A Study of Ethanol",
		Journal:       "nature",
		Date:          "2020-01-01",
		SourceType:    SourcePubMedJSON,
	}

	m := p.Mention()
	if m.PublicationTitle != "A Study of Ethanol" {
		t.Errorf("PublicationTitle = %q, want the original title", m.PublicationTitle)
	}
	if m.Date != "2020-01-01" || m.SourceID != "123" || m.SourceType != SourcePubMedJSON {
		t.Errorf("Mention() = %+v, want fields copied from publication", m)
	}
}
