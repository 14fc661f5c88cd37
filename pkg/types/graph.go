// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MentionGraph maps drug name → journal name → mention list. Both key
// levels and each mention list preserve insertion order, and the order
// survives a JSON round trip. Queries that break ties by position depend
// on this, so the graph never exposes its maps directly.
type MentionGraph struct {
	drugOrder    []string
	journalOrder map[string][]string
	mentions     map[string]map[string][]Mention
	seen         map[occurrence]struct{}
	total        int
}

// occurrence is the dedup key: a mention is a duplicate only when every
// field, including the journal it is filed under, is identical.
type occurrence struct {
	drug    string
	journal string
	mention Mention
}

// NewMentionGraph returns an empty graph.
func NewMentionGraph() *MentionGraph {
	return &MentionGraph{
		journalOrder: make(map[string][]string),
		mentions:     make(map[string]map[string][]Mention),
		seen:         make(map[occurrence]struct{}),
	}
}

// Add records one mention of drug in journal. It reports whether the
// mention was inserted; an exact duplicate of an existing entry under the
// same drug and journal is dropped.
func (g *MentionGraph) Add(drug, journal string, m Mention) bool {
	key := occurrence{drug: drug, journal: journal, mention: m}
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}
	g.ensureJournal(drug, journal)
	g.mentions[drug][journal] = append(g.mentions[drug][journal], m)
	g.total++
	return true
}

func (g *MentionGraph) ensureDrug(drug string) {
	if _, ok := g.mentions[drug]; ok {
		return
	}
	g.drugOrder = append(g.drugOrder, drug)
	g.mentions[drug] = make(map[string][]Mention)
}

func (g *MentionGraph) ensureJournal(drug, journal string) {
	g.ensureDrug(drug)
	if _, ok := g.mentions[drug][journal]; ok {
		return
	}
	g.journalOrder[drug] = append(g.journalOrder[drug], journal)
	g.mentions[drug][journal] = []Mention{}
}

// HasDrug reports whether drug appears in the graph.
func (g *MentionGraph) HasDrug(drug string) bool {
	_, ok := g.mentions[drug]
	return ok
}

// Len returns the number of drugs in the graph.
func (g *MentionGraph) Len() int {
	return len(g.drugOrder)
}

// TotalMentions returns the number of stored mentions across all drugs.
func (g *MentionGraph) TotalMentions() int {
	return g.total
}

// Drugs returns the drug names in insertion order.
func (g *MentionGraph) Drugs() []string {
	out := make([]string, len(g.drugOrder))
	copy(out, g.drugOrder)
	return out
}

// Journals returns the journals recorded for drug in insertion order.
func (g *MentionGraph) Journals(drug string) []string {
	order := g.journalOrder[drug]
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Mentions returns the mention list for drug in journal, in insertion order.
func (g *MentionGraph) Mentions(drug, journal string) []Mention {
	ms := g.mentions[drug][journal]
	out := make([]Mention, len(ms))
	copy(out, ms)
	return out
}

// MarshalJSON encodes the graph as a nested object with keys in insertion
// order. encoding/json would sort map keys, so the object is assembled by
// hand from the order slices.
func (g *MentionGraph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, drug := range g.drugOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, drug); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, journal := range g.journalOrder[drug] {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, journal); err != nil {
				return nil, err
			}
			if err := encodeValue(&buf, g.mentions[drug][journal]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	if err := encodeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

// encodeValue appends v to buf as JSON without HTML escaping, so titles
// holding "&" or "<" keep their source bytes in the graph file.
func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON decodes a nested drug → journal → mentions object,
// preserving the key order found in the document. Duplicate mentions in
// the document are collapsed the same way Add collapses them.
func (g *MentionGraph) UnmarshalJSON(data []byte) error {
	fresh := NewMentionGraph()
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("mention graph: %w", err)
	}

	for dec.More() {
		drug, err := decodeKey(dec)
		if err != nil {
			return fmt.Errorf("mention graph: %w", err)
		}
		fresh.ensureDrug(drug)

		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("mention graph: drug %q: %w", drug, err)
		}
		for dec.More() {
			journal, err := decodeKey(dec)
			if err != nil {
				return fmt.Errorf("mention graph: drug %q: %w", drug, err)
			}
			var ms []Mention
			if err := dec.Decode(&ms); err != nil {
				return fmt.Errorf("mention graph: drug %q, journal %q: %w", drug, journal, err)
			}
			fresh.ensureJournal(drug, journal)
			for _, m := range ms {
				fresh.Add(drug, journal, m)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("mention graph: drug %q: %w", drug, err)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("mention graph: %w", err)
	}

	*g = *fresh
	return nil
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
