// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphquery answers analytics questions over a built mention
// graph without modifying it.
package graphquery

import (
	"sort"
	"strings"

	"github.com/pdiddy/mention-engine/internal/normalize"
	"github.com/pdiddy/mention-engine/pkg/types"
)

// DefaultSourcePrefix selects the PubMed-backed sources, covering both
// the CSV and JSON loaders.
const DefaultSourcePrefix = "pubmed"

// JournalWithMostDrugs returns the journal that mentions the greatest
// number of distinct drugs, with that count. ok is false when the graph
// is nil or holds no journals. On a tie, the journal encountered first
// in stored graph order wins.
func JournalWithMostDrugs(g *types.MentionGraph) (journal string, drugs int, ok bool) {
	if g == nil {
		return "", 0, false
	}

	var order []string
	byJournal := make(map[string]map[string]struct{})
	for _, drug := range g.Drugs() {
		for _, journal := range g.Journals(drug) {
			set, seen := byJournal[journal]
			if !seen {
				set = make(map[string]struct{})
				byJournal[journal] = set
				order = append(order, journal)
			}
			set[drug] = struct{}{}
		}
	}
	if len(order) == 0 {
		return "", 0, false
	}

	best, bestCount := "", 0
	for _, journal := range order {
		if n := len(byJournal[journal]); n > bestCount {
			best, bestCount = journal, n
		}
	}
	return best, bestCount, true
}

// RelatedDrugs returns the drugs other than target that share a journal
// with it, counting only journals where both the target's mention and
// the candidate's mention come from a source whose type carries
// sourcePrefix. An empty prefix means DefaultSourcePrefix. The target is
// normalized before lookup; an unknown target yields nothing. The result
// is sorted.
func RelatedDrugs(g *types.MentionGraph, target, sourcePrefix string) []string {
	if sourcePrefix == "" {
		sourcePrefix = DefaultSourcePrefix
	}
	name := normalize.Normalize(target)
	if g == nil || !g.HasDrug(name) {
		return nil
	}

	shared := make(map[string]struct{})
	for _, journal := range g.Journals(name) {
		if hasSourcePrefix(g.Mentions(name, journal), sourcePrefix) {
			shared[journal] = struct{}{}
		}
	}
	if len(shared) == 0 {
		return nil
	}

	var related []string
	for _, drug := range g.Drugs() {
		if drug == name {
			continue
		}
		for _, journal := range g.Journals(drug) {
			if _, ok := shared[journal]; !ok {
				continue
			}
			if hasSourcePrefix(g.Mentions(drug, journal), sourcePrefix) {
				related = append(related, drug)
				break
			}
		}
	}
	sort.Strings(related)
	return related
}

func hasSourcePrefix(mentions []types.Mention, prefix string) bool {
	for _, m := range mentions {
		if strings.HasPrefix(string(m.SourceType), prefix) {
			return true
		}
	}
	return false
}
