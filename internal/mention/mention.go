// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mention scans publication titles for drug vocabulary names
// and folds the hits into a mention graph.
package mention

import (
	"regexp"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// BuildGraph matches every vocabulary name against every publication
// title and returns the resulting graph. Names and titles must already
// be normalized by the ingest loaders; each name is anchored on word
// boundaries, so "epinephrine" does not hit "norepinephrine". Vocabulary
// order fixes the drug order in the graph, publication order fixes the
// journal and mention order under each drug, and identical occurrences
// of a drug in a journal collapse to one entry.
func BuildGraph(drugs []string, pubs []types.Publication) *types.MentionGraph {
	g := types.NewMentionGraph()
	idx := indexTitles(pubs)

	for _, drug := range drugs {
		if drug == "" {
			continue
		}
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(drug) + `\b`)
		for _, i := range idx.candidates(drug) {
			pub := pubs[i]
			if !pattern.MatchString(pub.Title) {
				continue
			}
			g.Add(drug, pub.Journal, pub.Mention())
		}
	}
	return g
}
