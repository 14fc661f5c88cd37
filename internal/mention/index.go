// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mention

import "github.com/pdiddy/mention-engine/pkg/types"

// titleIndex maps each word token to the publications whose titles
// contain it, in publication order. A title that matches a word-boundary
// pattern always contains the pattern's first token whole, so looking up
// that token prunes the scan without changing its outcome.
type titleIndex struct {
	postings map[string][]int
	all      []int
}

func indexTitles(pubs []types.Publication) *titleIndex {
	idx := &titleIndex{
		postings: make(map[string][]int),
		all:      make([]int, len(pubs)),
	}
	for i, pub := range pubs {
		idx.all[i] = i
		seen := make(map[string]struct{})
		for _, tok := range tokenize(pub.Title) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			idx.postings[tok] = append(idx.postings[tok], i)
		}
	}
	return idx
}

// candidates returns the publications that can match a pattern built
// from name, in publication order. A name without word characters
// cannot be pruned and falls back to the full list.
func (idx *titleIndex) candidates(name string) []int {
	tok := firstToken(name)
	if tok == "" {
		return idx.all
	}
	return idx.postings[tok]
}

// tokenize splits s into maximal runs of word characters, the same
// character class the matching patterns treat as word-internal.
func tokenize(s string) []string {
	var tokens []string
	start := -1
	for i, r := range s {
		if isWordChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func firstToken(s string) string {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

func isWordChar(r rune) bool {
	return r == '_' ||
		('0' <= r && r <= '9') ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z')
}
