// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans source text before matching and canonicalizes
// publication dates drawn from heterogeneous sources.
package normalize

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// Normalize lowercases s and trims surrounding whitespace. Interior
// whitespace is left alone so multi-word names keep their exact shape.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// dateLayouts are tried in order; the first that parses wins. Day-first
// layouts precede month-first, so "05/03/2020" resolves to March 5th.
// Unpadded layouts accept padded digits too, so one entry covers both.
var dateLayouts = []string{
	"2/1/2006",
	"1/2/2006",
	"2006-1-2",
	"2006-2-1",
	"2 January 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2 2006",
}

// canonicalDate is the output layout for parsed dates.
const canonicalDate = "2006-01-02"

// DateParser canonicalizes source dates. The zero value is usable: absent
// dates become types.UnknownDate and diagnostics are discarded.
type DateParser struct {
	// Unknown is returned for empty input. Empty means types.UnknownDate.
	Unknown string

	// Warn receives one line per unparseable date. Nil discards.
	Warn io.Writer
}

// Parse returns raw canonicalized to "YYYY-MM-DD". Commas are stripped
// first, so "January 1, 2020" parses with the comma-free layouts. Empty
// input returns the unknown placeholder without a warning. Input matching
// none of the known layouts is returned cleaned but otherwise unchanged,
// with a warning, so a bad date never costs the record.
func (p DateParser) Parse(raw string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		if p.Unknown != "" {
			return p.Unknown
		}
		return types.UnknownDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(canonicalDate)
		}
	}

	if p.Warn != nil {
		fmt.Fprintf(p.Warn, "warning: unparseable date %q kept as-is\n", cleaned)
	}
	return cleaned
}
