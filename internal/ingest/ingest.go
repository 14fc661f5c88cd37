// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads the drug vocabulary and publication records from
// the configured input files and standardizes them for matching. Each
// file format is a Source; record-level defects degrade to placeholders
// or skips so one bad row never fails a batch.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/mention-engine/internal/normalize"
	"github.com/pdiddy/mention-engine/pkg/types"
)

// Source loads publication records from one input file.
type Source interface {
	// Name identifies the source in warnings and summaries.
	Name() string

	// Load reads every usable record from the file. Only file-level
	// problems (unreadable, unparseable document) return an error.
	Load(opts Options) ([]types.Publication, error)
}

// Options carries shared loader settings.
type Options struct {
	// Placeholders substitutes for missing journal and date values.
	Placeholders types.Placeholders

	// Warn receives progress and warning lines. Nil discards them.
	Warn io.Writer
}

func (o Options) writer() io.Writer {
	if o.Warn == nil {
		return io.Discard
	}
	return o.Warn
}

// Summary holds aggregate counts from one LoadPublications run.
type Summary struct {
	// Loaded is the number of usable publication records.
	Loaded int

	// FailedSources is the number of sources that could not be read.
	FailedSources int
}

// LoadPublications runs every source in order and concatenates the
// results. A source that fails to load is dropped with a warning; the
// batch continues, so a missing input file degrades to zero records
// rather than an error.
func LoadPublications(sources []Source, opts Options) ([]types.Publication, Summary) {
	w := opts.writer()

	var (
		all []types.Publication
		sum Summary
	)
	for _, src := range sources {
		pubs, err := src.Load(opts)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping source %s: %v\n", src.Name(), err)
			sum.FailedSources++
			continue
		}
		fmt.Fprintf(w, "loaded %s: %d publication(s)\n", src.Name(), len(pubs))
		all = append(all, pubs...)
		sum.Loaded += len(pubs)
	}
	return all, sum
}

// DefaultSources returns the standard source list in load order: PubMed
// CSV, PubMed JSON, clinical trials CSV. Sources without a configured
// path are omitted.
func DefaultSources(cfg types.IngestConfig) []Source {
	var sources []Source
	if cfg.PubMedCSVFile != "" {
		sources = append(sources, CSVSource{Path: cfg.PubMedCSVFile, Type: types.SourcePubMedCSV})
	}
	if cfg.PubMedJSONFile != "" {
		sources = append(sources, JSONSource{Path: cfg.PubMedJSONFile, Type: types.SourcePubMedJSON})
	}
	if cfg.ClinicalTrialsFile != "" {
		sources = append(sources, CSVSource{
			Path:       cfg.ClinicalTrialsFile,
			TitleField: "scientific_title",
			Type:       types.SourceClinicalTrials,
		})
	}
	return sources
}

// recordBuilder assembles Publications from raw source fields. It tracks
// the record position so placeholder ids stay stable, and counts rows
// dropped for having no usable title.
type recordBuilder struct {
	source  types.SourceType
	journal string
	dates   normalize.DateParser
	index   int
	skipped int
}

func newRecordBuilder(source types.SourceType, opts Options) *recordBuilder {
	return &recordBuilder{
		source:  source,
		journal: opts.Placeholders.JournalValue(),
		dates: normalize.DateParser{
			Unknown: opts.Placeholders.DateValue(),
			Warn:    opts.Warn,
		},
	}
}

// build standardizes one source row. ok is false when the record has no
// title left after normalization; skipped rows still consume a position,
// so the ids of the rows after them do not shift.
func (b *recordBuilder) build(id, title, journal, date string) (types.Publication, bool) {
	idx := b.index
	b.index++

	matchTitle := normalize.Normalize(title)
	if matchTitle == "" {
		b.skipped++
		return types.Publication{}, false
	}

	cleanID := strings.TrimSpace(id)
	if cleanID == "" {
		cleanID = fmt.Sprintf("%s_item_%d_no_id", b.source, idx)
	}

	cleanJournal := normalize.Normalize(journal)
	if cleanJournal == "" {
		cleanJournal = b.journal
	}

	return types.Publication{
		ID:            cleanID,
		Title:         matchTitle,
		OriginalTitle: title,
		Journal:       cleanJournal,
		Date:          b.dates.Parse(date),
		SourceType:    b.source,
	}, true
}

// finish writes the aggregate skip warning for one source, if any rows
// were dropped.
func (b *recordBuilder) finish(name string, opts Options) {
	if b.skipped == 0 {
		return
	}
	fmt.Fprintf(opts.writer(), "warning: %s: dropped %d record(s) with empty titles\n", name, b.skipped)
}
