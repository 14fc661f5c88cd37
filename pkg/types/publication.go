// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceType identifies the loader that produced a publication record.
type SourceType string

const (
	SourcePubMedCSV      SourceType = "pubmed_csv"
	SourcePubMedJSON     SourceType = "pubmed_json"
	SourceClinicalTrials SourceType = "clinical_trials_csv"
)

// Placeholder values recorded when a source field is missing or unusable.
const (
	// UnknownJournal stands in for an empty journal name.
	UnknownJournal = "unknown_journal"

	// UnknownDate stands in for an absent date.
	UnknownDate = "UNKNOWN_DATE"
)

// Publication is one title record drawn from an input source, after
// field cleanup. Loaders emit these; the matcher consumes them.
type Publication struct {
	// ID is the source identifier. When a row carries none, the loader
	// synthesizes "<source_type>_item_<n>_no_id" from the row position.
	ID string `json:"id" yaml:"id"`

	// Title is the lowercased, trimmed title used for matching.
	Title string `json:"title" yaml:"title"`

	// OriginalTitle is the title exactly as it appeared in the source.
	OriginalTitle string `json:"original_title" yaml:"original_title"`

	// Journal is the publishing journal, or UnknownJournal when the source
	// row had none.
	Journal string `json:"journal" yaml:"journal"`

	// Date is the publication date as "YYYY-MM-DD" when it parsed, the raw
	// source value when it did not, or UnknownDate when absent.
	Date string `json:"date" yaml:"date"`

	// SourceType records which loader produced the record.
	SourceType SourceType `json:"source_type" yaml:"source_type"`
}

// Mention is one occurrence of a drug name in one publication title. The
// JSON field names are part of the graph file format.
type Mention struct {
	// Date is the publication date, already canonicalized by the loader.
	Date string `json:"date" yaml:"date"`

	// PublicationTitle is the original (non-lowercased) title.
	PublicationTitle string `json:"publication_title" yaml:"publication_title"`

	// SourceType records which loader produced the publication.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// SourceID is the publication identifier within its source.
	SourceID string `json:"source_id" yaml:"source_id"`
}

// Mention returns the occurrence record for a match against p's title.
func (p Publication) Mention() Mention {
	return Mention{
		Date:             p.Date,
		PublicationTitle: p.OriginalTitle,
		SourceType:       p.SourceType,
		SourceID:         p.ID,
	}
}
