package types

// IngestConfig holds the input file locations for the ingest stage.
type IngestConfig struct {
	// DrugsFile is the CSV file holding the drug name vocabulary.
	DrugsFile string `json:"drugs_file" yaml:"drugs_file"`

	// PubMedCSVFile is the PubMed publication list in CSV form.
	PubMedCSVFile string `json:"pubmed_csv_file" yaml:"pubmed_csv_file"`

	// PubMedJSONFile is the PubMed publication list in JSON form.
	PubMedJSONFile string `json:"pubmed_json_file" yaml:"pubmed_json_file"`

	// ClinicalTrialsFile is the clinical trials publication list in CSV form.
	ClinicalTrialsFile string `json:"clinical_trials_file" yaml:"clinical_trials_file"`
}

// OutputConfig holds the output locations for the pipeline.
type OutputConfig struct {
	// GraphFile is where the mention graph JSON is written (e.g.
	// "output/drug_mentions_graph.json").
	GraphFile string `json:"graph_file" yaml:"graph_file"`

	// IndexFile is the SQLite mention index database path.
	IndexFile string `json:"index_file" yaml:"index_file"`

	// ExportDir is the directory for flattened YAML/JSON exports.
	ExportDir string `json:"export_dir" yaml:"export_dir"`
}

// Placeholders overrides the values recorded when a source field is
// missing. Empty fields fall back to UnknownJournal and UnknownDate.
type Placeholders struct {
	Journal string `json:"journal" yaml:"journal"`
	Date    string `json:"date" yaml:"date"`
}

// JournalValue returns the configured journal placeholder or the default.
func (p Placeholders) JournalValue() string {
	if p.Journal != "" {
		return p.Journal
	}
	return UnknownJournal
}

// DateValue returns the configured date placeholder or the default.
func (p Placeholders) DateValue() string {
	if p.Date != "" {
		return p.Date
	}
	return UnknownDate
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Ingest       IngestConfig `json:"ingest" yaml:"ingest"`
	Output       OutputConfig `json:"output" yaml:"output"`
	Placeholders Placeholders `json:"placeholders" yaml:"placeholders"`
}
