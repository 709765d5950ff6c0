package types

// SegmenterConfig holds settings for sentence segmentation.
type SegmenterConfig struct {
	// MinSentenceLen is the minimum span length in characters; shorter
	// fragments (headers, list bullets) are discarded (default 8).
	MinSentenceLen int `json:"min_sentence_len" yaml:"min_sentence_len"`
}

// DetectorConfig holds settings for obligation detection.
type DetectorConfig struct {
	// Keywords is the case-insensitive keyword set matched on whole-word
	// boundaries (default: must, shall, required, mandatory). Must be
	// non-empty.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Threshold is the acceptance threshold in [0,1] for scored
	// detector variants (default 0.5). Ignored by the keyword detector.
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// CitationConfig holds settings for citation resolution.
type CitationConfig struct {
	// ExcerptLen bounds the excerpt length in characters (default 200).
	// Longer sentences are truncated at a word boundary with an
	// ellipsis marker.
	ExcerptLen int `json:"excerpt_len" yaml:"excerpt_len"`
}

// MatrixConfig holds the default field values the assembler stamps on
// every record ("Not Started" when unset).
type MatrixConfig struct {
	DefaultOwner   string `json:"default_owner" yaml:"default_owner"`
	DefaultDueDate string `json:"default_due_date" yaml:"default_due_date"`
	DefaultStatus  string `json:"default_status" yaml:"default_status"`
}

// IngestConfig holds settings for document ingestion.
type IngestConfig struct {
	// PageTimeoutSeconds bounds text extraction for a single PDF page
	// (default 10). Pages that exceed it are reported as an ingestion
	// failure for the document.
	PageTimeoutSeconds int `json:"page_timeout_seconds" yaml:"page_timeout_seconds"`
}

// ExportFormat selects the export artifact format.
type ExportFormat string

const (
	FormatXLSX   ExportFormat = "xlsx"
	FormatCSV    ExportFormat = "csv"
	FormatSQLite ExportFormat = "sqlite"
)

// ExportConfig holds settings for matrix export.
type ExportConfig struct {
	// Format selects the artifact: xlsx, csv, or sqlite (default xlsx).
	Format ExportFormat `json:"format" yaml:"format"`

	// OutputDir is the directory export artifacts are written to
	// (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// SummaryPath, when non-empty, is where the YAML run summary is
	// written alongside the artifact.
	SummaryPath string `json:"summary_path,omitempty" yaml:"summary_path,omitempty"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Segmenter SegmenterConfig `json:"segmenter" yaml:"segmenter"`
	Detector  DetectorConfig  `json:"detector" yaml:"detector"`
	Citation  CitationConfig  `json:"citation" yaml:"citation"`
	Matrix    MatrixConfig    `json:"matrix" yaml:"matrix"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Export    ExportConfig    `json:"export" yaml:"export"`

	// Workers is the number of documents processed concurrently
	// (default 1). Results are merged back in submission order, so the
	// output is identical for any worker count.
	Workers int `json:"workers" yaml:"workers"`
}
