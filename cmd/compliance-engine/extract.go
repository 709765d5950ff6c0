// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/compliance-engine/internal/detect"
	"github.com/pdiddy/compliance-engine/internal/export"
	"github.com/pdiddy/compliance-engine/internal/ingest"
	"github.com/pdiddy/compliance-engine/internal/manifest"
	"github.com/pdiddy/compliance-engine/internal/pipeline"
	"github.com/pdiddy/compliance-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [documents...]",
	Short: "Extract obligations from a batch of documents",
	Long: `Extract ingests the given documents (PDF, DOCX, ODT, RTF, or plain text),
segments them into sentences, detects obligation sentences by configured
keywords, deduplicates them across the batch, and exports the obligation
matrix with one citation per occurrence.

Documents are listed as arguments or in a YAML manifest (--manifest). The
batch is processed in submission order; a document that fails ingestion or
citation resolution is recorded in the outcome report and skipped.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("manifest", "", "YAML batch manifest listing documents")
	extractCmd.Flags().String("keywords", "", "obligation keywords (comma-separated, default: must,shall,required,mandatory)")
	extractCmd.Flags().Int("min-sentence-length", 0, "discard sentence fragments shorter than this (default 8)")
	extractCmd.Flags().Int("excerpt-length", 0, "citation excerpt length bound (default 200)")
	extractCmd.Flags().Int("workers", 0, "documents processed concurrently (default 1)")
	extractCmd.Flags().String("format", "", "export format: xlsx, csv, or sqlite (default xlsx)")
	extractCmd.Flags().String("output", "", "output directory (default: output)")
	extractCmd.Flags().String("summary", "", "also write a YAML run summary to this path")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	entries, batchName, m, err := batchEntries(cmd, args)
	if err != nil {
		return err
	}

	cfg := pipelineConfig(cmd, m)

	det, err := detect.NewKeywordDetector(cfg.Detector)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "ingesting %d document(s)\n", len(entries))
	sources := ingest.LoadAll(entries, cfg.Ingest)

	result, err := pipeline.Run(context.Background(), sources, det, cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, pipeline.ErrAllDocumentsFailed) {
			export.PrintReport(os.Stdout, nil, result.Report)
		}
		return err
	}

	path, err := export.Write(result.Records, result.Report, batchName, cfg.Export)
	if err != nil {
		return err
	}

	if cfg.Export.SummaryPath != "" {
		s := export.NewSummary(result.Records, result.Report, batchName, path)
		if err := export.WriteSummary(cfg.Export.SummaryPath, s); err != nil {
			return err
		}
	}

	export.PrintReport(os.Stdout, result.Records, result.Report)
	fmt.Fprintf(os.Stdout, "exported %s\n", path)
	return nil
}

// batchEntries resolves the document list from arguments and/or a
// manifest, keeping submission order: manifest documents first, then
// arguments.
func batchEntries(cmd *cobra.Command, args []string) ([]ingest.Entry, string, *manifest.Manifest, error) {
	manifestPath, _ := cmd.Flags().GetString("manifest")

	var entries []ingest.Entry
	var m *manifest.Manifest
	batchName := "batch"

	if manifestPath != "" {
		loaded, err := manifest.Read(manifestPath)
		if err != nil {
			return nil, "", nil, err
		}
		m = loaded
		entries = append(entries, m.Documents...)
		if m.Name != "" {
			batchName = m.Name
		}
	}
	for _, a := range args {
		entries = append(entries, ingest.Entry{Path: a})
	}

	if len(entries) == 0 {
		return nil, "", nil, fmt.Errorf("no documents: list files as arguments or use --manifest")
	}
	return entries, batchName, m, nil
}

// pipelineConfig assembles the run configuration. Precedence: flags,
// then the manifest, then the viper config file, then package defaults
// applied at use sites.
func pipelineConfig(cmd *cobra.Command, m *manifest.Manifest) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Segmenter: types.SegmenterConfig{
			MinSentenceLen: viper.GetInt("segmenter.min_sentence_len"),
		},
		Detector: types.DetectorConfig{
			Keywords: viperKeywords(),
		},
		Citation: types.CitationConfig{
			ExcerptLen: viper.GetInt("citation.excerpt_len"),
		},
		Matrix: types.MatrixConfig{
			DefaultOwner:   viper.GetString("matrix.default_owner"),
			DefaultDueDate: viper.GetString("matrix.default_due_date"),
			DefaultStatus:  viper.GetString("matrix.default_status"),
		},
		Ingest: types.IngestConfig{
			PageTimeoutSeconds: viper.GetInt("ingest.page_timeout_seconds"),
		},
		Export: types.ExportConfig{
			Format:    types.ExportFormat(viper.GetString("export.format")),
			OutputDir: viper.GetString("export.output_dir"),
		},
		Workers: viper.GetInt("workers"),
	}

	if m != nil {
		if len(m.Keywords) > 0 {
			cfg.Detector.Keywords = m.Keywords
		}
		if m.OutputDir != "" {
			cfg.Export.OutputDir = m.OutputDir
		}
	}

	if kw, _ := cmd.Flags().GetString("keywords"); kw != "" {
		cfg.Detector.Keywords = splitKeywords(kw)
	}
	if n, _ := cmd.Flags().GetInt("min-sentence-length"); n > 0 {
		cfg.Segmenter.MinSentenceLen = n
	}
	if n, _ := cmd.Flags().GetInt("excerpt-length"); n > 0 {
		cfg.Citation.ExcerptLen = n
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		cfg.Workers = n
	}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		cfg.Export.Format = types.ExportFormat(f)
	}
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		cfg.Export.OutputDir = dir
	}
	if path, _ := cmd.Flags().GetString("summary"); path != "" {
		cfg.Export.SummaryPath = path
	}

	return cfg
}

func viperKeywords() []string {
	if kw := viper.GetStringSlice("detector.keywords"); len(kw) > 0 {
		return kw
	}
	return nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
