// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect classifies sentence spans as compliance obligations.
// Detection is a strategy interface so the keyword matcher can be
// swapped for a scored model-based variant without touching the
// segmenter, deduplicator, or assembler.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// DefaultKeywords is the keyword set applied when the config leaves it
// unset.
var DefaultKeywords = []string{"must", "shall", "required", "mandatory"}

// DefaultThreshold is the acceptance threshold applied to scored
// detectors when the config leaves it unset.
const DefaultThreshold = 0.5

// Detector classifies sentence spans. Implementations must not panic
// on malformed input; empty and whitespace-only spans classify false.
type Detector interface {
	// Classify reports whether the span expresses an obligation.
	Classify(span types.SentenceSpan) bool

	// Matches returns the keyword or pattern labels that triggered
	// classification, in configuration order. Empty when Classify
	// would return false.
	Matches(span types.SentenceSpan) []string
}

// ConfigurationError reports an invalid detector configuration. Raised
// at construction, before any document is processed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("detector configuration: %s", e.Reason)
}

// KeywordDetector matches a case-insensitive keyword set on whole-word
// boundaries, so "required" does not match inside "prerequisites".
type KeywordDetector struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewKeywordDetector compiles the configured keyword set. The set must
// be non-empty and contain no blank entries.
func NewKeywordDetector(cfg types.DetectorConfig) (*KeywordDetector, error) {
	keywords := cfg.Keywords
	if keywords == nil {
		keywords = DefaultKeywords
	}
	if len(keywords) == 0 {
		return nil, &ConfigurationError{Reason: "keyword set is empty"}
	}

	d := &KeywordDetector{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return nil, &ConfigurationError{Reason: "keyword set contains a blank entry"}
		}
		d.keywords = append(d.keywords, kw)
		d.patterns = append(d.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return d, nil
}

// Keywords returns the configured keyword set in configuration order.
func (d *KeywordDetector) Keywords() []string {
	return d.keywords
}

// Classify reports whether any configured keyword appears in the span
// as a whole word.
func (d *KeywordDetector) Classify(span types.SentenceSpan) bool {
	text := span.RawText
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, p := range d.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Matches returns every configured keyword found in the span.
func (d *KeywordDetector) Matches(span types.SentenceSpan) []string {
	text := span.RawText
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var matched []string
	for i, p := range d.patterns {
		if p.MatchString(text) {
			matched = append(matched, d.keywords[i])
		}
	}
	return matched
}

// Scorer rates a span's likelihood of being an obligation in [0,1].
// Extension point for model-based detection.
type Scorer interface {
	// Label names the scorer for the matched-keywords field of
	// accepted candidates (e.g. "model").
	Label() string

	// Score returns a confidence in [0,1].
	Score(span types.SentenceSpan) float64
}

// ThresholdDetector adapts a Scorer to the Detector interface: spans
// scoring at or above the threshold classify as obligations.
type ThresholdDetector struct {
	scorer    Scorer
	threshold float64
}

// NewThresholdDetector validates the threshold and wraps the scorer.
// A zero threshold in the config selects the default.
func NewThresholdDetector(scorer Scorer, cfg types.DetectorConfig) (*ThresholdDetector, error) {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("threshold %v outside [0,1]", threshold)}
	}
	return &ThresholdDetector{scorer: scorer, threshold: threshold}, nil
}

// Classify reports whether the scorer's confidence meets the threshold.
func (d *ThresholdDetector) Classify(span types.SentenceSpan) bool {
	if strings.TrimSpace(span.RawText) == "" {
		return false
	}
	return d.scorer.Score(span) >= d.threshold
}

// Matches returns the scorer's label for accepted spans.
func (d *ThresholdDetector) Matches(span types.SentenceSpan) []string {
	if !d.Classify(span) {
		return nil
	}
	return []string{d.scorer.Label()}
}
