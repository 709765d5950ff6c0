// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits document text into ordered sentence spans with
// character offsets. Ambiguous boundaries split rather than merge; the
// minimum-length guard drops the resulting fragments.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// DefaultMinSentenceLen is the minimum span length applied when the
// config leaves it unset.
const DefaultMinSentenceLen = 8

// abbreviations lists lowercase tokens whose trailing period does not
// terminate a sentence ("et al." yields the token "al").
var abbreviations = map[string]bool{
	"e.g": true,
	"i.e": true,
	"etc": true,
	"al":  true,
	"vs":  true,
}

// Scanner yields sentence spans from one document, lazily and in
// document order. It is not restartable; create a new Scanner to
// re-segment.
type Scanner struct {
	doc    types.Document
	pos    int
	minLen int
	span   types.SentenceSpan
}

// NewScanner returns a Scanner over the document's text.
func NewScanner(doc types.Document, cfg types.SegmenterConfig) *Scanner {
	minLen := cfg.MinSentenceLen
	if minLen <= 0 {
		minLen = DefaultMinSentenceLen
	}
	return &Scanner{doc: doc, minLen: minLen}
}

// Scan advances to the next sentence span, returning false when the
// document is exhausted. Spans shorter than the configured minimum are
// skipped.
func (s *Scanner) Scan() bool {
	text := s.doc.Text
	for s.pos < len(text) {
		start := s.pos

		// Skip leading whitespace so offsets point at the sentence itself.
		for start < len(text) && isSpaceAt(text, start) {
			start++
		}
		if start >= len(text) {
			s.pos = len(text)
			return false
		}

		end := sentenceEnd(text, start)
		s.pos = end

		raw := strings.TrimRightFunc(text[start:end], unicode.IsSpace)
		if len(raw) < s.minLen {
			continue
		}

		s.span = types.SentenceSpan{
			DocumentID:  s.doc.ID,
			StartOffset: start,
			EndOffset:   start + len(raw),
			RawText:     raw,
		}
		return true
	}
	return false
}

// Span returns the span found by the last successful Scan.
func (s *Scanner) Span() types.SentenceSpan {
	return s.span
}

// All segments the whole document eagerly. Convenience for callers that
// want the full slice rather than the scanner.
func All(doc types.Document, cfg types.SegmenterConfig) []types.SentenceSpan {
	sc := NewScanner(doc, cfg)
	var spans []types.SentenceSpan
	for sc.Scan() {
		spans = append(spans, sc.Span())
	}
	return spans
}

// sentenceEnd returns the offset one past the end of the sentence
// starting at start: after terminal punctuation followed by whitespace
// and a capital letter, or at end of text.
func sentenceEnd(text string, start int) int {
	for i := start; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '?' && c != '!' {
			continue
		}
		if i+1 >= len(text) {
			return len(text)
		}
		if !isSpaceAt(text, i+1) {
			// Mid-token punctuation: decimals ("3.14"), version numbers,
			// file names. Never a boundary.
			continue
		}
		if c == '.' && isAbbreviation(text, i) {
			continue
		}
		if next, ok := firstRuneAfterSpace(text, i+1); ok && !unicode.IsUpper(next) {
			continue
		}
		return i + 1
	}
	return len(text)
}

// isAbbreviation reports whether the period at offset i ends an
// abbreviation rather than a sentence: a single uppercase initial
// ("A.") or a known abbreviation token ("e.g.", "et al.").
func isAbbreviation(text string, i int) bool {
	j := i
	for j > 0 && !isSpaceAt(text, j-1) {
		j--
	}
	// Strip opening punctuation so "(e.g." still matches.
	token := strings.TrimLeftFunc(text[j:i], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z' {
		return true
	}
	return abbreviations[strings.ToLower(strings.TrimRight(token, "."))]
}

// firstRuneAfterSpace returns the first non-whitespace rune at or after
// offset i, reporting false at end of text.
func firstRuneAfterSpace(text string, i int) (rune, bool) {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			return r, true
		}
		i += size
	}
	return 0, false
}

// isSpaceAt reports whether the rune starting at offset i is whitespace.
func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}
