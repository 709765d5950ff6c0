// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe collapses near-identical obligation candidates across
// a batch into groups keyed by normalized text, preserving every source
// citation.
package dedupe

import (
	"strings"
	"unicode"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// Group is one unique obligation: the canonical text from its
// first-encountered candidate plus the citations of every occurrence.
type Group struct {
	// Key is the normalized text the group is keyed by.
	Key string

	// Text is the canonical sentence, from the first-seen candidate.
	Text string

	// Keywords holds the detector labels matched by any member, in
	// first-match order without duplicates.
	Keywords []string

	// Citations holds one entry per occurrence, in encounter order.
	// Occurrences are never merged: the same document citing the same
	// sentence twice yields two citations.
	Citations []types.Citation
}

// Collapse groups candidates by normalized text key, in first-encounter
// order across groups. Candidates must arrive in processing order
// (document-submission order, span order within a document). Candidates
// whose normalized key is empty are discarded.
func Collapse(candidates []types.ObligationCandidate) []Group {
	index := make(map[string]int) // key → position in groups
	var groups []Group

	for _, c := range candidates {
		key := Normalize(c.Span.RawText)
		if key == "" {
			continue
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:  key,
				Text: strings.TrimSpace(c.Span.RawText),
			})
		}
		groups[i].Citations = append(groups[i].Citations, c.Citation)
		groups[i].Keywords = mergeKeywords(groups[i].Keywords, c.Keywords)
	}

	return groups
}

// Normalize derives the dedup key: lowercase, internal whitespace runs
// collapsed to single spaces, leading/trailing whitespace stripped, and
// trailing punctuation dropped.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	collapsed := strings.Join(strings.Fields(lowered), " ")
	return strings.TrimRightFunc(collapsed, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// mergeKeywords appends the keywords missing from have, preserving
// first-match order.
func mergeKeywords(have, add []string) []string {
	for _, kw := range add {
		found := false
		for _, h := range have {
			if h == kw {
				found = true
				break
			}
		}
		if !found {
			have = append(have, kw)
		}
	}
	return have
}
