package dedupe

import (
	"testing"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

func candidate(docID, text string, start int, keywords ...string) types.ObligationCandidate {
	return types.ObligationCandidate{
		Span: types.SentenceSpan{
			DocumentID:  docID,
			StartOffset: start,
			EndOffset:   start + len(text),
			RawText:     text,
		},
		Keywords: keywords,
		Citation: types.Citation{
			DocumentID:  docID,
			StartOffset: start,
			EndOffset:   start + len(text),
			Excerpt:     text,
		},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Vendors MUST Encrypt", "vendors must encrypt"},
		{"collapses whitespace", "a  b\t c\n d", "a b c d"},
		{"strips surrounding whitespace", "  data at rest  ", "data at rest"},
		{"strips trailing punctuation", "systems shall enforce MFA.", "systems shall enforce mfa"},
		{"strips stacked punctuation", "is this required?!", "is this required"},
		{"keeps internal punctuation", "third-party (vendor) access", "third-party (vendor) access"},
		{"degenerate", " ?!. ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseGroupsAcrossDocuments(t *testing.T) {
	candidates := []types.ObligationCandidate{
		candidate("doc-a", "All systems shall enforce MFA.", 0, "shall"),
		candidate("doc-a", "Backups must be encrypted.", 40, "must"),
		candidate("doc-b", "All systems SHALL enforce MFA.", 12, "shall"),
	}

	groups := Collapse(candidates)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	mfa := groups[0]
	if mfa.Text != "All systems shall enforce MFA." {
		t.Errorf("canonical text = %q, want first-seen form", mfa.Text)
	}
	if len(mfa.Citations) != 2 {
		t.Fatalf("got %d citations, want 2", len(mfa.Citations))
	}
	if mfa.Citations[0].DocumentID != "doc-a" || mfa.Citations[1].DocumentID != "doc-b" {
		t.Errorf("citations out of encounter order: %+v", mfa.Citations)
	}

	if groups[1].Text != "Backups must be encrypted." {
		t.Errorf("group order not first-encounter: %q", groups[1].Text)
	}
}

func TestCollapseKeepsRepeatOccurrencesInOneDocument(t *testing.T) {
	candidates := []types.ObligationCandidate{
		candidate("doc-a", "Access logs must be retained.", 0, "must"),
		candidate("doc-a", "Access logs must be retained.", 200, "must"),
	}
	groups := Collapse(candidates)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Citations) != 2 {
		t.Fatalf("got %d citations, want 2 (one per occurrence)", len(groups[0].Citations))
	}
	if groups[0].Citations[0].StartOffset == groups[0].Citations[1].StartOffset {
		t.Error("citations were merged")
	}
}

func TestCollapseDiscardsDegenerateKeys(t *testing.T) {
	groups := Collapse([]types.ObligationCandidate{
		candidate("doc-a", "...", 0, "must"),
		candidate("doc-a", "Patching is required.", 10, "required"),
	})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (degenerate discarded)", len(groups))
	}
	if groups[0].Text != "Patching is required." {
		t.Errorf("surviving group = %q", groups[0].Text)
	}
}

func TestCollapseMergesKeywords(t *testing.T) {
	candidates := []types.ObligationCandidate{
		candidate("doc-a", "Encryption is required.", 0, "required"),
		candidate("doc-b", "Encryption is REQUIRED!", 0, "required", "mandatory"),
	}
	groups := Collapse(candidates)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	want := []string{"required", "mandatory"}
	if len(groups[0].Keywords) != len(want) {
		t.Fatalf("Keywords = %q, want %q", groups[0].Keywords, want)
	}
	for i := range want {
		if groups[0].Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, groups[0].Keywords[i], want[i])
		}
	}
}

func TestCollapseIsIdempotent(t *testing.T) {
	candidates := []types.ObligationCandidate{
		candidate("doc-a", "All systems shall enforce MFA.", 0, "shall"),
		candidate("doc-b", "All systems shall enforce MFA.", 0, "shall"),
		candidate("doc-b", "Backups must be encrypted.", 50, "must"),
	}
	first := Collapse(candidates)

	// Re-feed the groups' canonical output as candidates.
	var refeed []types.ObligationCandidate
	for _, g := range first {
		for _, c := range g.Citations {
			refeed = append(refeed, types.ObligationCandidate{
				Span:     types.SentenceSpan{DocumentID: c.DocumentID, RawText: g.Text},
				Keywords: g.Keywords,
				Citation: c,
			})
		}
	}
	second := Collapse(refeed)

	if len(second) != len(first) {
		t.Fatalf("got %d groups after re-collapse, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i].Key != first[i].Key || second[i].Text != first[i].Text {
			t.Errorf("group[%d] changed: %+v vs %+v", i, second[i], first[i])
		}
		if len(second[i].Citations) != len(first[i].Citations) {
			t.Errorf("group[%d] citation count changed", i)
		}
	}
}
