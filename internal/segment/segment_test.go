package segment

import (
	"strings"
	"testing"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

func doc(text string) types.Document {
	return types.Document{ID: "doc-1", Text: text}
}

func rawTexts(spans []types.SentenceSpan) []string {
	var out []string
	for _, s := range spans {
		out = append(out, s.RawText)
	}
	return out
}

func TestAll(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "Vendors must encrypt data at rest. This is informational.",
			want: []string{"Vendors must encrypt data at rest.", "This is informational."},
		},
		{
			name: "question and exclamation",
			text: "Is MFA enforced? All systems shall enforce it! Review quarterly.",
			want: []string{"Is MFA enforced?", "All systems shall enforce it!", "Review quarterly."},
		},
		{
			name: "no terminal punctuation",
			text: "Access reviews are mandatory for privileged accounts",
			want: []string{"Access reviews are mandatory for privileged accounts"},
		},
		{
			name: "abbreviation eg not a boundary",
			text: "Sensitive data (e.g. Customer records) must be encrypted. Also masked.",
			want: []string{"Sensitive data (e.g. Customer records) must be encrypted.", "Also masked."},
		},
		{
			name: "single initial not a boundary",
			text: "Contact J. Smith for approval. Records must be retained.",
			want: []string{"Contact J. Smith for approval.", "Records must be retained."},
		},
		{
			name: "decimal number not a boundary",
			text: "Keys must be rotated every 3.5 months per policy. Review annually.",
			want: []string{"Keys must be rotated every 3.5 months per policy.", "Review annually."},
		},
		{
			name: "lowercase continuation not a boundary",
			text: "See sec. two for details on required controls.",
			want: []string{"See sec. two for details on required controls."},
		},
		{
			name: "et al not a boundary",
			text: "Smith et al. Reported the control gap. Patching is required.",
			want: []string{"Smith et al. Reported the control gap.", "Patching is required."},
		},
		{
			name: "short fragments dropped",
			text: "1. Intro. Vendors must encrypt backups. 2. End.",
			want: []string{"Vendors must encrypt backups."},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawTexts(All(doc(tt.text), types.SegmenterConfig{}))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d spans %q, want %d %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSpanOffsets(t *testing.T) {
	text := "  Vendors must encrypt data at rest.  This is informational. "
	spans := All(doc(text), types.SegmenterConfig{})
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for i, s := range spans {
		if s.DocumentID != "doc-1" {
			t.Errorf("span[%d].DocumentID = %q", i, s.DocumentID)
		}
		if got := text[s.StartOffset:s.EndOffset]; got != s.RawText {
			t.Errorf("span[%d] offsets [%d,%d) slice %q, RawText %q",
				i, s.StartOffset, s.EndOffset, got, s.RawText)
		}
		if strings.TrimSpace(s.RawText) != s.RawText {
			t.Errorf("span[%d].RawText %q not trimmed", i, s.RawText)
		}
	}
	if spans[1].StartOffset <= spans[0].EndOffset-1 {
		t.Errorf("spans out of order: %+v", spans)
	}
}

func TestMinSentenceLen(t *testing.T) {
	text := "Short one. A considerably longer sentence that survives the guard."
	spans := All(doc(text), types.SegmenterConfig{MinSentenceLen: 15})
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1: %q", len(spans), rawTexts(spans))
	}
	if !strings.HasPrefix(spans[0].RawText, "A considerably") {
		t.Errorf("unexpected surviving span %q", spans[0].RawText)
	}
}

func TestScannerIsLazyAndFinite(t *testing.T) {
	sc := NewScanner(doc("One sentence only here."), types.SegmenterConfig{})
	if !sc.Scan() {
		t.Fatal("expected first span")
	}
	if sc.Scan() {
		t.Fatalf("expected exhaustion, got %q", sc.Span().RawText)
	}
	if sc.Scan() {
		t.Fatal("scanner restarted after exhaustion")
	}
}
