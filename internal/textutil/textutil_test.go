package textutil_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/draiml/draiml/internal/textutil"
)

func TestTokens(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want []string
	}{
		{"The patient is diagnosed with Pneumonia.", []string{"the", "patient", "is", "diagnosed", "with", "pneumonia"}},
		{"  (fever), cough; -- headache! ", []string{"fever", "cough", "headache"}},
		{"long-term use", []string{"long-term", "use"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, textutil.Tokens(tc.in)); diff != "" {
			t.Errorf("Tokens(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()
	a := textutil.TokenSet("fever causes chills")
	b := textutil.TokenSet("chills causes fever")
	if got := textutil.Jaccard(a, b); got != 1 {
		t.Errorf("expected 1 for reordered tokens, got %v", got)
	}

	c := textutil.TokenSet("fever causes chills and sweating")
	if got := textutil.Jaccard(a, c); got != 0.6 {
		t.Errorf("expected 0.6, got %v", got)
	}

	if got := textutil.Jaccard(textutil.TokenSet(""), textutil.TokenSet("  ")); got != 0 {
		t.Errorf("expected 0 for empty union, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	if got := textutil.Normalize("  Chest Pain \n"); got != "chest pain" {
		t.Errorf("expected %q, got %q", "chest pain", got)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"plain   text\nhere", "plain text here"},
		{"<p>Fever <b>because</b> of infection</p><p>Rest</p>", "Fever because of infection Rest"},
		{"<div>a</div><script>alert(1)</script><style>p{}</style>", "a"},
		{"fever &amp; chills", "fever & chills"},
	}
	for _, tc := range cases {
		if got := textutil.PlainText(tc.in); got != tc.want {
			t.Errorf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
