// Package textutil contains the small text helpers shared by the validators:
// normalization, tokenization and markup stripping.
package textutil

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Normalize lower-cases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fields splits s on whitespace without any other processing.
func Fields(s string) []string {
	return strings.Fields(s)
}

// Tokens splits s on whitespace, lower-cases each token and trims surrounding
// punctuation. Tokens that are pure punctuation are dropped.
func Tokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		tok := strings.TrimFunc(strings.ToLower(r), isEdgePunct)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	toks := Tokens(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// PlainText strips HTML/markup from s and collapses whitespace. Input without
// markup is returned with whitespace collapsed only.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	doc.Find("script, style").Remove()
	// block elements need a separator or adjacent words run together
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
