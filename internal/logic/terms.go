package logic

import (
	"strings"

	"github.com/draiml/draiml/internal/textutil"
)

// termMatcher finds dictionary keys in text. Single-word keys match whole
// tokens; multi-word keys match as a run of whole tokens.
type termMatcher struct {
	keys []string
}

func newTermMatcher(keys []string) termMatcher {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.Join(textutil.Tokens(k), " ")
		if k != "" {
			out = append(out, k)
		}
	}
	return termMatcher{keys: out}
}

// find returns the matched keys in dictionary order.
func (m termMatcher) find(text string) []string {
	toks := textutil.Tokens(text)
	if len(toks) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	joined := " " + strings.Join(toks, " ") + " "

	var out []string
	for _, k := range m.keys {
		if strings.Contains(k, " ") {
			if strings.Contains(joined, " "+k+" ") {
				out = append(out, k)
			}
			continue
		}
		if _, ok := set[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (m termMatcher) any(text string) bool {
	return len(m.find(text)) > 0
}
