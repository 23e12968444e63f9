package response

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Segment operations.
const (
	OpInsert = "insert"
	OpDelete = "delete"
	OpEqual  = "equal"
)

// Segment is one run of a character diff.
type Segment struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// Diff returns the runs that turn original into modified. For a transformed
// response every run except the original body is an insert.
func Diff(original, modified string) []Segment {
	dmp := diffmatchpatch.New()
	// no semantic cleanup: it would fold a short body into the surrounding inserts
	diffs := dmp.DiffMain(original, modified, false)

	out := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		var op string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		default:
			op = OpEqual
		}
		out = append(out, Segment{Op: op, Text: d.Text})
	}
	return out
}

// Added concatenates the inserted runs of segs.
func Added(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Op == OpInsert {
			out = append(out, s.Text)
		}
	}
	return out
}
