package response_test

import (
	"strings"
	"testing"

	"github.com/draiml/draiml/internal/response"
)

func TestTransform_NoWarningsNoEmergency(t *testing.T) {
	t.Parallel()
	got := response.Transform("Drink fluids.", nil, false)
	want := "Drink fluids.\n\n" + response.Disclaimer
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTransform_WarningsBlock(t *testing.T) {
	t.Parallel()
	got := response.Transform("Body.", []string{"first", "second"}, false)
	want := "Body.\n\nImportant considerations:\n- first\n- second\n\n\n" + response.Disclaimer
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTransform_EmergencyBannerFirst(t *testing.T) {
	t.Parallel()
	got := response.Transform("Chest pain noted.", []string{"Emergency situation detected"}, true)

	if !strings.HasPrefix(got, response.EmergencyBanner+"Chest pain noted.") {
		t.Errorf("expected banner immediately before body, got %q", got)
	}
	if !strings.Contains(got, "- Emergency situation detected\n") {
		t.Errorf("expected warning line, got %q", got)
	}
	if !strings.HasSuffix(got, response.Disclaimer) {
		t.Errorf("expected disclaimer last, got %q", got)
	}
	if !strings.Contains(response.EmergencyBanner, "EMERGENCY WARNING") {
		t.Error("banner text changed")
	}
}

func TestTransform_BodyNeverAltered(t *testing.T) {
	t.Parallel()
	bodies := []string{"", "  padded  ", "line1\nline2", "<b>markup</b> & entities"}
	for _, body := range bodies {
		for _, emergency := range []bool{false, true} {
			got := response.Transform(body, []string{"w"}, emergency)
			if !strings.Contains(got, body) {
				t.Errorf("expected %q to contain original %q", got, body)
			}
			if len(got) <= len(body) {
				t.Errorf("expected framing to be added to %q", body)
			}
		}
	}
}

func TestDiff_OnlyInsertsForTransformedText(t *testing.T) {
	t.Parallel()
	original := "Take ibuprofen with food."
	modified := response.Transform(original, []string{"Potential harm detected in proposed action"}, true)

	segs := response.Diff(original, modified)

	var equal strings.Builder
	for _, s := range segs {
		switch s.Op {
		case response.OpDelete:
			t.Errorf("unexpected delete segment %q", s.Text)
		case response.OpEqual:
			equal.WriteString(s.Text)
		}
	}
	if equal.String() != original {
		t.Errorf("expected unchanged runs to spell the original, got %q", equal.String())
	}
	added := strings.Join(response.Added(segs), "")
	if !strings.Contains(added, "EMERGENCY WARNING") || !strings.Contains(added, "IMPORTANT:") {
		t.Errorf("expected banner and disclaimer among inserts, got %q", added)
	}
}

func TestDiff_Identical(t *testing.T) {
	t.Parallel()
	segs := response.Diff("same", "same")
	if len(segs) != 1 || segs[0].Op != response.OpEqual {
		t.Errorf("expected single equal segment, got %+v", segs)
	}
	if response.Added(segs) != nil {
		t.Error("expected no inserts")
	}
}
