package widgets

import (
	"strings"
	"testing"

	"github.com/grove-ui/grove/core/stack"
)

func TestCompositeKeepsCanvasSize(t *testing.T) {
	base := "aaaa\nbbbb\ncccc"
	out := Composite(base, 10, 3, Layer{Content: "XX", X: 2, Y: 1})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("canvas height changed: %d", len(lines))
	}
	if !strings.Contains(lines[1], "XX") {
		t.Fatalf("overlay missing from row 1: %q", lines[1])
	}
	if !strings.HasPrefix(lines[1], "bb") {
		t.Fatalf("content left of the overlay should survive: %q", lines[1])
	}
}

func TestCompositeCentersNegativeCoordinates(t *testing.T) {
	out := Composite("", 11, 3, Layer{Content: "X", X: -1, Y: -1})
	lines := strings.Split(out, "\n")
	if strings.Index(lines[1], "X") != 5 {
		t.Fatalf("layer should center: %q", lines[1])
	}
}

func TestCompositeZeroCanvas(t *testing.T) {
	if out := Composite("base", 0, 0, Layer{Content: "X"}); out != "" {
		t.Fatalf("zero canvas should render empty, got %q", out)
	}
}

func TestRenderPopupOverlaysCard(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 40)+"\n", 11) + strings.Repeat(".", 40)
	out := RenderPopup(base, "hello", 40, 12)
	if !strings.Contains(out, "hello") {
		t.Fatalf("popup content missing")
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("popup should carry a rounded border")
	}
}

func TestRenderStackDrawsActiveLayersInOrder(t *testing.T) {
	st := stack.New(stack.Options{})
	st.Register(stack.Entry{ID: "under"})
	st.Register(stack.Entry{ID: "over"})
	st.Register(stack.Entry{ID: "closed"})
	st.Select("under")
	st.Select("over")
	out := RenderStack("", 60, 20, st, func(id string) string { return "layer:" + id })
	if !strings.Contains(out, "layer:over") {
		t.Fatalf("top layer missing")
	}
	if strings.Contains(out, "layer:closed") {
		t.Fatalf("inactive layers must not render")
	}
}
