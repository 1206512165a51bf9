package tui

import (
	"image"
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"gcpick/internal/geom"
	"gcpick/internal/picker"
)

func cellAt(g *cellGrid, x, y int) (rune, string, string) {
	i := y*g.w + x
	return g.ch[i], g.fg[i], g.bg[i]
}

func redFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestDrawFrameLetterboxes(t *testing.T) {
	// A square frame on a square cell grid is half as wide as the 1:2
	// half-block pixel grid, so fitWindow pads the vertical axis and the
	// frame occupies the middle rows.
	vp := viewport{}
	vp.fitWindow(geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, 10, 10)

	g := newCellGrid(10, 10)
	drawFrame(g, redFrame(10, 10), vp, 10, 10)

	for x := 0; x < 10; x++ {
		if ch, _, _ := cellAt(g, x, 0); ch != ' ' {
			t.Fatalf("letterbox row drawn at (%d,0): %q", x, ch)
		}
	}
	for _, x := range []int{0, 4, 9} {
		ch, fg, bg := cellAt(g, x, 4)
		if ch != '▀' || fg != "#ff0000" || bg != "#ff0000" {
			t.Errorf("cell (%d,4) = %q %s/%s, want full red", x, ch, fg, bg)
		}
	}
	// Boundary cells straddle the frame edge: one half red, one half black.
	if ch, fg, bg := cellAt(g, 4, 2); ch != '▀' || fg != "#000000" || bg != "#ff0000" {
		t.Errorf("top boundary cell = %q %s/%s", ch, fg, bg)
	}
	if ch, fg, bg := cellAt(g, 4, 7); ch != '▀' || fg != "#ff0000" || bg != "#000000" {
		t.Errorf("bottom boundary cell = %q %s/%s", ch, fg, bg)
	}
	if ch, _, _ := cellAt(g, 4, 9); ch != ' ' {
		t.Errorf("bottom letterbox drawn: %q", ch)
	}
}

func TestDrawFrameDegenerateInputs(t *testing.T) {
	fresh := newCellGrid(6, 4)

	g := newCellGrid(6, 4)
	drawFrame(g, nil, viewport{bbox: geom.BBox{MaxX: 1, MaxY: 1}, zoom: 1}, 6, 4)
	if !reflect.DeepEqual(g.ch, fresh.ch) {
		t.Error("nil frame painted cells")
	}

	g = newCellGrid(6, 4)
	drawFrame(g, redFrame(4, 4), viewport{}, 6, 4)
	if !reflect.DeepEqual(g.ch, fresh.ch) {
		t.Error("invalid viewport painted cells")
	}
}

func TestCellGridMergesEqualRuns(t *testing.T) {
	g := newCellGrid(4, 2)
	g.set(0, 0, 'A', "#ff0000", "")
	g.set(1, 0, 'B', "#ff0000", "")
	g.set(2, 0, 'C', "#00ff00", "")

	out := g.render()
	rows := strings.Split(out, "\n")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Equal styles merge into one run, so A and B stay adjacent in the
	// output no matter how the style is encoded.
	if !strings.Contains(rows[0], "AB") {
		t.Errorf("run not merged: %q", rows[0])
	}
	if strings.Contains(rows[0], "BC") {
		t.Errorf("distinct styles merged: %q", rows[0])
	}
	if rows[1] != "    " {
		t.Errorf("unstyled row = %q, want four raw spaces", rows[1])
	}
	if lipgloss.Width(rows[0]) != 4 {
		t.Errorf("row width = %d, want 4", lipgloss.Width(rows[0]))
	}
}

func TestCellGridOverlayKeepsBackground(t *testing.T) {
	g := newCellGrid(3, 3)
	g.set(1, 1, '▀', "#111111", "#222222")
	g.overlay(1, 1, '+', "#333333")

	ch, fg, bg := cellAt(g, 1, 1)
	if ch != '+' || fg != "#333333" || bg != "#222222" {
		t.Errorf("cell = %q %s/%s, want + #333333/#222222", ch, fg, bg)
	}
	g.overlay(-1, 0, 'x', "#fff")
	g.overlay(0, 99, 'x', "#fff")
}

func TestCellGridTextClips(t *testing.T) {
	g := newCellGrid(6, 2)
	g.text(4, 0, "12345", "#ffffff")
	if ch, _, _ := cellAt(g, 4, 0); ch != '1' {
		t.Errorf("cell (4,0) = %q", ch)
	}
	if ch, _, _ := cellAt(g, 5, 0); ch != '2' {
		t.Errorf("cell (5,0) = %q", ch)
	}
	if ch, _, _ := cellAt(g, 0, 1); ch != ' ' {
		t.Errorf("text wrapped to next row: %q", ch)
	}

	g.text(-1, 1, "ab", "#ffffff")
	if ch, _, _ := cellAt(g, 0, 1); ch != 'b' {
		t.Errorf("left-clipped text = %q, want b", ch)
	}
}

func TestBrailleStrokeStaysOnRing(t *testing.T) {
	b := newBrailleBuf(10, 4)
	b.strokeRing([][2]int{{2, 2}, {17, 2}, {17, 13}, {2, 13}})
	g := newCellGrid(10, 4)
	b.drawTo(g, "#00ff00")

	ch, fg, _ := cellAt(g, 1, 0)
	if ch <= 0x2800 || ch > 0x28ff {
		t.Fatalf("edge cell rune = %U, want braille", ch)
	}
	if fg != "#00ff00" {
		t.Errorf("edge cell fg = %s", fg)
	}
	if ch, _, _ := cellAt(g, 5, 1); ch != ' ' {
		t.Errorf("interior painted by stroke: %U", ch)
	}
	if ch, _, _ := cellAt(g, 0, 0); ch != ' ' {
		t.Errorf("outside painted by stroke: %U", ch)
	}
}

func TestBrailleFillCoversInterior(t *testing.T) {
	b := newBrailleBuf(10, 4)
	b.fillRing([][2]int{{2, 2}, {17, 2}, {17, 13}, {2, 13}})
	g := newCellGrid(10, 4)
	b.drawTo(g, "#00ff00")

	// Cell (5,1) sits fully inside the ring, so every dot is set.
	if ch, _, _ := cellAt(g, 5, 1); ch != rune(0x28ff) {
		t.Errorf("interior cell = %U, want full braille block", ch)
	}
	if ch, _, _ := cellAt(g, 0, 2); ch != ' ' {
		t.Errorf("outside painted by fill: %U", ch)
	}
}

func TestRenderPanesKeepRowCounts(t *testing.T) {
	m := sized(t, picker.ModeGCP, 4)
	ox, oy := m.canvasOrigin()
	m = clickAt(t, m, 42+ox, 20+oy)
	w, h := m.canvasSize()

	cam := m.renderCamera(w, h)
	if got := strings.Count(cam, "\n") + 1; got != h {
		t.Fatalf("camera rows = %d, want %d", got, h)
	}
	if !strings.Contains(cam, "▀") {
		t.Error("camera pane has no frame cells")
	}
	if !strings.Contains(cam, "+") {
		t.Error("camera pane has no source marker")
	}

	mp := m.renderMap(w, h)
	if got := strings.Count(mp, "\n") + 1; got != h {
		t.Fatalf("map rows = %d, want %d", got, h)
	}
	if !strings.Contains(mp, "o") {
		t.Error("map pane has no destination markers")
	}
}
