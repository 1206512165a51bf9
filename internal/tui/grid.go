package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellGrid is a styled character canvas. Each cell carries a rune plus
// optional foreground and background colors; render merges equal-style runs
// so a frame row does not explode into per-cell escape sequences.
type cellGrid struct {
	w, h int
	ch   []rune
	fg   []string
	bg   []string
}

func newCellGrid(w, h int) *cellGrid {
	g := &cellGrid{
		w:  w,
		h:  h,
		ch: make([]rune, w*h),
		fg: make([]string, w*h),
		bg: make([]string, w*h),
	}
	for i := range g.ch {
		g.ch[i] = ' '
	}
	return g
}

func (g *cellGrid) in(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

func (g *cellGrid) set(x, y int, ch rune, fg, bg string) {
	if !g.in(x, y) {
		return
	}
	i := y*g.w + x
	g.ch[i] = ch
	g.fg[i] = fg
	g.bg[i] = bg
}

// overlay replaces the glyph and foreground but keeps the cell background,
// so lines and markers stay readable on top of the frame.
func (g *cellGrid) overlay(x, y int, ch rune, fg string) {
	if !g.in(x, y) {
		return
	}
	i := y*g.w + x
	g.ch[i] = ch
	g.fg[i] = fg
}

// text writes s horizontally starting at (x, y), clipping at the edges.
func (g *cellGrid) text(x, y int, s, fg string) {
	for _, r := range s {
		g.overlay(x, y, r, fg)
		x++
	}
}

func (g *cellGrid) render() string {
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < g.w {
			i := y*g.w + x
			fg, bg := g.fg[i], g.bg[i]
			j := x
			for j < g.w && g.fg[y*g.w+j] == fg && g.bg[y*g.w+j] == bg {
				j++
			}
			run := string(g.ch[i : y*g.w+j])
			if fg == "" && bg == "" {
				sb.WriteString(run)
			} else {
				st := lipgloss.NewStyle()
				if fg != "" {
					st = st.Foreground(lipgloss.Color(fg))
				}
				if bg != "" {
					st = st.Background(lipgloss.Color(bg))
				}
				sb.WriteString(st.Render(run))
			}
			x = j
		}
	}
	return sb.String()
}
