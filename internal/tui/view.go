package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gcpick/internal/picker"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)
	w, h := m.canvasSize()

	// Header
	mode := "control points"
	if m.col.Mode() == picker.ModeAOI {
		mode = "corners"
	}
	title := titleStyle.Render(" gcpick ─ " + mode + " ")
	info := dimStyle.Render(fmt.Sprintf(" %s view  %s ", m.view, m.progress()))
	leftHdr := lipgloss.JoinHorizontal(lipgloss.Bottom, title, info)
	ctrls := m.renderHeaderControls()
	hdrGap := max(0, contentWidth-lipgloss.Width(leftHdr)-lipgloss.Width(ctrls))
	header := lipgloss.NewStyle().Width(contentWidth).Render(leftHdr + strings.Repeat(" ", hdrGap) + ctrls)

	// Canvas
	var body string
	if m.showTable {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(h-2, 20))
		tableBox := boxStyle.Width(maxW).Render(m.tbl.View())
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, tableBox)
	} else if m.view == viewCamera {
		body = m.renderCamera(w, h)
	} else {
		body = m.renderMap(w, h)
	}

	// Footer / help
	help := m.renderHelp()
	var status string
	if m.col.State() == picker.Ready {
		status = warnStyle.Render(" " + m.status + "  enter to finish ")
	} else {
		status = dimStyle.Render(" " + m.status + " ")
	}
	coords := ""
	if m.hovering {
		if m.view == viewCamera {
			coords = dimStyle.Render(fmt.Sprintf("  col=%.0f row=%.0f  ", m.hoverX, m.hoverY))
		} else {
			coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverX, m.hoverY))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderHeaderControls draws the view and Done controls. The active view's
// control carries the accent color; Done stays muted until the collection is
// complete.
func (m Model) renderHeaderControls() string {
	camS, mapS := dimStyle, dimStyle
	if m.view == viewCamera {
		camS = titleStyle
	} else {
		mapS = titleStyle
	}
	doneS := dimStyle
	if m.col.State() == picker.Ready {
		doneS = warnStyle
	}
	return camS.Render("[1 camera]") + " " + mapS.Render("[2 map]") + " " + doneS.Render("[done]") + " "
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click add",
		"right-click undo",
		"1/2 views",
		"Tab switch",
		"↑↓←→ pan",
		"+/- zoom",
		"a table",
		"d done",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
