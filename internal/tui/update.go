package tui

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.canvasSize()
		m.camVP.fitWindow(m.frameBBox(), w, h)
		m.fitMap(w, h)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showTable {
		switch msg.String() {
		case "a", "esc", "q":
			m.showTable = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "ctrl+c", "q":
		m.closeErr = m.col.Validate()
		if m.closeErr != nil {
			m.log.Warn("closing with incomplete selection",
				"required", m.col.Required(), "supplied", m.col.Count())
		}
		return m, tea.Quit
	case "enter", "d":
		if err := m.col.Validate(); err != nil {
			m.status = fmt.Sprintf("not done: %s stored", m.progress())
			return m, nil
		}
		return m, tea.Quit
	case "1", "c":
		m.switchView(viewCamera)
	case "2", "m":
		m.switchView(viewMap)
	case "tab":
		if m.view == viewCamera {
			m.switchView(viewMap)
		} else {
			m.switchView(viewCamera)
		}
	case "+", "=":
		if m.activeVP().zoomIn() {
			m.status = fmt.Sprintf("zoom: %.2fx", m.activeVP().zoom)
		}
	case "-", "_":
		if m.activeVP().zoomOut() {
			m.status = fmt.Sprintf("zoom: %.2fx", m.activeVP().zoom)
		}
	case "up":
		m.activeVP().pan(0, -1)
	case "down":
		m.activeVP().pan(0, 1)
	case "left":
		m.activeVP().pan(-2, 0)
	case "right":
		m.activeVP().pan(2, 0)
	case "0":
		m.switchView(m.view)
		m.status = "view reset"
	case "u", "backspace":
		m.undo()
	case "a":
		m.showTable = true
		m.refreshTable()
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy := m.canvasOrigin()
	w, h := m.canvasSize()
	cx := msg.X - ox
	cy := msg.Y - oy
	inside := cx >= 0 && cx < w && cy >= 0 && cy < h

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y == 0 && !m.showTable {
				return m.clickHeader(msg.X)
			}
			if inside && !m.showTable {
				m.dragging = true
				m.dragged = false
				m.dragX, m.dragY = cx, cy
			}
		case tea.MouseButtonRight:
			if inside && !m.showTable && m.view == viewCamera {
				m.undo()
			}
		case tea.MouseButtonWheelUp:
			if inside {
				m.activeVP().zoomIn()
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.activeVP().zoomOut()
			}
		}
	case tea.MouseActionMotion:
		if m.dragging {
			dx := cx - m.dragX
			dy := cy - m.dragY
			if dx != 0 || dy != 0 {
				m.activeVP().pan(dx, dy)
				m.dragX, m.dragY = cx, cy
				m.dragged = true
			}
			break
		}
		if inside {
			if x, y, ok := m.activeVP().cellToWorld(cx, cy, w, h); ok {
				m.hovering = true
				m.hoverX, m.hoverY = x, y
			}
		} else {
			m.hovering = false
		}
	case tea.MouseActionRelease:
		// Release events carry an unreliable button in legacy encodings, so
		// the press state decides what a release means.
		if m.dragging && !m.dragged && inside && m.view == viewCamera && !m.showTable {
			m.click(cx, cy, w, h)
		}
		m.dragging = false
		m.dragged = false
	}
	return m, nil
}

// clickHeader dispatches a press on the header controls row. The Done
// control is inert while the collection is incomplete.
func (m Model) clickHeader(x int) (tea.Model, tea.Cmd) {
	cam, mp, done := m.headerControls()
	switch {
	case x >= cam[0] && x <= cam[1]:
		m.switchView(viewCamera)
	case x >= mp[0] && x <= mp[1]:
		m.switchView(viewMap)
	case x >= done[0] && x <= done[1]:
		if err := m.col.Validate(); err != nil {
			m.status = fmt.Sprintf("not done: %s stored", m.progress())
			break
		}
		return m, tea.Quit
	}
	return m, nil
}

// click stores the image pixel under the cell, ignoring positions outside
// the frame.
func (m *Model) click(cx, cy, w, h int) {
	x, y, ok := m.camVP.cellToWorld(cx, cy, w, h)
	if !ok {
		return
	}
	col := int(math.Round(x))
	row := int(math.Round(y))
	if col < 0 || col >= m.frameW || row < 0 || row >= m.frameH {
		m.status = "outside the frame"
		return
	}
	if !m.col.Add(x, y) {
		m.status = "all points stored; enter to finish"
		return
	}
	m.status = fmt.Sprintf("stored (%d, %d): %s", col, row, m.progress())
	if m.showTable {
		m.refreshTable()
	}
}

func (m *Model) undo() {
	if !m.col.RemoveLast() {
		m.status = "nothing to undo"
		return
	}
	m.status = "removed last point: " + m.progress()
	if m.showTable {
		m.refreshTable()
	}
}

// switchView activates a view and resets its window, like re-homing a plot.
func (m *Model) switchView(v viewKind) {
	m.view = v
	w, h := m.canvasSize()
	if v == viewCamera {
		m.camVP.fitWindow(m.frameBBox(), w, h)
	} else {
		m.fitMap(w, h)
	}
	m.status = v.String() + " view"
	m.log.Debug("view switched", "view", v.String())
}

func (m *Model) activeVP() *viewport {
	if m.view == viewMap {
		return &m.mapVP
	}
	return &m.camVP
}
