package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"gcpick/internal/picker"
)

// refreshTable rebuilds the correspondence table pairing each destination
// with the pixel clicked for it, blank while a row is still unclicked.
func (m *Model) refreshTable() {
	dst := m.col.Dst()
	pts := m.col.Points()

	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "label", Width: 17},
		{Title: "col", Width: 6},
		{Title: "row", Width: 6},
		{Title: "x", Width: 12},
		{Title: "y", Width: 12},
	}
	if dst.HasZ {
		cols = append(cols, table.Column{Title: "z", Width: 9})
	}

	rows := make([]table.Row, 0, dst.Len())
	for i, p := range dst.Points {
		label := strconv.Itoa(i + 1)
		if m.col.Mode() == picker.ModeAOI {
			label = picker.CornerLabels[i]
		}
		colS, rowS := "", ""
		if i < len(pts) {
			colS = strconv.Itoa(pts[i].Col)
			rowS = strconv.Itoa(pts[i].Row)
		}
		row := table.Row{
			strconv.Itoa(i + 1),
			label,
			colS,
			rowS,
			fmt.Sprintf("%.6g", p.X),
			fmt.Sprintf("%.6g", p.Y),
		}
		if dst.HasZ {
			row = append(row, fmt.Sprintf("%.6g", p.Z))
		}
		rows = append(rows, row)
	}

	// Avoid a transient column/row mismatch: clear rows, set columns, then
	// set rows.
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	if len(rows) > 0 {
		m.tbl.SetCursor(min(len(pts), len(rows)-1))
	}
}
