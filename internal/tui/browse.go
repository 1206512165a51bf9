package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gcpick/internal/geom"
)

// ErrBrowseCancelled is returned when the operator quits the browser without
// choosing destinations.
var ErrBrowseCancelled = errors.New("tui: no destinations chosen")

type fileItem struct {
	title string
	desc  string
	path  string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// browseModel lets the operator pick a destination file from the working
// directory or paste coordinates directly.
type browseModel struct {
	width  int
	height int

	l     list.Model
	ta    textarea.Model
	paste bool

	status string

	pts    geom.PointSet
	source string
	chosen bool
}

func newBrowseModel(dir string) browseModel {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(nil, d, 0, 0)
	l.Title = "Destination files"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	ta := textarea.New()
	ta.Placeholder = "Paste WKT (POINT, MULTIPOINT, LINESTRING, POLYGON) or [[x,y],...]. Enter to accept; Esc to cancel."
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(6)

	b := browseModel{l: l, ta: ta, status: "enter to open, p to paste, q to quit"}
	b.refreshDir(dir)
	return b
}

func (b *browseModel) refreshDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		b.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		switch ext {
		case ".geojson", ".json", ".csv", ".kml", ".wkt":
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(dir, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	b.l.SetItems(items)
	if len(items) == 0 {
		b.status = "no destination files here; press p to paste"
	}
}

func (b browseModel) Init() tea.Cmd { return nil }

func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.l.SetSize(msg.Width-2, max(4, msg.Height-4))
		b.ta.SetWidth(min(76, max(24, msg.Width-4)))
	case tea.KeyMsg:
		if b.paste {
			switch msg.String() {
			case "esc":
				b.paste = false
				b.ta.Blur()
				return b, nil
			case "enter":
				text := strings.TrimSpace(b.ta.Value())
				if text == "" {
					b.status = "paste: empty"
					return b, nil
				}
				pts, err := geom.ParseText(text)
				if err != nil {
					b.status = "parse error: " + err.Error()
					return b, nil
				}
				b.pts = pts
				b.source = "pasted"
				b.chosen = true
				return b, tea.Quit
			}
			var cmd tea.Cmd
			b.ta, cmd = b.ta.Update(msg)
			return b, cmd
		}
		if b.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			b.l, cmd = b.l.Update(msg)
			return b, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return b, tea.Quit
		case "p":
			b.paste = true
			b.ta.SetValue("")
			b.ta.Focus()
			b.status = "paste mode"
			return b, nil
		case "enter":
			if it, ok := b.l.SelectedItem().(fileItem); ok {
				pts, err := geom.LoadFile(it.path)
				if err != nil {
					b.status = "load error: " + err.Error()
					return b, nil
				}
				if pts.Len() == 0 {
					b.status = "no points in " + it.title
					return b, nil
				}
				b.pts = pts
				b.source = it.path
				b.chosen = true
				return b, tea.Quit
			}
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.l, cmd = b.l.Update(msg)
	return b, cmd
}

func (b browseModel) View() string {
	if b.width == 0 || b.height == 0 {
		return ""
	}
	header := titleStyle.Render(" gcpick ─ choose destinations ")
	var body string
	if b.paste {
		body = b.ta.View()
	} else {
		body = b.l.View()
	}
	footer := dimStyle.Render(" " + b.status + " ")
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

// Browse runs the destination browser in dir and returns the chosen points
// plus where they came from.
func Browse(ctx context.Context, dir string) (geom.PointSet, string, error) {
	p := tea.NewProgram(newBrowseModel(dir), tea.WithAltScreen(), tea.WithContext(ctx))
	out, err := p.Run()
	if err != nil {
		return geom.PointSet{}, "", fmt.Errorf("browser: %w", err)
	}
	b, ok := out.(browseModel)
	if !ok || !b.chosen {
		return geom.PointSet{}, "", ErrBrowseCancelled
	}
	return b.pts, b.source, nil
}
