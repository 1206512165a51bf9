package tui

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"gcpick/internal/config"
	"gcpick/internal/geom"
	"gcpick/internal/overlay"
	"gcpick/internal/picker"
	"gcpick/internal/transform"
)

// viewKind selects the active pane.
type viewKind int

const (
	viewCamera viewKind = iota
	viewMap
)

func (v viewKind) String() string {
	if v == viewMap {
		return "map"
	}
	return "camera"
}

// Config carries everything one interactive session needs.
type Config struct {
	Frame   image.Image    // video frame the operator clicks on
	Dst     geom.PointSet  // destination points, one per required click
	CRS     transform.Code // CRS of Dst, None when unknown
	Mode    picker.Mode
	Camera  picker.CameraConfig // required in corner mode
	Prior   []picker.Pixel      // earlier control points, shown for reference
	Map     config.MapConfig
	Markers config.MarkersConfig
	Logger  *slog.Logger
}

type Model struct {
	width  int
	height int

	view viewKind

	frame  image.Image
	frameW int
	frameH int

	col *picker.Collector
	ov  *overlay.Model
	crs transform.Code

	camVP viewport
	mapVP viewport

	// mouse drag
	dragging bool
	dragged  bool
	dragX    int
	dragY    int

	status      string
	helpVisible bool

	// hover readout in world coordinates of the active view
	hovering bool
	hoverX   float64
	hoverY   float64

	// correspondence table
	showTable bool
	tbl       table.Model

	markers config.MarkersConfig
	mapCfg  config.MapConfig

	closeErr error
	log      *slog.Logger
}

func newModel(cfg Config) (Model, error) {
	if cfg.Frame == nil {
		return Model{}, errors.New("tui: frame image required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ov := overlay.New()
	col, err := picker.New(picker.Config{
		Mode:    cfg.Mode,
		Dst:     cfg.Dst,
		CRS:     cfg.CRS,
		Overlay: ov,
		Camera:  cfg.Camera,
		Logger:  log,
	})
	if err != nil {
		return Model{}, err
	}
	if len(cfg.Prior) > 0 {
		prior := make([]overlay.Marker, 0, len(cfg.Prior))
		for i, p := range cfg.Prior {
			prior = append(prior, overlay.Marker{
				X:     float64(p.Col),
				Y:     float64(p.Row),
				Label: strconv.Itoa(i + 1),
				Kind:  overlay.KindPrior,
			})
		}
		ov.SetPrior(prior)
	}
	b := cfg.Frame.Bounds()
	m := Model{
		view:        viewCamera,
		frame:       cfg.Frame,
		frameW:      b.Dx(),
		frameH:      b.Dy(),
		col:         col,
		ov:          ov,
		crs:         cfg.CRS,
		camVP:       viewport{zoom: 1.0},
		mapVP:       viewport{zoom: 1.0, flipY: true},
		helpVisible: true,
		markers:     cfg.Markers,
		mapCfg:      cfg.Map,
		log:         log,
	}
	m.status = "click the image: " + m.progress()
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Layout: one header row, two footer rows, canvas between.
func (m Model) canvasSize() (int, int) {
	w := max(10, m.width)
	h := max(4, m.height-3)
	return w, h
}

func (m Model) canvasOrigin() (int, int) { return 0, 1 }

// headerControls returns the cell spans of the clickable header controls,
// mirroring the right-aligned layout View renders.
func (m Model) headerControls() (cam, mp, done [2]int) {
	const wCam, wMap, wDone = 10, 7, 6 // [1 camera], [2 map], [done]
	x := max(0, max(10, m.width)-(wCam+1+wMap+1+wDone+1))
	cam = [2]int{x, x + wCam - 1}
	x += wCam + 1
	mp = [2]int{x, x + wMap - 1}
	x += wMap + 1
	done = [2]int{x, x + wDone - 1}
	return
}

func (m Model) frameBBox() geom.BBox {
	return geom.BBox{MinX: 0, MinY: 0, MaxX: float64(m.frameW), MaxY: float64(m.frameH)}
}

// fitMap resets the map window to the destination extent plus the configured
// buffer.
func (m *Model) fitMap(w, h int) {
	dests := m.mapDests()
	if len(dests) == 0 {
		m.mapVP.fitWindow(geom.BBox{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}, w, h)
		return
	}
	bb := geom.BBox{MinX: dests[0].X, MinY: dests[0].Y, MaxX: dests[0].X, MaxY: dests[0].Y}
	for _, d := range dests[1:] {
		bb.Extend(d.X, d.Y)
	}
	pad := m.mapCfg.Buffer
	if pad <= 0 {
		pad = 0.0002
	}
	bb.Pad(pad)
	m.mapVP.fitWindow(bb, w, h)
}

func (m Model) progress() string {
	return strconv.Itoa(m.col.Count()) + "/" + strconv.Itoa(m.col.Required())
}
