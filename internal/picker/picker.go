// Package picker implements the point-collection state machine: it enforces
// the required point count, click order, undo semantics, and completion
// gating for one interactive session. It knows nothing about rendering or
// input devices; an event adapter drives it through Add, RemoveLast,
// Finalize, and Validate.
package picker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"gcpick/internal/geom"
	"gcpick/internal/overlay"
	"gcpick/internal/transform"
)

// Mode selects what a session collects.
type Mode int

const (
	// ModeGCP collects one source point per destination control point.
	ModeGCP Mode = iota
	// ModeAOI collects the four corners of the area of interest.
	ModeAOI
)

// CornerLabels is the fixed click order for ModeAOI, with left and right as
// seen looking downstream.
var CornerLabels = [4]string{"upstream-left", "downstream-left", "downstream-right", "upstream-right"}

// Pixel is an integer image coordinate produced by rounding a click.
type Pixel struct {
	Col int
	Row int
}

// State of a collection session.
type State int

const (
	// Collecting means fewer points than required have been supplied.
	Collecting State = iota
	// Ready means exactly the required number of points is present.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "collecting"
}

// IncompleteError reports a session that was closed before the required
// number of points had been supplied.
type IncompleteError struct {
	Required int
	Supplied int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete selection: %d points required, %d supplied", e.Required, e.Supplied)
}

// CameraConfig is the caller-supplied configuration object refreshed when
// the fourth corner is picked in ModeAOI.
type CameraConfig interface {
	// SetBBoxFromCorners stores the four clicked corners.
	SetBBoxFromCorners(corners []Pixel)
	// GetBBox returns the derived bounding polygon: in image pixel space
	// when camera is true, in destination coordinates otherwise.
	GetBBox(camera bool) geom.Polygon
}

// Config carries the construction inputs for a Collector.
type Config struct {
	Mode    Mode
	Dst     geom.PointSet
	CRS     transform.Code
	Overlay *overlay.Model
	Camera  CameraConfig // required in ModeAOI
	Logger  *slog.Logger
}

// Collector owns the src sequence and is the sole mutator of the overlay.
// All methods are single-goroutine; a session has one thread of control.
type Collector struct {
	mode     Mode
	dst      geom.PointSet
	crs      transform.Code
	required int
	src      []Pixel
	ov       *overlay.Model
	camera   CameraConfig
	log      *slog.Logger
}

// New builds a Collector and installs the destination markers into the
// overlay. In ModeAOI the destination set must hold exactly the four corner
// destinations and a camera configuration object is required.
func New(cfg Config) (*Collector, error) {
	if cfg.Overlay == nil {
		return nil, errors.New("picker: overlay model required")
	}
	if cfg.Mode == ModeAOI {
		if cfg.Dst.Len() != len(CornerLabels) {
			return nil, fmt.Errorf("picker: corner mode needs %d destination points, got %d", len(CornerLabels), cfg.Dst.Len())
		}
		if cfg.Camera == nil {
			return nil, errors.New("picker: corner mode needs a camera configuration")
		}
	}
	if cfg.CRS.Valid() {
		if _, err := transform.ForCode(cfg.CRS); err != nil {
			return nil, err
		}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Collector{
		mode:     cfg.Mode,
		dst:      cfg.Dst,
		crs:      cfg.CRS,
		required: cfg.Dst.Len(),
		ov:       cfg.Overlay,
		camera:   cfg.Camera,
		log:      log,
	}
	markers := make([]overlay.Marker, 0, cfg.Dst.Len())
	for i, p := range cfg.Dst.Points {
		label := strconv.Itoa(i + 1)
		if cfg.Mode == ModeAOI {
			label = CornerLabels[i]
		}
		markers = append(markers, overlay.Marker{X: p.X, Y: p.Y, Label: label, Kind: overlay.KindDest})
	}
	c.ov.SetDest(markers)
	return c, nil
}

// State is Ready iff exactly the required number of points is collected.
func (c *Collector) State() State {
	if len(c.src) == c.required {
		return Ready
	}
	return Collecting
}

// Mode returns the session mode.
func (c *Collector) Mode() Mode { return c.mode }

// Required returns the number of points the session must collect.
func (c *Collector) Required() int { return c.required }

// Count returns the number of points collected so far.
func (c *Collector) Count() int { return len(c.src) }

// Points returns a copy of the collected points in click order.
func (c *Collector) Points() []Pixel { return append([]Pixel(nil), c.src...) }

// Dst returns a copy of the destination set.
func (c *Collector) Dst() geom.PointSet {
	return geom.PointSet{Points: append([]geom.Point(nil), c.dst.Points...), HasZ: c.dst.HasZ}
}

// CRS returns the destination coordinate system, None when absent.
func (c *Collector) CRS() transform.Code { return c.crs }

// Add accepts a click at image coordinates (x, y), rounded to the nearest
// pixel. It appends the point, creates its marker, and in ModeAOI derives
// the bounding polygons when the fourth corner lands. Reports false without
// any effect when the session is already complete.
func (c *Collector) Add(x, y float64) bool {
	if c.State() == Ready {
		return false
	}
	px := Pixel{Col: int(math.Round(x)), Row: int(math.Round(y))}
	c.src = append(c.src, px)
	label := strconv.Itoa(len(c.src))
	if c.mode == ModeAOI {
		label = CornerLabels[len(c.src)-1]
	}
	c.ov.AddSource(float64(px.Col), float64(px.Row), label)
	if c.mode == ModeGCP {
		c.ov.SetSelected(len(c.src))
	}
	if c.mode == ModeAOI && len(c.src) == len(CornerLabels) {
		c.derivePolygons()
	}
	c.log.Debug("stored point", "col", px.Col, "row", px.Row, "count", len(c.src), "required", c.required)
	return true
}

// RemoveLast undoes the most recent point and destroys its marker. In
// ModeAOI the derived polygons are cleared whenever the count drops below
// four. Reports false when no points are present.
func (c *Collector) RemoveLast() bool {
	if len(c.src) == 0 {
		return false
	}
	c.src = c.src[:len(c.src)-1]
	c.ov.RemoveLastSource()
	if c.mode == ModeGCP {
		c.ov.SetSelected(len(c.src))
	}
	if c.mode == ModeAOI && len(c.src) < len(CornerLabels) {
		c.ov.ClearPolygons()
	}
	c.log.Debug("removed point", "count", len(c.src), "required", c.required)
	return true
}

// Validate returns nil when the collection is complete, otherwise an
// IncompleteError carrying the required and supplied counts.
func (c *Collector) Validate() error {
	if c.State() != Ready {
		return &IncompleteError{Required: c.required, Supplied: len(c.src)}
	}
	return nil
}

// Finalize returns the collected points in click order. It fails with the
// same IncompleteError as Validate when the session is not Ready.
func (c *Collector) Finalize() ([]Pixel, error) {
	if err := c.Validate(); err != nil {
		c.log.Error("selection incomplete", "required", c.required, "supplied", len(c.src))
		return nil, err
	}
	return c.Points(), nil
}

func (c *Collector) derivePolygons() {
	c.camera.SetBBoxFromCorners(c.Points())
	img := c.camera.GetBBox(true)
	geo := c.camera.GetBBox(false)
	if c.crs.Valid() {
		proj, err := transform.Reproject([]geom.Point(geo), c.crs, transform.WGS84)
		if err == nil {
			geo = geom.Polygon(proj)
		} else {
			c.log.Warn("bounding polygon reprojection failed", "err", err)
		}
	}
	c.ov.SetPolygons(img, geo)
}

// ParsePixelsJSON parses a JSON literal [[col,row],...] into pixels, rounding
// fractional coordinates the same way clicks are rounded.
func ParsePixelsJSON(s string) ([]Pixel, error) {
	var raw [][]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("pixels json: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("pixels json: empty list")
	}
	out := make([]Pixel, 0, len(raw))
	for i, c := range raw {
		if len(c) != 2 {
			return nil, fmt.Errorf("pixels json: entry %d has %d coordinates, want 2", i, len(c))
		}
		out = append(out, Pixel{Col: int(math.Round(c[0])), Row: int(math.Round(c[1]))})
	}
	return out, nil
}
