// Package camconfig builds and persists the camera configuration produced by
// a calibration run: control-point pairs, area-of-interest corners, frame
// size, and processing parameters, serialized as versioned JSON.
package camconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"gcpick/internal/geom"
	"gcpick/internal/picker"
	"gcpick/internal/transform"
)

// Version is written into every file this package saves.
const Version = "1.0"

// Default processing parameters.
const (
	DefaultResolution = 0.05 // metres per output pixel
	DefaultWindowSize = 10   // interrogation window side in output pixels
)

// GCPs is the ground-control-point block: clicked pixels, their real-world
// destinations, and the water-level references.
type GCPs struct {
	Src  [][2]int    `json:"src,omitempty"`
	Dst  [][]float64 `json:"dst,omitempty"`
	Z0   float64     `json:"z_0"`
	HRef float64     `json:"h_ref"`
	CRS  int         `json:"crs,omitempty"`
}

// Config is the camera configuration file model. It implements the picker's
// camera-configuration interface so an area-of-interest session can feed the
// clicked corners straight into it.
type Config struct {
	Version      string      `json:"version"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	CRS          int         `json:"crs,omitempty"`
	Resolution   float64     `json:"resolution"`
	WindowSize   int         `json:"window_size"`
	GCPs         GCPs        `json:"gcps"`
	Corners      [][2]int    `json:"corners,omitempty"`
	CornerDst    [][]float64 `json:"corner_dst,omitempty"`
	LensPosition []float64   `json:"lens_position,omitempty"`
}

// New returns a Config for a frame of the given size with default processing
// parameters. crs may be None when destinations carry no coordinate system.
func New(width, height int, crs transform.Code) *Config {
	return &Config{
		Version:    Version,
		Width:      width,
		Height:     height,
		CRS:        int(crs),
		Resolution: DefaultResolution,
		WindowSize: DefaultWindowSize,
	}
}

// SetGCPs stores the control-point pairs. When crsGCPs and the config CRS are
// both set and differ, dst is reprojected into the config CRS first; the gcps
// block records the CRS its dst is stored in.
func (c *Config) SetGCPs(src []picker.Pixel, dst geom.PointSet, z0, hRef float64, crsGCPs transform.Code) error {
	if len(src) != dst.Len() {
		return fmt.Errorf("camconfig: %d source points for %d destinations", len(src), dst.Len())
	}
	stored := dst
	storedCRS := crsGCPs
	cfgCRS := transform.Code(c.CRS)
	if crsGCPs.Valid() && cfgCRS.Valid() && crsGCPs != cfgCRS {
		out, err := transform.ReprojectSet(dst, crsGCPs, cfgCRS)
		if err != nil {
			return fmt.Errorf("camconfig: reproject gcps: %w", err)
		}
		stored = out
		storedCRS = cfgCRS
	}
	if !storedCRS.Valid() {
		storedCRS = cfgCRS
	}
	c.GCPs = GCPs{Src: pixelPairs(src), Dst: stored.Coords(), Z0: z0, HRef: hRef, CRS: int(storedCRS)}
	return nil
}

// SetCornerDestinations stores the four real-world corner destinations, in
// the config CRS, in the same order the corners are clicked.
func (c *Config) SetCornerDestinations(dst geom.PointSet) error {
	if dst.Len() != 4 {
		return fmt.Errorf("camconfig: need 4 corner destinations, got %d", dst.Len())
	}
	c.CornerDst = dst.Coords()
	return nil
}

// SetLensPosition stores the camera position. A valid crs differing from the
// config CRS reprojects x and y first; z is carried through unchanged.
func (c *Config) SetLensPosition(x, y, z float64, crs transform.Code) error {
	p := geom.Point{X: x, Y: y, Z: z}
	cfgCRS := transform.Code(c.CRS)
	if crs.Valid() && cfgCRS.Valid() && crs != cfgCRS {
		out, err := transform.Reproject([]geom.Point{p}, crs, cfgCRS)
		if err != nil {
			return fmt.Errorf("camconfig: reproject lens position: %w", err)
		}
		p.X, p.Y = out[0].X, out[0].Y
	}
	c.LensPosition = []float64{p.X, p.Y, p.Z}
	return nil
}

// SetBBoxFromCorners records the clicked area-of-interest corners.
func (c *Config) SetBBoxFromCorners(corners []picker.Pixel) {
	c.Corners = pixelPairs(corners)
}

// GetBBox returns the area-of-interest ring. With camera true the ring is the
// clicked corners in image pixel space; otherwise it is built from the corner
// destinations in the config CRS. Nil when the inputs are not present.
func (c *Config) GetBBox(camera bool) geom.Polygon {
	if camera {
		if len(c.Corners) != 4 {
			return nil
		}
		ring := make(geom.Polygon, 0, 4)
		for _, p := range c.Corners {
			ring = append(ring, geom.Point{X: float64(p[0]), Y: float64(p[1])})
		}
		return ring
	}
	if len(c.CornerDst) != 4 {
		return nil
	}
	pts := make([]geom.Point, 0, 4)
	for _, d := range c.CornerDst {
		pt := geom.Point{X: d[0], Y: d[1]}
		if len(d) > 2 {
			pt.Z = d[2]
		}
		pts = append(pts, pt)
	}
	ring, err := transform.BoundingPolygonFromCorners(pts)
	if err != nil {
		return nil
	}
	return ring
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("camconfig: encode: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("camconfig: %w", err)
	}
	return nil
}

// Load reads a configuration previously written by Save.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("camconfig: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("camconfig: decode %s: %w", path, err)
	}
	if c.Version == "" {
		return nil, fmt.Errorf("camconfig: %s: missing version", path)
	}
	return &c, nil
}

func pixelPairs(px []picker.Pixel) [][2]int {
	out := make([][2]int, 0, len(px))
	for _, p := range px {
		out = append(out, [2]int{p.Col, p.Row})
	}
	return out
}
