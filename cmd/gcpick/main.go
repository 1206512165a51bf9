// Command gcpick runs the interactive camera-calibration picker over a video
// frame: control points first, then the area-of-interest corners, and writes
// the resulting camera configuration as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"gcpick/internal/camconfig"
	"gcpick/internal/config"
	"gcpick/internal/geom"
	"gcpick/internal/logging"
	"gcpick/internal/picker"
	"gcpick/internal/transform"
	"gcpick/internal/tui"
)

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gcpick: %v\n", err)
		var inc *picker.IncompleteError
		if errors.Is(err, errUsage) || errors.As(err, &inc) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		framePath   = flag.String("frame", "", "video frame to calibrate against (png, jpeg, gif, tiff)")
		dstJSON     = flag.String("dst", "", "destination points as JSON, [[x,y],...] or [[x,y,z],...]")
		dstFile     = flag.String("dst-file", "", "destination points file (geojson, csv, wkt, kml)")
		crs         = flag.Int("crs", 0, "EPSG code of the destination points")
		crsGCPs     = flag.Int("crs-gcps", 0, "EPSG code the control points were surveyed in, when it differs")
		srcJSON     = flag.String("src", "", "already-known control point pixels [[col,row],...], skips the first session")
		cornersJSON = flag.String("corners", "", "already-known area corners [[col,row],...], skips the second session")
		z0          = flag.Float64("z0", 0, "water level in the vertical datum of the destinations")
		hRef        = flag.Float64("h-ref", 0, "staff gauge reading at survey time")
		resolution  = flag.Float64("resolution", camconfig.DefaultResolution, "orthoprojection resolution in metres per pixel")
		windowSize  = flag.Int("window-size", camconfig.DefaultWindowSize, "interrogation window side in pixels")
		lensPos     = flag.String("lens-position", "", "camera position as JSON, [x,y,z]")
		output      = flag.String("output", "", "camera configuration path, overrides the configured default")
		verbose     = flag.Bool("verbose", false, "log at debug level")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	// The sessions own the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logging.Setup(level, cfg.Log.Format, logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *framePath == "" {
		return fmt.Errorf("%w: -frame is required", errUsage)
	}
	for _, c := range []struct {
		name string
		code int
	}{{"crs", *crs}, {"crs-gcps", *crsGCPs}} {
		if c.code == 0 {
			continue
		}
		if _, err := transform.ForCode(transform.Code(c.code)); err != nil {
			return fmt.Errorf("%w: -%s: %v", errUsage, c.name, err)
		}
	}

	frame, err := loadFrame(*framePath)
	if err != nil {
		return err
	}
	b := frame.Bounds()
	log.Info("frame loaded", "path", *framePath, "width", b.Dx(), "height", b.Dy())

	dst, err := resolveDestinations(ctx, *dstJSON, *dstFile, log)
	if err != nil {
		return err
	}
	if dst.Len() == 0 {
		return fmt.Errorf("%w: no destination points", errUsage)
	}
	dstCRS := transform.Code(*crs)

	var src []picker.Pixel
	if *srcJSON != "" {
		src, err = picker.ParsePixelsJSON(*srcJSON)
		if err != nil {
			return fmt.Errorf("%w: -src: %v", errUsage, err)
		}
		if len(src) != dst.Len() {
			return fmt.Errorf("%w: -src has %d points for %d destinations", errUsage, len(src), dst.Len())
		}
	} else {
		src, err = pickSession(ctx, tui.Config{
			Frame:   frame,
			Dst:     dst,
			CRS:     dstCRS,
			Mode:    picker.ModeGCP,
			Map:     cfg.Map,
			Markers: cfg.Markers,
			Logger:  log,
		})
		if err != nil {
			return err
		}
	}
	log.Info("control points fixed", "count", len(src))

	cam := camconfig.New(b.Dx(), b.Dy(), dstCRS)
	cam.Resolution = *resolution
	cam.WindowSize = *windowSize
	if err := cam.SetGCPs(src, dst, *z0, *hRef, transform.Code(*crsGCPs)); err != nil {
		return err
	}
	cornerDst := cornerDestinations(dst)
	if err := cam.SetCornerDestinations(cornerDst); err != nil {
		return err
	}

	var corners []picker.Pixel
	if *cornersJSON != "" {
		corners, err = picker.ParsePixelsJSON(*cornersJSON)
		if err != nil {
			return fmt.Errorf("%w: -corners: %v", errUsage, err)
		}
		if len(corners) != 4 {
			return fmt.Errorf("%w: -corners needs 4 points, got %d", errUsage, len(corners))
		}
	} else {
		corners, err = pickSession(ctx, tui.Config{
			Frame:   frame,
			Dst:     cornerDst,
			CRS:     dstCRS,
			Mode:    picker.ModeAOI,
			Camera:  cam,
			Prior:   src,
			Map:     cfg.Map,
			Markers: cfg.Markers,
			Logger:  log,
		})
		if err != nil {
			return err
		}
	}
	cam.SetBBoxFromCorners(corners)
	log.Info("area of interest fixed", "corners", len(corners))

	if *lensPos != "" {
		x, y, z, err := parseXYZ(*lensPos)
		if err != nil {
			return fmt.Errorf("%w: -lens-position: %v", errUsage, err)
		}
		if err := cam.SetLensPosition(x, y, z, transform.Code(*crsGCPs)); err != nil {
			return err
		}
	}

	path := cfg.Output.Path
	if *output != "" {
		path = *output
	}
	if err := cam.Save(path); err != nil {
		return err
	}
	log.Info("camera configuration written", "path", path)
	fmt.Println("camera configuration written to", path)
	return nil
}

func pickSession(ctx context.Context, cfg tui.Config) ([]picker.Pixel, error) {
	session, err := tui.New(cfg)
	if err != nil {
		return nil, err
	}
	return session.Run(ctx)
}

// resolveDestinations finds the real-world points to calibrate against: the
// -dst literal wins, then -dst-file, then the interactive browser.
func resolveDestinations(ctx context.Context, literal, file string, log *slog.Logger) (geom.PointSet, error) {
	if literal != "" {
		if file != "" {
			log.Warn("both -dst and -dst-file given, using -dst")
		}
		ps, err := geom.ParsePointsJSON(literal)
		if err != nil {
			return geom.PointSet{}, fmt.Errorf("%w: -dst: %v", errUsage, err)
		}
		return ps, nil
	}
	if file != "" {
		return geom.LoadFile(file)
	}
	ps, source, err := tui.Browse(ctx, ".")
	if err != nil {
		return geom.PointSet{}, err
	}
	log.Info("destinations chosen", "source", source, "count", ps.Len())
	return ps, nil
}

// cornerDestinations spans the four area-of-interest targets over the
// destination extent, one per corner label in click order.
func cornerDestinations(dst geom.PointSet) geom.PointSet {
	bb := dst.BBox()
	return geom.PointSet{Points: []geom.Point{
		{X: bb.MinX, Y: bb.MaxY},
		{X: bb.MinX, Y: bb.MinY},
		{X: bb.MaxX, Y: bb.MinY},
		{X: bb.MaxX, Y: bb.MaxY},
	}}
}

func parseXYZ(s string) (x, y, z float64, err error) {
	var v []float64
	if err = json.Unmarshal([]byte(s), &v); err != nil {
		return 0, 0, 0, err
	}
	if len(v) != 3 {
		return 0, 0, 0, fmt.Errorf("want [x,y,z], got %d values", len(v))
	}
	return v[0], v[1], v[2], nil
}

func loadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
