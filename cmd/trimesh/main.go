package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/trimesh"
	"github.com/osuushi/trimesh/dbg"
	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/input"
	"github.com/osuushi/trimesh/predicates"
	"github.com/osuushi/trimesh/render"
)

var (
	app     = kingpin.New("trimesh", "Constrained Delaunay triangulation with exact predicates.")
	verbose = app.Flag("verbose", "Log every insertion and flip.").Short('v').Bool()

	triangulateCmd = app.Command("triangulate", "Triangulate the rings and points in a file.")
	inputFile      = triangulateCmd.Arg("file", "Input file.").Required().ExistingFile()
	format         = triangulateCmd.Flag("format", "Input format. Guessed from the extension by default.").Enum(input.Text, input.SVG, input.GeoJSON)
	pngFile        = triangulateCmd.Flag("png", "Write a drawing of the mesh to this file.").String()
	showImgcat     = triangulateCmd.Flag("imgcat", "Print a drawing of the mesh to the terminal (iTerm only).").Bool()
	timeout        = triangulateCmd.Flag("timeout", "Give up after this long.").Default("10s").Duration()
	planar         = triangulateCmd.Flag("planar", "Reject 3D input that is not exactly planar.").Bool()
	seed           = triangulateCmd.Flag("seed", "Seed for point location.").Default("1").Int64()

	predicateCmd = app.Command("predicate", "Evaluate a predicate with the adaptive and the arbitrary precision implementation.")
	orientCmd    = predicateCmd.Command("orient", "Orientation of d relative to the plane through a, b and c.")
	orientArgs   = orientCmd.Arg("coords", "x y z of a, b, c and d. Put -- before negative numbers.").Required().Float64List()
	insphereCmd  = predicateCmd.Command("insphere", "Whether e lies inside the sphere through a, b, c and d.")
	insphereArgs = insphereCmd.Arg("coords", "x y z of a, b, c, d and e. Put -- before negative numbers.").Required().Float64List()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	app.FatalIfError(err, "logger")
	defer logger.Sync()

	switch command {
	case triangulateCmd.FullCommand():
		err = runTriangulate(logger)
	case orientCmd.FullCommand():
		err = runPredicate(*orientArgs, 4, func(p []geom.Point3D) (float64, predicates.Sign) {
			return predicates.Orient3D(p[0], p[1], p[2], p[3]), predicates.Orient3DPrecise(p[0], p[1], p[2], p[3])
		})
	case insphereCmd.FullCommand():
		err = runPredicate(*insphereArgs, 5, func(p []geom.Point3D) (float64, predicates.Sign) {
			return predicates.InSphere(p[0], p[1], p[2], p[3], p[4]), predicates.InSpherePrecise(p[0], p[1], p[2], p[3], p[4])
		})
	}
	app.FatalIfError(err, "%s", command)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func runTriangulate(logger *zap.Logger) error {
	in, err := input.Read(*inputFile, *format)
	if err != nil {
		return err
	}
	logger.Info("read input",
		zap.String("file", *inputFile),
		zap.Int("rings", len(in.Rings)),
		zap.Int("points", len(in.Points)))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	res, err := trimesh.Triangulate(ctx, in,
		trimesh.WithLogger(logger),
		trimesh.WithSeed(*seed),
		trimesh.WithPlanarCheck(*planar))
	if err != nil {
		return err
	}

	m := res.Mesh
	logger.Info("mesh",
		zap.Int("faces", m.FaceCount()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("boundaryLoops", len(m.BoundaryLoops())))

	opts := render.DefaultOptions()
	opts.Projection = res.Projection
	if *pngFile != "" {
		if err := render.SavePNG(m, *pngFile, opts); err != nil {
			return err
		}
		logger.Info("wrote drawing", zap.String("file", *pngFile))
	}
	if *showImgcat {
		return render.Imgcat(m, os.Stdout, opts)
	}
	return nil
}

func runPredicate(coords []float64, n int, eval func([]geom.Point3D) (float64, predicates.Sign)) error {
	if len(coords) != 3*n {
		return errors.Errorf("expected %d coordinates, got %d", 3*n, len(coords))
	}
	points := make([]geom.Point3D, n)
	for i := range points {
		points[i] = geom.Point3D{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
	}

	adaptive, precise := eval(points)
	fmt.Printf("adaptive: %s (%g)\n", colorSign(predicates.SignOf(adaptive)), adaptive)
	fmt.Printf("precise:  %s\n", colorSign(precise))
	return nil
}

func colorSign(s predicates.Sign) string {
	switch s {
	case predicates.Positive:
		return dbg.Colorize(s.String(), dbg.Green)
	case predicates.Negative:
		return dbg.Colorize(s.String(), dbg.Red)
	}
	return dbg.Colorize(s.String(), dbg.Yellow)
}
