// Package input reads triangulation input from text point lists, SVG files
// and GeoJSON.
package input

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/triangulate"
)

var ErrUnknownFormat = errors.New("unknown input format")

// Formats accepted by Read
const (
	Text    = "text"
	SVG     = "svg"
	GeoJSON = "geojson"
)

// ReadText parses newline separated points in the form "x y" or "x y z",
// with each ring separated by an extra newline. A block that starts with a
// line reading "points" holds loose points instead of a ring. Lines starting
// with # are ignored.
func ReadText(r io.Reader) (triangulate.Input, error) {
	var (
		in       triangulate.Input
		points   []geom.Point3D
		isPoints bool
		line     int
	)
	flush := func() {
		if isPoints {
			in.Points = append(in.Points, points...)
		} else if len(points) > 0 {
			in.Rings = append(in.Rings, dropClosingPoint(points))
		}
		points = nil
		isPoints = false
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			// End of the ring (or point block)
			flush()
			continue
		case strings.HasPrefix(text, "#"):
			continue
		case text == "points":
			flush()
			isPoints = true
			continue
		}

		point, err := parsePoint(text)
		if err != nil {
			return in, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return in, errors.Wrap(err, "read text input")
	}

	// Handle trailing ring if any
	flush()
	return in, nil
}

func parsePoint(line string) (geom.Point3D, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 && len(parts) != 3 {
		return geom.Point3D{}, errors.Errorf("expected 2 or 3 coordinates, got %q", line)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return geom.Point3D{}, errors.Wrapf(err, "coordinate %d", i)
		}
		coords[i] = v
	}
	return geom.Point3D{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// Rings may repeat the first point at the end. The triangulator closes rings
// on its own.
func dropClosingPoint(ring []geom.Point3D) []geom.Point3D {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// FormatOf guesses the format of a file from its extension, defaulting to
// text.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return SVG
	case ".json", ".geojson":
		return GeoJSON
	}
	return Text
}

// Read loads the file at path. An empty format is guessed from the
// extension.
func Read(path, format string) (triangulate.Input, error) {
	if format == "" {
		format = FormatOf(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return triangulate.Input{}, errors.Wrap(err, "open input")
	}
	defer f.Close()

	var in triangulate.Input
	switch format {
	case Text:
		in, err = ReadText(f)
	case SVG:
		in, err = ReadSVG(f)
	case GeoJSON:
		var data []byte
		data, err = io.ReadAll(f)
		if err == nil {
			in, err = ReadGeoJSON(data)
		}
	default:
		return in, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return in, errors.Wrapf(err, "read %s", path)
}
