package input

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/triangulate"
)

// ReadSVG turns every <polygon> of an SVG document into a ring and the center
// of every <circle> into a loose point. This is not a full SVG reader:
// transforms, paths and every other element are ignored.
func ReadSVG(r io.Reader) (triangulate.Input, error) {
	var in triangulate.Input
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return in, errors.Wrap(err, "parse svg")
	}

	for i, el := range root.FindAll("polygon") {
		ring, err := parsePointList(el.Attributes["points"])
		if err != nil {
			return in, errors.Wrapf(err, "polygon %d", i)
		}
		if len(ring) == 0 {
			continue
		}
		in.Rings = append(in.Rings, dropClosingPoint(ring))
	}

	for i, el := range root.FindAll("circle") {
		x, err := parseAttribute(el, "cx")
		if err != nil {
			return in, errors.Wrapf(err, "circle %d", i)
		}
		y, err := parseAttribute(el, "cy")
		if err != nil {
			return in, errors.Wrapf(err, "circle %d", i)
		}
		in.Points = append(in.Points, geom.Point3D{X: x, Y: y})
	}
	return in, nil
}

// Polygon points are numbers separated by commas and/or whitespace, taken in
// pairs.
func parsePointList(s string) ([]geom.Point3D, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}
	points := make([]geom.Point3D, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, geom.Point3D{X: x, Y: y})
	}
	return points, nil
}

// A missing attribute is zero, as in SVG.
func parseAttribute(el *svgparser.Element, name string) (float64, error) {
	s, ok := el.Attributes[name]
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, errors.Wrapf(err, "invalid %s value %q", name, s)
}
