package input

import (
	"encoding/json"

	"github.com/pkg/errors"
	twgeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/triangulate"
)

// ReadGeoJSON reads a geometry, a Feature or a FeatureCollection. Polygon and
// MultiPolygon rings become rings (outer rings and holes alike), Point and
// MultiPoint coordinates become loose points, and geometry collections are
// read recursively. The closing point that GeoJSON repeats in each ring is
// dropped.
func ReadGeoJSON(data []byte) (triangulate.Input, error) {
	var in triangulate.Input
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return in, errors.Wrap(err, "parse geojson")
	}

	switch header.Type {
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return in, errors.Wrap(err, "parse feature collection")
		}
		for i, f := range fc.Features {
			if err := addGeometry(&in, f.Geometry); err != nil {
				return in, errors.Wrapf(err, "feature %d", i)
			}
		}
	case "Feature":
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return in, errors.Wrap(err, "parse feature")
		}
		if err := addGeometry(&in, f.Geometry); err != nil {
			return in, err
		}
	default:
		var g twgeom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return in, errors.Wrap(err, "parse geometry")
		}
		if err := addGeometry(&in, g); err != nil {
			return in, err
		}
	}
	return in, nil
}

func addGeometry(in *triangulate.Input, g twgeom.T) error {
	if g == nil {
		return nil
	}
	z := g.Layout().ZIndex()
	switch g := g.(type) {
	case *twgeom.Polygon:
		addRings(in, g.Coords(), z)
	case *twgeom.MultiPolygon:
		for _, polygon := range g.Coords() {
			addRings(in, polygon, z)
		}
	case *twgeom.Point:
		in.Points = append(in.Points, point(g.Coords(), z))
	case *twgeom.MultiPoint:
		for _, c := range g.Coords() {
			in.Points = append(in.Points, point(c, z))
		}
	case *twgeom.GeometryCollection:
		for _, child := range g.Geoms() {
			if err := addGeometry(in, child); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("unsupported geometry %T", g)
	}
	return nil
}

func addRings(in *triangulate.Input, rings [][]twgeom.Coord, z int) {
	for _, coords := range rings {
		ring := make([]geom.Point3D, len(coords))
		for i, c := range coords {
			ring[i] = point(c, z)
		}
		ring = dropClosingPoint(ring)
		if len(ring) > 0 {
			in.Rings = append(in.Rings, ring)
		}
	}
}

func point(c twgeom.Coord, z int) geom.Point3D {
	p := geom.Point3D{X: c.X(), Y: c.Y()}
	if z >= 0 && z < len(c) {
		p.Z = c[z]
	}
	return p
}
