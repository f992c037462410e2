package triangulate

import (
	"math"

	"github.com/osuushi/trimesh/geom"
)

// Ad hoc fixtures. Rings are given without repeating the first point.

func star(x, y, outerRadius, innerRadius float64) []geom.Point3D {
	var points []geom.Point3D
	for i := 0; i < 10; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, geom.Point3D{X: x + r*math.Cos(angle), Y: y + r*math.Sin(angle)})
	}
	return points
}

func reversed(ring []geom.Point3D) []geom.Point3D {
	result := make([]geom.Point3D, len(ring))
	for i, p := range ring {
		result[len(ring)-i-1] = p
	}
	return result
}

func SimpleStar() [][]geom.Point3D {
	return [][]geom.Point3D{star(0, 0, 5, 2)}
}

func SquareWithHole() [][]geom.Point3D {
	return [][]geom.Point3D{
		{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}},
		{{X: -2, Y: -2}, {X: -2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: -2}},
	}
}

func StarOutline() [][]geom.Point3D {
	return [][]geom.Point3D{
		star(0, 0, 10, 5),
		reversed(star(0, 0, 8, 3)),
	}
}

// Multiple inset stars with alternating winding
func StarStripes() [][]geom.Point3D {
	const n = 20
	const indentScale = 0.7
	const gapScale = 0.9

	var rings [][]geom.Point3D
	scale := 10.0
	for i := 0; i < n; i++ {
		ring := star(0, 0, scale, scale*indentScale)
		if i%2 == 1 {
			ring = reversed(ring)
		}
		rings = append(rings, ring)
		scale *= gapScale
	}
	return rings
}

// Holes which contain filled shapes of their own
func MultiLayeredHoles() [][]geom.Point3D {
	return [][]geom.Point3D{
		// Outer star
		star(0, 0, 10, 7),
		// Top hole and its inner star
		reversed(star(1.5, 5, 3, 2)),
		star(1.5, 5, 2, 1),
		// Bottom
		reversed(star(1.8, -5, 3, 2)),
		star(1.8, -5, 2, 1),
		// Left
		reversed(star(-3, 0, 4, 2)),
		star(-3, 0, 3, 1),
	}
}

// A square tilted out of the XY plane, so that its projection drops x.
func TiltedSquare() [][]geom.Point3D {
	return [][]geom.Point3D{{
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 4, Z: 0},
		{X: 2, Y: 4, Z: 4},
		{X: 2, Y: 0, Z: 4},
	}}
}
