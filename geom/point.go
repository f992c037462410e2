// Package geom holds the small value types shared by the predicates, the mesh
// kernel and the builders.
package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

type Point2D struct {
	X, Y float64
}

type Point3D struct {
	X, Y, Z float64
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Lift turns a planar point into a 3D point at height z.
func (p Point2D) Lift(z float64) Point3D {
	return Point3D{p.X, p.Y, z}
}

// Less is the lexicographic order used to sort points for hull building.
func (p Point2D) Less(q Point2D) bool {
	if p.X == q.X {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%v, %v, %v)", p.X, p.Y, p.Z)
}

func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point3D) Scale(s float64) Point3D {
	return Point3D{p.X * s, p.Y * s, p.Z * s}
}

func (p Point3D) Dot(q Point3D) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

func (p Point3D) Cross(q Point3D) Point3D {
	return Point3D{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

func (p Point3D) Len() float64 {
	return math.Sqrt(p.Dot(p))
}

// XY drops the z coordinate.
func (p Point3D) XY() Point2D {
	return Point2D{p.X, p.Y}
}

// R3 converts to a golang/geo vector.
func (p Point3D) R3() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func FromR3(v r3.Vector) Point3D {
	return Point3D{v.X, v.Y, v.Z}
}

// Get a circular index. For negative numbers, this will wrap around as many
// times as necessary to get a valid index.
func CircularIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
