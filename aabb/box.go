package aabb

import (
	"github.com/golang/geo/r1"

	"github.com/osuushi/trimesh/geom"
)

// Box is an axis aligned box, one interval per axis. The zero value is the
// single point at the origin; use EmptyBox to start accumulating points.
type Box struct {
	X, Y, Z r1.Interval
}

func EmptyBox() Box {
	return Box{r1.EmptyInterval(), r1.EmptyInterval(), r1.EmptyInterval()}
}

// BoxOf is the smallest box containing points.
func BoxOf(points ...geom.Point3D) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

func (b Box) IsEmpty() bool {
	return b.X.IsEmpty() || b.Y.IsEmpty() || b.Z.IsEmpty()
}

func (b Box) AddPoint(p geom.Point3D) Box {
	return Box{b.X.AddPoint(p.X), b.Y.AddPoint(p.Y), b.Z.AddPoint(p.Z)}
}

func (b Box) Union(o Box) Box {
	return Box{b.X.Union(o.X), b.Y.Union(o.Y), b.Z.Union(o.Z)}
}

// Intersects reports whether the boxes share any point, including touching
// faces.
func (b Box) Intersects(o Box) bool {
	return b.X.Intersects(o.X) && b.Y.Intersects(o.Y) && b.Z.Intersects(o.Z)
}

func (b Box) Contains(p geom.Point3D) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// Expanded grows the box by margin on every side.
func (b Box) Expanded(margin float64) Box {
	return Box{b.X.Expanded(margin), b.Y.Expanded(margin), b.Z.Expanded(margin)}
}

func (b Box) Center() geom.Point3D {
	return geom.Point3D{X: b.X.Center(), Y: b.Y.Center(), Z: b.Z.Center()}
}

// LongestAxis is 0, 1 or 2 for x, y or z.
func (b Box) LongestAxis() int {
	axis, longest := 0, b.X.Length()
	if l := b.Y.Length(); l > longest {
		axis, longest = 1, l
	}
	if l := b.Z.Length(); l > longest {
		axis = 2
	}
	return axis
}

func (b Box) axis(i int) r1.Interval {
	switch i {
	case 0:
		return b.X
	case 1:
		return b.Y
	}
	return b.Z
}
