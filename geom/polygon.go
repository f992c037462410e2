package geom

import "math"

// Polygon is a closed ring of points. The last point connects back to the
// first, which is not repeated.
type Polygon struct {
	Points []Point2D
}

func (p Polygon) Len() int {
	return len(p.Points)
}

// Edge returns the segment starting at point i.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	return p.Points[CircularIndex(i, len(p.Points))], p.Points[CircularIndex(i+1, len(p.Points))]
}

// Shoelace formula. Positive for counterclockwise rings.
func (p Polygon) SignedArea() float64 {
	var sum float64
	for i := range p.Points {
		a, b := p.Edge(i)
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

func (p Polygon) IsCCW() bool {
	return p.SignedArea() > 0
}

func (p Polygon) IsCW() bool {
	return p.SignedArea() < 0
}

// Create a reversed copy of the polygon
func (p Polygon) Reverse() Polygon {
	points := make([]Point2D, len(p.Points))
	for i, point := range p.Points {
		points[len(p.Points)-i-1] = point
	}
	return Polygon{Points: points}
}

// Count how many edges a horizontal ray cast to the right from point crosses.
func (p Polygon) CrossingCount(point Point2D) int {
	count := 0
	for i := range p.Points {
		a, b := p.Edge(i)
		// Half open test so that a vertex on the ray is only counted once
		if (a.Y > point.Y) == (b.Y > point.Y) {
			continue
		}
		x := a.X + (point.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x > point.X {
			count++
		}
	}
	return count
}

// ContainsPointByEvenOdd checks containment against a set of rings, where holes
// are simply rings nested an odd number of times.
func ContainsPointByEvenOdd(rings []Polygon, point Point2D) bool {
	count := 0
	for _, ring := range rings {
		count += ring.CrossingCount(point)
	}
	return count%2 == 1
}

// Box2D is an axis aligned rectangle.
type Box2D struct {
	Min, Max Point2D
}

func EmptyBox2D() Box2D {
	return Box2D{
		Min: Point2D{math.Inf(1), math.Inf(1)},
		Max: Point2D{math.Inf(-1), math.Inf(-1)},
	}
}

func (b Box2D) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

func (b Box2D) Extend(p Point2D) Box2D {
	return Box2D{
		Min: Point2D{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Point2D{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

func BoundingBox(points []Point2D) Box2D {
	b := EmptyBox2D()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}
