package triangulate

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// Helper to check that a triangulation of rings is valid. The rules are:
// 1. The kernel invariants hold.
// 2. Every face is counterclockwise and every unprotected edge is locally
//    Delaunay.
// 3. Every ring segment is an edge of the mesh.
// 4. The total face area equals the even-odd area of the rings.
// 5. Sample points are covered by a face exactly when the rings contain them.
func assertValidTriangulation(t *testing.T, rings [][]geom.Point3D, res *Result) {
	m := res.Mesh
	require.NoError(t, m.Validate())
	require.NoError(t, CheckDelaunay(m, res.Projection))

	for r, ring := range res.RingVertices {
		for i, a := range ring {
			b := ring[(i+1)%len(ring)]
			e := m.FindEdge(a, b)
			if e == mesh.NoEdge {
				e = m.FindEdge(b, a)
			}
			require.NotEqual(t, mesh.NoEdge, e, "segment %d of ring %d is not in the mesh", i, r)
			assert.True(t, m.IsProtected(e), "segment %d of ring %d is not protected", i, r)
		}
	}

	polygons := projectRings(rings, res.Projection)
	var faceArea float64
	for _, f := range m.Faces() {
		faceArea += facePolygon(m, f, res.Projection).Area()
	}
	assert.InDelta(t, evenOddArea(polygons), faceArea, 1e-9*faceArea)

	validateCoverageBySampling(t, m, res.Projection, polygons)
}

func projectRings(rings [][]geom.Point3D, pr geom.Projection) []geom.Polygon {
	polygons := make([]geom.Polygon, len(rings))
	for i, ring := range rings {
		polygons[i] = geom.Polygon{Points: pr.ProjectAll(ring)}
	}
	return polygons
}

func facePolygon(m *mesh.Mesh, f mesh.EdgeID, pr geom.Projection) geom.Polygon {
	var points []geom.Point2D
	for _, p := range m.FacePoints(f) {
		points = append(points, pr.Project(p))
	}
	return geom.Polygon{Points: points}
}

// Each ring adds or removes its area depending on how many rings contain it.
// The rings must not cross.
func evenOddArea(polygons []geom.Polygon) float64 {
	var total float64
	for i, poly := range polygons {
		depth := 0
		for j, other := range polygons {
			if i != j && geom.ContainsPointByEvenOdd([]geom.Polygon{other}, poly.Points[0]) {
				depth++
			}
		}
		if depth%2 == 0 {
			total += poly.Area()
		} else {
			total -= poly.Area()
		}
	}
	return total
}

func validateCoverageBySampling(t *testing.T, m *mesh.Mesh, pr geom.Projection, polygons []geom.Polygon) {
	var all []geom.Point2D
	for _, poly := range polygons {
		all = append(all, poly.Points...)
	}
	box := geom.BoundingBox(all)

	// Pad the bounding box by 10%
	xPadding := (box.Max.X - box.Min.X) * 0.1
	yPadding := (box.Max.Y - box.Min.Y) * 0.1
	minX, minY := box.Min.X-xPadding, box.Min.Y-yPadding
	maxX, maxY := box.Max.X+xPadding, box.Max.Y+yPadding

	// The offset keeps samples off the axis aligned ring edges
	step := math.Max(maxX-minX, maxY-minY) / 50
	offset := step * 0.3183

	faces := m.Faces()
	for y := minY + offset; y <= maxY; y += step {
		for x := minX + offset; x <= maxX; x += step {
			p := geom.Point2D{X: x, Y: y}
			covered := false
			for _, f := range faces {
				if faceContains(m, f, pr, p) {
					covered = true
					break
				}
			}
			if geom.ContainsPointByEvenOdd(polygons, p) {
				assert.True(t, covered, "point %v should be covered", p)
			} else {
				assert.False(t, covered, "point %v should not be covered", p)
			}
		}
	}
}

func faceContains(m *mesh.Mesh, f mesh.EdgeID, pr geom.Projection, p geom.Point2D) bool {
	points := facePolygon(m, f, pr).Points
	for i := range points {
		a, b := points[i], points[(i+1)%3]
		if predicates.Orient2D(a, b, p) < 0 {
			return false
		}
	}
	return true
}
