package triangulate

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
)

func TestTriangulateFixtures(t *testing.T) {
	fixtures := []struct {
		name  string
		rings [][]geom.Point3D
	}{
		{"SimpleStar", SimpleStar()},
		{"SquareWithHole", SquareWithHole()},
		{"StarOutline", StarOutline()},
		{"StarStripes", StarStripes()},
		{"MultiLayeredHoles", MultiLayeredHoles()},
		{"TiltedSquare", TiltedSquare()},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			res, err := Triangulate(context.Background(), Input{Rings: fixture.rings}, WithPlanarCheck(true))
			require.NoError(t, err)
			assertValidTriangulation(t, fixture.rings, res)
		})
	}
}

func TestTriangulateWindingDoesNotMatter(t *testing.T) {
	rings := SquareWithHole()
	flipped := [][]geom.Point3D{reversed(rings[0]), reversed(rings[1])}

	a, err := Triangulate(context.Background(), Input{Rings: rings})
	require.NoError(t, err)
	b, err := Triangulate(context.Background(), Input{Rings: flipped})
	require.NoError(t, err)
	assert.Equal(t, a.Mesh.FaceCount(), b.Mesh.FaceCount())
	assertValidTriangulation(t, flipped, b)
}

func TestTriangulateTiltedSquareProjection(t *testing.T) {
	res, err := Triangulate(context.Background(), Input{Rings: TiltedSquare()})
	require.NoError(t, err)
	assert.Equal(t, geom.Projection{Drop: 0}, res.Projection)
	assert.Equal(t, 2, res.Mesh.FaceCount())
}

// The unit square, as points with no rings: the hull becomes the boundary.
func TestTriangulateSquarePoints(t *testing.T) {
	points := []geom.Point3D{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	res, err := Triangulate(context.Background(), Input{Points: points})
	require.NoError(t, err)

	m := res.Mesh
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.EdgeCount())
	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 4)
	for _, e := range loops[0] {
		assert.True(t, m.IsType(e, mesh.BoundaryEdge))
	}
	for _, v := range res.PointVertices {
		assert.Equal(t, mesh.Boundary, m.VertexType(v))
	}
}

func TestTriangulateRandomPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var points []geom.Point3D
	for i := 0; i < 300; i++ {
		points = append(points, geom.Point3D{X: rng.Float64() * 100, Y: rng.Float64() * 100})
	}
	// A few exact repeats and a collinear run
	points = append(points, points[0], points[10])
	for i := 0; i < 10; i++ {
		points = append(points, geom.Point3D{X: 10 + float64(i)*5, Y: 50})
	}

	res, err := Triangulate(context.Background(), Input{Points: points})
	require.NoError(t, err)
	m := res.Mesh
	require.NoError(t, m.Validate())
	require.NoError(t, CheckDelaunay(m, res.Projection))
	assert.Equal(t, res.PointVertices[0], res.PointVertices[300])
	assert.Equal(t, res.PointVertices[10], res.PointVertices[301])

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	hull := ConvexHull(geom.DropZ.ProjectAll(points))
	assert.Len(t, loops[0], len(hull))

	// Euler: F = 2V - B - 2 for a triangulated disk
	assert.Equal(t, 2*m.VertexCount()-len(loops[0])-2, m.FaceCount())
}

func TestTriangulateSameSeedSameMesh(t *testing.T) {
	in := Input{Rings: MultiLayeredHoles()}
	a, err := Triangulate(context.Background(), in, WithSeed(7))
	require.NoError(t, err)
	b, err := Triangulate(context.Background(), in, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a.Mesh.Triangles(), b.Mesh.Triangles())
}

func TestTriangulateLoosePoints(t *testing.T) {
	in := Input{
		Rings:  [][]geom.Point3D{{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}},
		Points: []geom.Point3D{{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 9, Y: 9}},
	}
	res, err := Triangulate(context.Background(), in)
	require.NoError(t, err)
	m := res.Mesh
	assert.Equal(t, mesh.Interior, m.VertexType(res.PointVertices[0]))
	assert.Equal(t, mesh.Interior, m.VertexType(res.PointVertices[1]))
	assert.Equal(t, mesh.Deleted, m.VertexType(res.PointVertices[2]))
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 6, m.FaceCount())
}

func TestTriangulateErrors(t *testing.T) {
	t.Run("collinear", func(t *testing.T) {
		points := []geom.Point3D{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
		_, err := Triangulate(context.Background(), Input{Points: points})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := Triangulate(context.Background(), Input{Points: []geom.Point3D{{X: 0}, {Y: 1}}})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("not planar", func(t *testing.T) {
		ring := []geom.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1, Z: 1e-12}}
		_, err := Triangulate(context.Background(), Input{Rings: [][]geom.Point3D{ring}}, WithPlanarCheck(true))
		assert.ErrorIs(t, err, ErrNotPlanar)

		// Without the check the ring is projected flat
		_, err = Triangulate(context.Background(), Input{Rings: [][]geom.Point3D{ring}})
		assert.NoError(t, err)
	})

	t.Run("crossing rings", func(t *testing.T) {
		rings := [][]geom.Point3D{
			{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
			{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}},
		}
		_, err := Triangulate(context.Background(), Input{Rings: rings})
		assert.ErrorIs(t, err, ErrConstraintsCross)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		huge := func(size float64) []geom.Point3D {
			return []geom.Point3D{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}}
		}
		inputs := map[string]Input{
			"NaN point":     {Rings: [][]geom.Point3D{huge(1)}, Points: []geom.Point3D{{X: math.NaN(), Y: 0.5}}},
			"infinite ring": {Rings: [][]geom.Point3D{{{X: 0, Y: 0}, {X: math.Inf(1), Y: 0}, {X: 0, Y: 1}}}},
			"NaN z":         {Rings: [][]geom.Point3D{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1, Z: math.NaN()}}}},
			"overflowing":   {Rings: [][]geom.Point3D{huge(1e300)}},
			"underflowing":  {Rings: [][]geom.Point3D{huge(1e-200)}},
		}
		for name, in := range inputs {
			_, err := Triangulate(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidPoint, name)
		}

		// The extremes of the accepted range still triangulate
		for _, size := range []float64{1e50, 1e-25} {
			res, err := Triangulate(context.Background(), Input{Rings: [][]geom.Point3D{huge(size)}})
			require.NoError(t, err, "size %g", size)
			assert.Equal(t, 2, res.Mesh.FaceCount(), "size %g", size)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Triangulate(ctx, Input{Rings: SimpleStar()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func square(t *testing.T) (*Triangulator, [4]mesh.VertexID) {
	tr, err := New(geom.Box2D{Min: geom.Point2D{X: 0, Y: 0}, Max: geom.Point2D{X: 1, Y: 1}})
	require.NoError(t, err)
	var ids [4]mesh.VertexID
	for i, p := range []geom.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
		v, err := tr.InsertPoint(p)
		require.NoError(t, err)
		ids[i] = v
	}
	return tr, ids
}

func TestInsertPoint(t *testing.T) {
	tr, ids := square(t)
	m := tr.Mesh()
	require.NoError(t, m.Validate())
	require.NoError(t, CheckDelaunay(m, tr.Projection()))
	// Three bounds vertices and four corners
	assert.Equal(t, 7, m.NumVertices())

	t.Run("duplicate", func(t *testing.T) {
		v, err := tr.InsertPoint(geom.Point3D{X: 1, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, ids[2], v)
		assert.Equal(t, 7, m.NumVertices())
	})

	t.Run("outside", func(t *testing.T) {
		faces := m.FaceCount()
		_, err := tr.InsertPoint(geom.Point3D{X: 1e6, Y: 1e6})
		assert.ErrorIs(t, err, ErrOutsideBounds)
		assert.Equal(t, 7, m.NumVertices())
		assert.Equal(t, faces, m.FaceCount())
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		faces := m.FaceCount()
		for _, p := range []geom.Point3D{
			{X: math.NaN(), Y: 0.5},
			{X: 0.5, Y: math.Inf(-1)},
			{X: 0.5, Y: 0.5, Z: math.Inf(1)},
			{X: 1e200, Y: 0.5},
			{X: 0.5, Y: 1e-100},
		} {
			_, err := tr.InsertPoint(p)
			assert.ErrorIs(t, err, ErrInvalidPoint, "%v", p)
		}
		assert.Equal(t, 7, m.NumVertices())
		assert.Equal(t, faces, m.FaceCount())
		assert.NoError(t, m.Validate())
	})

	t.Run("on an edge", func(t *testing.T) {
		v, err := tr.InsertPoint(geom.Point3D{X: 0.5, Y: 0})
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		require.NoError(t, CheckDelaunay(m, tr.Projection()))
		assert.NotEqual(t, mesh.NoEdge, m.FindEdge(ids[0], v))
		assert.NotEqual(t, mesh.NoEdge, m.FindEdge(v, ids[1]))
	})
}

func TestNewRejectsInvalidBox(t *testing.T) {
	for _, box := range []geom.Box2D{
		{Min: geom.Point2D{X: -1e300, Y: 0}, Max: geom.Point2D{X: 1e300, Y: 1}},
		{Min: geom.Point2D{X: math.NaN(), Y: 0}, Max: geom.Point2D{X: 1, Y: 1}},
		{Min: geom.Point2D{X: 0, Y: 0}, Max: geom.Point2D{X: 1, Y: math.Inf(1)}},
	} {
		_, err := New(box)
		assert.ErrorIs(t, err, ErrInvalidPoint, "%v to %v", box.Min, box.Max)
	}

	_, err := New(geom.EmptyBox2D())
	assert.NoError(t, err)
}

func TestInsertConstraint(t *testing.T) {
	// A thin diamond: Delaunay connects the near points, the constraint forces
	// the long diagonal instead.
	tr, err := New(geom.Box2D{Min: geom.Point2D{X: 0, Y: -1}, Max: geom.Point2D{X: 10, Y: 1}})
	require.NoError(t, err)
	var ids []mesh.VertexID
	for _, p := range []geom.Point3D{{X: 0, Y: 0}, {X: 5, Y: -1}, {X: 10, Y: 0}, {X: 5, Y: 1}} {
		v, err := tr.InsertPoint(p)
		require.NoError(t, err)
		ids = append(ids, v)
	}
	m := tr.Mesh()
	require.NotEqual(t, mesh.NoEdge, m.FindEdge(ids[1], ids[3]))
	require.Equal(t, mesh.NoEdge, m.FindEdge(ids[0], ids[2]))

	require.NoError(t, tr.InsertConstraint(ids[0], ids[2]))
	e := m.FindEdge(ids[0], ids[2])
	require.NotEqual(t, mesh.NoEdge, e)
	assert.True(t, m.IsType(e, mesh.Constraint))
	assert.Equal(t, mesh.NoEdge, m.FindEdge(ids[1], ids[3]))
	require.NoError(t, m.Validate())
	require.NoError(t, CheckDelaunay(m, tr.Projection()))

	// Inserting the same segment again is a no-op
	require.NoError(t, tr.InsertConstraint(ids[2], ids[0]))
	assert.True(t, m.IsType(e, mesh.Constraint))

	// Boundary insertion does not downgrade a constraint
	require.NoError(t, tr.InsertBoundary(ids[0], ids[2]))
	assert.True(t, m.IsType(e, mesh.Constraint))
}

func TestInsertConstraintCrossing(t *testing.T) {
	tr, ids := square(t)
	m := tr.Mesh()
	require.NoError(t, tr.InsertConstraint(ids[0], ids[2]))

	before := fmt.Sprint(m.Triangles())
	err := tr.InsertConstraint(ids[1], ids[3])
	assert.ErrorIs(t, err, ErrConstraintsCross)
	assert.Equal(t, before, fmt.Sprint(m.Triangles()))
	require.NoError(t, m.Validate())
}

func TestInsertConstraintThroughVertices(t *testing.T) {
	tr, err := New(geom.Box2D{Min: geom.Point2D{X: 0, Y: -1}, Max: geom.Point2D{X: 4, Y: 1}})
	require.NoError(t, err)
	var ids []mesh.VertexID
	for _, p := range []geom.Point3D{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0},
		{X: 2, Y: 1}, {X: 2, Y: -1}, {X: 1, Y: 0.5}, {X: 3, Y: -0.5},
	} {
		v, err := tr.InsertPoint(p)
		require.NoError(t, err)
		ids = append(ids, v)
	}
	m := tr.Mesh()

	require.NoError(t, tr.InsertConstraint(ids[0], ids[3]))
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		e := m.FindEdge(ids[pair[0]], ids[pair[1]])
		require.NotEqual(t, mesh.NoEdge, e, "piece %v", pair)
		assert.True(t, m.IsType(e, mesh.Constraint), "piece %v", pair)
	}
	require.NoError(t, m.Validate())
	require.NoError(t, CheckDelaunay(m, tr.Projection()))

	// Points inserted on a constraint split it
	v, err := tr.InsertPoint(geom.Point3D{X: 2, Y: 0})
	require.NoError(t, err)
	for _, w := range []mesh.VertexID{ids[1], ids[2]} {
		e := m.FindEdge(v, w)
		require.NotEqual(t, mesh.NoEdge, e)
		assert.True(t, m.IsType(e, mesh.Constraint))
	}
}

func TestInsertConstraintInvalid(t *testing.T) {
	tr, ids := square(t)

	assert.ErrorIs(t, tr.InsertConstraint(ids[0], ids[0]), ErrInvalidSegment)
	assert.ErrorIs(t, tr.InsertConstraint(ids[0], tr.bounds[0]), ErrInvalidSegment)
	assert.ErrorIs(t, tr.InsertConstraint(ids[0], 99), mesh.ErrInvalidHandle)
}

func TestFinish(t *testing.T) {
	tr, ids := square(t)
	for i := range ids {
		require.NoError(t, tr.InsertBoundary(ids[i], ids[(i+1)%4]))
	}
	require.NoError(t, tr.Finish())

	m := tr.Mesh()
	assert.Equal(t, 2, m.FaceCount())
	for _, v := range tr.bounds {
		assert.Equal(t, mesh.Deleted, m.VertexType(v))
	}
	for _, v := range ids {
		assert.Equal(t, mesh.Boundary, m.VertexType(v))
	}

	assert.ErrorIs(t, tr.Finish(), ErrFinished)
	_, err := tr.InsertPoint(geom.Point3D{X: 0.5, Y: 0.5})
	assert.ErrorIs(t, err, ErrFinished)
	assert.ErrorIs(t, tr.InsertConstraint(ids[0], ids[2]), ErrFinished)
}

func TestConvexHull(t *testing.T) {
	points := []geom.Point2D{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2},
		{X: 0, Y: 2}, {X: 1, Y: 0}, {X: 2, Y: 2}, {X: 0.5, Y: 1.5},
	}
	assert.Equal(t, []int{0, 1, 3, 4}, ConvexHull(points))

	assert.Len(t, ConvexHull([]geom.Point2D{{X: 0}, {X: 1}, {X: 2}}), 2)
	assert.Len(t, ConvexHull([]geom.Point2D{{X: 1}, {X: 1}}), 1)
}
