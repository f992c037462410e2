package aabb

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
)

// n by n unit squares in the z=0 plane, two triangles each
func grid(t *testing.T, n int) *mesh.Mesh {
	var points []geom.Point3D
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			points = append(points, geom.Point3D{X: float64(x), Y: float64(y)})
		}
	}
	var tris [][3]int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*(n+1) + x
			tris = append(tris, [3]int{i, i + 1, i + n + 2}, [3]int{i, i + n + 2, i + n + 1})
		}
	}
	m, err := mesh.FromTriangles(points, tris)
	require.NoError(t, err)
	return m
}

func sorted(faces []mesh.EdgeID) []mesh.EdgeID {
	result := append([]mesh.EdgeID(nil), faces...)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func bruteForce(m *mesh.Mesh, box Box) []mesh.EdgeID {
	var result []mesh.EdgeID
	for _, f := range m.Faces() {
		points := m.FacePoints(f)
		if BoxOf(points[:]...).Intersects(box) {
			result = append(result, f)
		}
	}
	return result
}

func TestBox(t *testing.T) {
	assert.True(t, EmptyBox().IsEmpty())
	b := BoxOf(geom.Point3D{X: 0, Y: 0, Z: 0}, geom.Point3D{X: 2, Y: 1, Z: 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, 2, b.LongestAxis())
	assert.Equal(t, geom.Point3D{X: 1, Y: 0.5, Z: 1.5}, b.Center())
	assert.True(t, b.Contains(geom.Point3D{X: 2, Y: 1, Z: 3}))
	assert.False(t, b.Contains(geom.Point3D{X: 2.1, Y: 1, Z: 3}))

	touching := BoxOf(geom.Point3D{X: 2, Y: 1, Z: 3}, geom.Point3D{X: 5, Y: 5, Z: 5})
	assert.True(t, b.Intersects(touching))
	assert.False(t, b.Intersects(touching.Expanded(-0.1)))
	assert.Equal(t, BoxOf(geom.Point3D{}, geom.Point3D{X: 5, Y: 5, Z: 5}), b.Union(touching))
	assert.Equal(t, b, EmptyBox().Union(b))
}

func TestBuild(t *testing.T) {
	m := grid(t, 10)
	tree := Build(m)
	assert.Equal(t, 200, tree.Len())
	assert.Equal(t, BoxOf(geom.Point3D{}, geom.Point3D{X: 10, Y: 10}), tree.Bounds())

	empty := Build(mesh.New())
	assert.Zero(t, empty.Len())
	assert.True(t, empty.Bounds().IsEmpty())
	assert.Empty(t, empty.Query(BoxOf(geom.Point3D{})))
}

func TestQueryMatchesBruteForce(t *testing.T) {
	m := grid(t, 12)
	tree := Build(m)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a := geom.Point3D{X: rng.Float64()*14 - 1, Y: rng.Float64()*14 - 1, Z: rng.Float64() - 0.5}
		b := geom.Point3D{X: rng.Float64()*14 - 1, Y: rng.Float64()*14 - 1, Z: rng.Float64() - 0.5}
		box := BoxOf(a, b)
		assert.Equal(t, sorted(bruteForce(m, box)), sorted(tree.Query(box)), "box %v", box)
	}
}

func TestSegmentFaces(t *testing.T) {
	m := grid(t, 4)
	tree := Build(m)

	t.Run("through a face", func(t *testing.T) {
		faces := tree.SegmentFaces(geom.Point3D{X: 1.7, Y: 1.2, Z: -1}, geom.Point3D{X: 1.7, Y: 1.2, Z: 1})
		require.Len(t, faces, 1)
		points := m.FacePoints(faces[0])
		assert.True(t, BoxOf(points[:]...).Contains(geom.Point3D{X: 1.7, Y: 1.2}))
	})

	t.Run("through a vertex", func(t *testing.T) {
		// An interior grid vertex has six faces around it
		faces := tree.SegmentFaces(geom.Point3D{X: 2, Y: 2, Z: -1}, geom.Point3D{X: 2, Y: 2, Z: 1})
		assert.Len(t, faces, 6)
	})

	t.Run("ending on the surface", func(t *testing.T) {
		faces := tree.SegmentFaces(geom.Point3D{X: 0.8, Y: 0.1, Z: 0}, geom.Point3D{X: 0.8, Y: 0.1, Z: 1})
		assert.Len(t, faces, 1)
	})

	t.Run("above", func(t *testing.T) {
		assert.Empty(t, tree.SegmentFaces(geom.Point3D{X: 1, Y: 1, Z: 0.5}, geom.Point3D{X: 3, Y: 2, Z: 1}))
	})

	t.Run("in the plane", func(t *testing.T) {
		assert.Empty(t, tree.SegmentFaces(geom.Point3D{X: 0.5, Y: 0.2}, geom.Point3D{X: 3.5, Y: 0.2}))
	})

	t.Run("outside", func(t *testing.T) {
		assert.Empty(t, tree.SegmentFaces(geom.Point3D{X: 5, Y: 5, Z: -1}, geom.Point3D{X: 5, Y: 5, Z: 1}))
	})
}
