// Package aabb indexes the faces of a mesh in a tree of axis aligned bounding
// boxes. A tree is a snapshot of the faces when it was built and only reads
// the mesh, so it must be rebuilt after the mesh changes.
package aabb

import (
	"sort"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// Faces per leaf
const leafSize = 4

type item struct {
	face mesh.EdgeID
	box  Box
}

type node struct {
	box Box
	// Children of an inner node, -1 for a leaf
	left, right int
	// A leaf holds items[start:end]
	start, end int
}

type Tree struct {
	mesh  *mesh.Mesh
	items []item
	nodes []node
}

// Build snapshots the faces of m and splits them recursively at the median
// of the longest axis.
func Build(m *mesh.Mesh) *Tree {
	faces := m.Faces()
	t := &Tree{mesh: m, items: make([]item, len(faces))}
	for i, f := range faces {
		points := m.FacePoints(f)
		t.items[i] = item{face: f, box: BoxOf(points[:]...)}
	}
	if len(faces) > 0 {
		t.build(0, len(faces))
	}
	return t
}

func (t *Tree) build(start, end int) int {
	box := EmptyBox()
	for _, it := range t.items[start:end] {
		box = box.Union(it.box)
	}
	index := len(t.nodes)
	t.nodes = append(t.nodes, node{box: box, left: -1, right: -1, start: start, end: end})
	if end-start <= leafSize {
		return index
	}

	axis := box.LongestAxis()
	items := t.items[start:end]
	sort.Slice(items, func(i, j int) bool {
		return items[i].box.axis(axis).Lo < items[j].box.axis(axis).Lo
	})
	mid := (start + end) / 2
	left := t.build(start, mid)
	right := t.build(mid, end)
	t.nodes[index].left = left
	t.nodes[index].right = right
	return index
}

// Len is the number of faces in the tree.
func (t *Tree) Len() int {
	return len(t.items)
}

// Bounds is the box around every face, empty for an empty tree.
func (t *Tree) Bounds() Box {
	if len(t.nodes) == 0 {
		return EmptyBox()
	}
	return t.nodes[0].box
}

// Query returns the faces whose boxes intersect box.
func (t *Tree) Query(box Box) []mesh.EdgeID {
	var result []mesh.EdgeID
	t.visit(box, func(it item) {
		if it.box.Intersects(box) {
			result = append(result, it.face)
		}
	})
	return result
}

func (t *Tree) visit(box Box, fn func(item)) {
	if len(t.nodes) == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		n := t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.box.Intersects(box) {
			continue
		}
		if n.left < 0 {
			for _, it := range t.items[n.start:n.end] {
				fn(it)
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
}

// SegmentFaces returns the faces that the segment p-q passes through or
// touches. The test is exact. A segment lying in the plane of a face does not
// count as crossing it.
func (t *Tree) SegmentFaces(p, q geom.Point3D) []mesh.EdgeID {
	var result []mesh.EdgeID
	box := BoxOf(p, q)
	t.visit(box, func(it item) {
		if it.box.Intersects(box) && segmentCrossesFace(t.mesh.FacePoints(it.face), p, q) {
			result = append(result, it.face)
		}
	})
	return result
}

func segmentCrossesFace(tri [3]geom.Point3D, p, q geom.Point3D) bool {
	a, b, c := tri[0], tri[1], tri[2]
	sp := predicates.SignOf(predicates.Orient3D(a, b, c, p))
	sq := predicates.SignOf(predicates.Orient3D(a, b, c, q))
	if sp == predicates.Degenerate && sq == predicates.Degenerate {
		return false
	}
	if sp == sq {
		return false
	}

	// The line through p and q must pass on the same side of all three edges
	var seen [3]bool
	for _, edge := range [3][2]geom.Point3D{{a, b}, {b, c}, {c, a}} {
		s := predicates.SignOf(predicates.Orient3D(p, q, edge[0], edge[1]))
		seen[s+1] = true
	}
	return !(seen[0] && seen[2])
}
