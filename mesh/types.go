package mesh

import "github.com/pkg/errors"

// Handles into the mesh arena. They are plain indices, stable for the life of
// the mesh; removed elements are unlinked rather than compacted away.
type VertexID int
type EdgeID int

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
)

type VertexType uint8

const (
	Interior VertexType = iota
	Boundary
	Deleted
	// Translated vertices were moved by an algorithm. They behave as Interior.
	Translated
	// XSection vertices lie on a cross section cut. They behave as Boundary.
	XSection
	// Bounds vertices belong to a temporary bounding structure.
	Bounds
)

func (t VertexType) String() string {
	switch t {
	case Interior:
		return "INTERIOR"
	case Boundary:
		return "BOUNDARY"
	case Deleted:
		return "DELETED"
	case Translated:
		return "TRANSLATED"
	case XSection:
		return "XSECTION"
	case Bounds:
		return "BOUNDS"
	}
	return "UNKNOWN"
}

// Is reports whether a vertex of type t counts as type want. Translated counts
// as Interior, and XSection counts as Boundary. Every type counts as itself.
func (t VertexType) Is(want VertexType) bool {
	if t == want {
		return true
	}
	switch want {
	case Interior:
		return t == Translated
	case Boundary:
		return t == XSection
	}
	return false
}

type EdgeType uint8

const (
	Auxiliary EdgeType = iota
	BoundaryEdge
	Constraint
)

func (t EdgeType) String() string {
	switch t {
	case Auxiliary:
		return "AUXILIARY"
	case BoundaryEdge:
		return "BOUNDARY"
	case Constraint:
		return "CONSTRAINT"
	}
	return "UNKNOWN"
}

// Flag bits are scratch marks for algorithms. The kernel never sets or clears
// them on its own; whoever sets a flag clears it.
type Flag uint8

const (
	Visited Flag = 1 << iota
	Queued
	Outside
	Marked
)

var (
	ErrInvalidHandle = errors.New("invalid handle")
	ErrBoundaryEdge  = errors.New("edge is on the boundary")
	ErrProtectedEdge = errors.New("edge is protected")
	ErrNonManifold   = errors.New("non-manifold edge")
)
