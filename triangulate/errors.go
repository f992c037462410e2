package triangulate

import "github.com/pkg/errors"

var (
	ErrOutsideBounds    = errors.New("point lies outside the bounding triangle")
	ErrConstraintsCross = errors.New("segment crosses an existing constraint")
	ErrDegenerateInput  = errors.New("input needs at least three points that are not collinear")
	ErrNotPlanar        = errors.New("input points are not coplanar")
	ErrInvalidSegment   = errors.New("invalid segment")
	ErrInvalidPoint     = errors.New("coordinate is not finite or out of range")
	ErrFinished         = errors.New("triangulation is already finished")
)
