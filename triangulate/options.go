package triangulate

import (
	"go.uber.org/zap"

	"github.com/osuushi/trimesh/geom"
)

type options struct {
	logger      *zap.Logger
	seed        int64
	planarCheck bool
	projection  geom.Projection

	// Set when the caller chose the projection
	fixedProjection bool
}

func defaultOptions() options {
	return options{
		logger:     zap.NewNop(),
		seed:       1,
		projection: geom.DropZ,
	}
}

type Option func(*options)

// WithLogger sets the logger for progress and debug output. The default
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSeed seeds the random choices of the point location walk. Runs with the
// same seed and input produce the same mesh.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithPlanarCheck makes Triangulate reject 3D input that is not exactly
// planar.
func WithPlanarCheck(enabled bool) Option {
	return func(o *options) {
		o.planarCheck = enabled
	}
}

// WithProjection sets the plane that 3D points are projected onto. Triangulate
// picks one from the input on its own.
func WithProjection(pr geom.Projection) Option {
	return func(o *options) {
		o.projection = pr
		o.fixedProjection = true
	}
}
