// Package render draws meshes for debugging, either to a PNG file or straight
// into the terminal (iTerm only).
package render

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
)

// Padding around the mesh, in pixels
const padding = 40

type Options struct {
	// Pixels per unit. Zero fits the mesh into Size.
	Scale float64
	// Longest side of the image when Scale is zero
	Size int
	// Plane to draw in. The zero value draws (y, z).
	Projection geom.Projection
	// Half-edges carrying this flag are highlighted
	Flag mesh.Flag
	// Write the debug name next to each vertex
	Labels bool
}

// DefaultOptions draws the XY plane into an 800 pixel image.
func DefaultOptions() Options {
	return Options{Size: 800, Projection: geom.DropZ}
}

// Draw renders the faces, edges and vertices of m. Edges are coloured by type:
// auxiliary gray, boundary cyan, constraint red. Flagged edges are yellow.
func Draw(m *mesh.Mesh, opts Options) *gg.Context {
	var points []geom.Point2D
	live := make([]bool, m.NumVertices())
	for _, tri := range m.Triangles() {
		for _, v := range tri {
			live[v] = true
		}
	}
	for v := range live {
		if live[v] {
			points = append(points, opts.Projection.Project(m.Position(mesh.VertexID(v))))
		}
	}
	box := geom.BoundingBox(points)
	if box.IsEmpty() {
		box = geom.Box2D{}
	}

	scale := opts.Scale
	if scale <= 0 {
		size := opts.Size
		if size <= 0 {
			size = 800
		}
		extent := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
		if extent == 0 {
			extent = 1
		}
		scale = float64(size-2*padding) / extent
	}

	width := int(scale*(box.Max.X-box.Min.X)) + padding*2
	height := int(scale*(box.Max.Y-box.Min.Y)) + padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-box.Min.X, -box.Min.Y)

	at := func(v mesh.VertexID) geom.Point2D {
		return opts.Projection.Project(m.Position(v))
	}

	for _, f := range m.Faces() {
		vs := m.FaceVertices(f)
		a, b, cc := at(vs[0]), at(vs[1]), at(vs[2])
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(cc.X, cc.Y)
		c.ClosePath()
	}
	c.SetRGBA(0.3, 0.2, 1, 0.5)
	c.Fill()

	// Line widths are in user units after scaling
	c.SetLineWidth(2 / scale)
	for i := 0; i < m.NumEdges(); i++ {
		e := mesh.EdgeID(i)
		if !m.IsLive(e) {
			continue
		}
		// Draw each undirected edge once, but always draw flagged halves
		s := m.Sibling(e)
		flagged := opts.Flag != 0 && m.IsFlagged(e, opts.Flag)
		if s != mesh.NoEdge && s < e && !flagged {
			continue
		}
		a, b := at(m.Origin(e)), at(m.Dest(e))
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		setEdgeColor(c, m.EdgeType(e), flagged)
		c.Stroke()
	}

	for v := range live {
		if !live[v] {
			continue
		}
		id := mesh.VertexID(v)
		p := at(id)
		// Go back to identity so that dots and text are not scaled or flipped
		x, y := c.TransformPoint(p.X, p.Y)
		c.Push()
		c.Identity()
		if m.IsVertexType(id, mesh.Boundary) {
			c.SetRGB(0, 1, 1)
		} else {
			c.SetRGB(1, 1, 1)
		}
		c.DrawCircle(x, y, 3)
		c.Fill()
		if opts.Labels {
			c.SetRGB(1, 1, 1)
			c.DrawStringAnchored(m.DbgName(id), x+5, y-5, 0, 0)
		}
		c.Pop()
	}
	return c
}

func setEdgeColor(c *gg.Context, t mesh.EdgeType, flagged bool) {
	switch {
	case flagged:
		c.SetRGB(1, 1, 0)
	case t == mesh.Constraint:
		c.SetRGB(1, 0, 0)
	case t == mesh.BoundaryEdge:
		c.SetRGB(0, 1, 1)
	default:
		c.SetRGB(0.5, 0.5, 0.5)
	}
}

func SavePNG(m *mesh.Mesh, path string, opts Options) error {
	if err := Draw(m, opts).SavePNG(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// WritePNG encodes the drawing of m as PNG to w.
func WritePNG(m *mesh.Mesh, w io.Writer, opts Options) error {
	return errors.Wrap(Draw(m, opts).EncodePNG(w), "encode png")
}

// Imgcat prints the drawing of m to w using the iTerm inline image protocol.
func Imgcat(m *mesh.Mesh, w io.Writer, opts Options) error {
	return errors.Wrap(imgcat.CatImage(Draw(m, opts).Image(), w), "imgcat")
}
