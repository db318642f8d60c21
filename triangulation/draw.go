package triangulation

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/liwind/pmp-library/dbg"
	"github.com/liwind/pmp-library/surfacemesh"
)

// This is for debugging purposes only. Faces are projected onto the XY plane,
// which is where the test meshes live anyway.

const dbgDrawPadding = 10

func dbgDrawMesh(mesh *surfacemesh.Mesh, scale float64) {
	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)
	for v := surfacemesh.Vertex(0); int(v) < mesh.VertexCount(); v++ {
		p := mesh.Position(v)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for f := surfacemesh.Face(0); int(f) < mesh.FaceCount(); f++ {
		boundary := mesh.FaceVertices(f)
		first := mesh.Position(boundary[0])
		c.MoveTo(first.X, first.Y)
		for _, v := range boundary[1:] {
			p := mesh.Position(v)
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	// Label each face at its centroid so connectivity issues are easier to
	// discuss than "the third triangle from the left".
	c.SetRGB(1, 1, 1)
	for f := surfacemesh.Face(0); int(f) < mesh.FaceCount(); f++ {
		var centerX, centerY float64
		boundary := mesh.FaceVertices(f)
		for _, v := range boundary {
			p := mesh.Position(v)
			centerX += p.X
			centerY += p.Y
		}
		centerX /= float64(len(boundary))
		centerY /= float64(len(boundary))
		// The context is flipped and scaled, which would mirror the text, so
		// draw it in native coordinates.
		centerX, centerY = c.TransformPoint(centerX, centerY)
		c.Push()
		c.Identity()
		c.DrawStringAnchored(dbg.Name(f), centerX, centerY, 0.5, 0.5)
		c.Pop()
	}

	c.SavePNG("/tmp/surface_mesh.png")
	imgcat.CatFile("/tmp/surface_mesh.png", os.Stdout)
}
