package triangulation

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"

	"github.com/liwind/pmp-library/surfacemesh"
)

// This file parses the svg fixtures into single-face meshes. This is not a
// full (or even correct) svg parser. It parses the SVG, finds whatever the
// first polygon is, and builds a mesh with one polygon face at z=0, wound
// counterclockwise. If anything goes wrong, it fatals.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixtureMesh(name string) (*surfacemesh.Mesh, surfacemesh.Face) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Split(polygons[0].Attributes["points"], " ")
	points := make([]surfacemesh.Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		if pointString == "" {
			continue
		}
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, surfacemesh.Point{X: x, Y: y})
	}

	// Ensure that the polygon is CCW
	if signedArea(points) < 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}

	mesh := surfacemesh.New()
	vertices := make([]surfacemesh.Vertex, len(points))
	for i, p := range points {
		vertices[i] = mesh.AddVertex(p)
	}
	f, err := mesh.AddFace(vertices...)
	if err != nil {
		log.Fatalf("Could not build face for fixture %q: %v", name, err)
	}
	return mesh, f
}

// Shoelace formula over the XY projection.
func signedArea(points []surfacemesh.Point) float64 {
	area := 0.0
	for i, p := range points {
		q := points[(i+1)%len(points)]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}
