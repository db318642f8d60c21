package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/liwind/pmp-library/surfacemesh"
	"github.com/liwind/pmp-library/triangulation"
)

// Demo of face triangulation. Input on stdin should be newline separated
// points in the form "x y" or "x y z", with each polygon face separated by an
// extra newline. Every polygon becomes one face of a shared mesh; faces do not
// share vertices. Polygons should wind counterclockwise.

var objectiveFlag = kingpin.Flag("objective", "Optimization objective.").
	Default("min-area").Enum("min-area", "max-angle")

func main() {
	kingpin.Parse()

	objective := triangulation.MinArea
	if *objectiveFlag == "max-angle" {
		objective = triangulation.MaxAngle
	}

	mesh := readMesh(os.Stdin)
	fmt.Printf("Read %d faces (%d vertices)\n", mesh.FaceCount(), mesh.VertexCount())

	if err := triangulation.Triangulate(mesh, objective); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err))
		os.Exit(1)
	}

	fmt.Println(aurora.Green(fmt.Sprintf(
		"Triangulated: %d faces, %d edges", mesh.FaceCount(), mesh.EdgeCount())))
}

func readMesh(in *os.File) *surfacemesh.Mesh {
	mesh := surfacemesh.New()
	scanner := bufio.NewScanner(in)
	vertices := []surfacemesh.Vertex{}
	for scanner.Scan() {
		line := scanner.Text()

		// An empty line ends the current polygon, if we collected any points.
		if strings.TrimSpace(line) == "" {
			addFace(mesh, vertices)
			vertices = vertices[:0]
			continue
		}

		vertices = append(vertices, mesh.AddVertex(parsePoint(line)))
	}

	// Handle trailing polygon if any
	addFace(mesh, vertices)
	return mesh
}

func addFace(mesh *surfacemesh.Mesh, vertices []surfacemesh.Vertex) {
	if len(vertices) < 3 {
		return
	}
	if _, err := mesh.AddFace(vertices...); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err))
		os.Exit(1)
	}
}

func parsePoint(line string) surfacemesh.Point {
	parts := strings.Fields(line)
	var p surfacemesh.Point
	if len(parts) >= 1 {
		p.X, _ = strconv.ParseFloat(parts[0], 64)
	}
	if len(parts) >= 2 {
		p.Y, _ = strconv.ParseFloat(parts[1], 64)
	}
	if len(parts) >= 3 {
		p.Z, _ = strconv.ParseFloat(parts[2], 64)
	}
	return p
}
