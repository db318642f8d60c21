package surfacemesh

import "math"

// A Point is a position in 3-D space. It doubles as a vector, depending on
// context.
type Point struct {
	X, Y, Z float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p x q.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

func (p Point) SqrNorm() float64 {
	return p.Dot(p)
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalize returns the unit vector in p's direction. A zero vector yields
// NaNs.
func (p Point) Normalize() Point {
	return p.Scale(1 / p.Norm())
}
