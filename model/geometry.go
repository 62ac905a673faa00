package model

import "math"

// Point represents a 2D point in slide space (inches, top-left origin).
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Box represents a rectangle in slide space. Coordinates are in inches
// with the origin at the top-left corner of the slide, matching how
// OOXML stores shape offsets.
type Box struct {
	X      float64 // Left
	Y      float64 // Top (slide coordinate system)
	Width  float64
	Height float64
}

// NewBox creates a box from coordinates
func NewBox(x, y, width, height float64) Box {
	return Box{X: x, Y: y, Width: width, Height: height}
}

// BoxFromEMU creates a box from OOXML offset/extent values in EMUs.
func BoxFromEMU(offX, offY, extW, extH int64) Box {
	return Box{
		X:      EMUToInches(offX),
		Y:      EMUToInches(offY),
		Width:  EMUToInches(extW),
		Height: EMUToInches(extH),
	}
}

// Left returns the left edge X coordinate
func (b Box) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b Box) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b Box) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b Box) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b Box) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the box
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// ContainsBox checks if another box lies entirely inside this one.
func (b Box) ContainsBox(other Box) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Top() >= b.Top() && other.Bottom() <= b.Bottom()
}

// Intersects checks if two boxes intersect
func (b Box) Intersects(other Box) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Intersection returns the intersection of two boxes
func (b Box) Intersection(other Box) Box {
	if !b.Intersects(other) {
		return Box{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Top(), other.Top())
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return Box{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the union of two boxes
func (b Box) Union(other Box) Box {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return Box{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the box
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// Expand expands the box by a margin on all sides
func (b Box) Expand(margin float64) Box {
	return Box{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// OverlapRatio calculates the overlap ratio with another box
// Returns value between 0 and 1
func (b Box) OverlapRatio(other Box) float64 {
	if !b.Intersects(other) {
		return 0
	}

	intersection := b.Intersection(other)
	minArea := math.Min(b.Area(), other.Area())

	if minArea == 0 {
		return 0
	}

	return intersection.Area() / minArea
}

// IsEmpty returns true if the box has zero area
func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the box has positive dimensions
func (b Box) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
