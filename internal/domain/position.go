package domain

import "math"

// Pitch convention: x runs 0-100 along the long axis (own goal at 0,
// opponent goal at 100 for the home team), y runs 0-80 across.
const (
	PitchLength = 100.0
	PitchWidth  = 80.0
)

// Position is a point on the pitch.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to other.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds is an axis-aligned rectangle used for role-legal zones.
type Bounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Contains reports whether p lies inside b (inclusive).
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Clamp returns p constrained to b. Policies must clamp any
// position-based target to the role's legal bounds before emitting it.
func (b Bounds) Clamp(p Position) Position {
	return Position{
		X: math.Max(b.XMin, math.Min(b.XMax, p.X)),
		Y: math.Max(b.YMin, math.Min(b.YMax, p.Y)),
	}
}
