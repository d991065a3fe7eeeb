// Package treemap implements a squarified treemap layout engine
// (Bruls/Huizing/van Wijk) for rendering weighted items, typically UTXOs
// weighted by amount, as proportionally-sized tiles inside a container.
//
// Layout is a pure function: it has no shared state and is safe to call
// concurrently on independent inputs. Rectangles are returned in input
// order so callers can zip items back with their tiles.
package treemap

import "math"

// MinValue is the clamping floor for item values. Callers should clamp
// zero or near-zero values up to MinValue (see [ClampValues]) so that no
// item degenerates to a zero-area tile.
const MinValue = 1e-8

// Rect is an axis-aligned rectangle in the container's coordinate space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Intersects reports whether r and o overlap with positive area.
// Rectangles that merely share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Contains reports whether o lies entirely within r, allowing tolerance eps
// on each edge for floating-point rounding.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.X+o.Width <= r.X+r.Width+eps &&
		o.Y+o.Height <= r.Y+r.Height+eps
}

// shortSide returns the length of the rectangle's shorter side.
func (r Rect) shortSide() float64 {
	return math.Min(r.Width, r.Height)
}

// Item is a weighted layout input.
type Item struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// ClampValues returns a copy of items with every value below [MinValue]
// raised to it. Use this before [Layout] when items may carry zero amounts;
// the layout itself treats values as authoritative.
func ClampValues(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Value < MinValue {
			out[i].Value = MinValue
		}
	}
	return out
}
