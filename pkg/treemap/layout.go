package treemap

import (
	"math"
	"sort"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// Layout computes a squarified treemap of items inside container.
//
// Each item receives a rectangle whose area is proportional to its value;
// the returned slice is parallel to items (rects[i] belongs to items[i]).
// When all values are positive the rectangles tile the container exactly,
// up to floating-point rounding, with no overlaps.
//
// Items are laid out greedily in descending value order: rows (or columns,
// whichever orientation keeps tiles squarer) are grown while adding the
// next item does not worsen the row's worst aspect ratio, then closed out
// and the remaining container shrunk by the row's thickness.
//
// Edge cases:
//   - empty items yields an empty slice, not an error
//   - a single item receives the entire container
//   - a zero-area container yields zero-size rectangles at its origin
//
// Values must be finite and non-negative; anything else is rejected here so
// the placement pass stays total. Callers with zero-valued items should
// clamp them with [ClampValues] first.
func Layout(items []Item, container Rect) ([]Rect, error) {
	if err := validate(items, container); err != nil {
		return nil, err
	}

	n := len(items)
	if n == 0 {
		return []Rect{}, nil
	}
	if n == 1 {
		return []Rect{container}, nil
	}

	var total float64
	for i := range items {
		total += items[i].Value
	}

	out := make([]Rect, n)
	if container.Area() == 0 || total == 0 {
		for i := range out {
			out[i] = Rect{X: container.X, Y: container.Y}
		}
		return out, nil
	}

	// Normalize values to areas and order indices by descending area.
	scale := container.Area() / total
	areas := make([]float64, n)
	for i := range items {
		areas[i] = items[i].Value * scale
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return areas[order[a]] > areas[order[b]]
	})

	place(order, areas, container, out)
	return out, nil
}

// place runs the greedy row-building pass, writing each item's rectangle
// into out at its original index.
func place(order []int, areas []float64, remaining Rect, out []Rect) {
	var row []int
	for _, idx := range order {
		if len(row) == 0 {
			row = append(row, idx)
			continue
		}

		w := remaining.shortSide()
		if worst(append(row, idx), areas, w) <= worst(row, areas, w) {
			row = append(row, idx)
			continue
		}

		remaining = layoutRow(row, areas, remaining, out, false)
		row = []int{idx}
	}
	layoutRow(row, areas, remaining, out, true)
}

// worst returns the worst (largest) aspect ratio among the row's tiles if
// the row were laid along a side of length w.
func worst(row []int, areas []float64, w float64) float64 {
	var sum float64
	maxArea, minArea := 0.0, math.MaxFloat64
	for _, idx := range row {
		a := areas[idx]
		sum += a
		maxArea = math.Max(maxArea, a)
		minArea = math.Min(minArea, a)
	}
	if sum == 0 || w == 0 {
		return math.MaxFloat64
	}
	s2, w2 := sum*sum, w*w
	return math.Max(w2*maxArea/s2, s2/(w2*minArea))
}

// layoutRow assigns final rectangles to the row's members along the shared
// axis, splitting the strip proportionally by area, and returns the
// remaining container with the row's thickness subtracted.
//
// The orientation follows the remaining rectangle: when width exceeds
// height the row becomes a vertical strip consuming width, otherwise a
// horizontal strip consuming height. The last row and the last tile in
// every row are stretched to the strip's far edge so the tiling stays
// gapless under floating-point rounding.
func layoutRow(row []int, areas []float64, remaining Rect, out []Rect, last bool) Rect {
	var sum float64
	for _, idx := range row {
		sum += areas[idx]
	}

	if remaining.shortSide() <= 0 || sum <= 0 {
		for _, idx := range row {
			out[idx] = Rect{X: remaining.X, Y: remaining.Y}
		}
		return remaining
	}

	if remaining.Width > remaining.Height {
		// Vertical strip on the left edge.
		thickness := sum / remaining.Height
		if last {
			thickness = remaining.Width
		}
		y := remaining.Y
		for i, idx := range row {
			h := remaining.Height * areas[idx] / sum
			if i == len(row)-1 {
				h = remaining.Y + remaining.Height - y
			}
			out[idx] = Rect{X: remaining.X, Y: y, Width: thickness, Height: h}
			y += h
		}
		remaining.X += thickness
		remaining.Width -= thickness
		return remaining
	}

	// Horizontal strip along the top edge.
	thickness := sum / remaining.Width
	if last {
		thickness = remaining.Height
	}
	x := remaining.X
	for i, idx := range row {
		w := remaining.Width * areas[idx] / sum
		if i == len(row)-1 {
			w = remaining.X + remaining.Width - x
		}
		out[idx] = Rect{X: x, Y: remaining.Y, Width: w, Height: thickness}
		x += w
	}
	remaining.Y += thickness
	remaining.Height -= thickness
	return remaining
}

func validate(items []Item, container Rect) error {
	for i := range items {
		v := items[i].Value
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "item %q has invalid value %v", items[i].ID, v)
		}
	}
	for _, d := range [...]float64{container.X, container.Y, container.Width, container.Height} {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return errors.New(errors.ErrCodeInvalidLayout, "container has non-finite bounds")
		}
	}
	if container.Width < 0 || container.Height < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "container has negative dimensions")
	}
	return nil
}
