package treemap

import (
	"github.com/A-LKT/DiskPeek/internal/domain"
)

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (rect Rect) Area() float64 {
	return rect.W * rect.H
}

// Item is a weighted layout input. Weights must be normalized by the caller
// so that their sum equals the area of the target bounds.
type Item struct {
	Weight float64
	Node   *domain.Node
}

// Placed is one laid-out item.
type Placed struct {
	Rect Rect
	Node *domain.Node
}

// Layout tiles a directory's children into bounds, largest first. Children
// with zero size receive no rectangle; when maxShown is positive only the
// top-N children by size are laid out. Children are assumed to be in their
// invariant descending-size order.
func Layout(children []*domain.Node, bounds Rect, maxShown int) []Placed {
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil
	}
	visible := children
	if maxShown > 0 && len(visible) > maxShown {
		visible = visible[:maxShown]
	}
	var total int64
	for _, child := range visible {
		total += child.Size
	}
	if total <= 0 {
		return nil
	}
	scale := bounds.Area() / float64(total)
	items := make([]Item, 0, len(visible))
	for _, child := range visible {
		if child.Size <= 0 {
			continue
		}
		items = append(items, Item{Weight: float64(child.Size) * scale, Node: child})
	}
	return Squarify(items, bounds)
}

// Squarify tiles the items into bounds with the squarified-treemap
// algorithm: items are batched greedily into rows as long as adding the next
// item does not worsen the row's worst aspect ratio, each closed row is laid
// out as parallel strips along the shorter edge of the remaining bounds, and
// the orientation is re-chosen per row from the remaining bounds' shape.
// Weights must sum to the bounds area; the result tiles bounds completely.
func Squarify(items []Item, bounds Rect) []Placed {
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil
	}

	filtered := items[:0:0]
	for _, item := range items {
		if item.Weight > 0 {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	placed := make([]Placed, 0, len(filtered))
	remaining := bounds

	var row []Item
	var rowSum, rowMax, rowMin float64

	for _, item := range filtered {
		if len(row) == 0 {
			row = append(row, item)
			rowSum, rowMax, rowMin = item.Weight, item.Weight, item.Weight
			continue
		}
		short := shortSide(remaining)
		current := worstRatio(rowSum, rowMax, rowMin, short)
		extended := worstRatio(rowSum+item.Weight, maxFloat(rowMax, item.Weight), minFloat(rowMin, item.Weight), short)
		if extended <= current {
			row = append(row, item)
			rowSum += item.Weight
			rowMax = maxFloat(rowMax, item.Weight)
			rowMin = minFloat(rowMin, item.Weight)
			continue
		}
		remaining = layoutRow(row, rowSum, remaining, false, &placed)
		row = append(row[:0], item)
		rowSum, rowMax, rowMin = item.Weight, item.Weight, item.Weight
	}
	layoutRow(row, rowSum, remaining, true, &placed)

	return placed
}

// layoutRow lays the row's members out as parallel strips along the shorter
// edge of remaining, consumes the row's thickness and returns what is left.
// The final row is flushed to the full remaining extent so that rounding
// drift never leaves a gap.
func layoutRow(row []Item, sum float64, remaining Rect, last bool, placed *[]Placed) Rect {
	if remaining.W >= remaining.H {
		thickness := sum / remaining.H
		if last || thickness > remaining.W {
			thickness = remaining.W
		}
		y := remaining.Y
		for i, item := range row {
			height := item.Weight / sum * remaining.H
			if i == len(row)-1 {
				height = remaining.Y + remaining.H - y
			}
			*placed = append(*placed, Placed{Rect: Rect{X: remaining.X, Y: y, W: thickness, H: height}, Node: item.Node})
			y += height
		}
		remaining.X += thickness
		remaining.W -= thickness
	} else {
		thickness := sum / remaining.W
		if last || thickness > remaining.H {
			thickness = remaining.H
		}
		x := remaining.X
		for i, item := range row {
			width := item.Weight / sum * remaining.W
			if i == len(row)-1 {
				width = remaining.X + remaining.W - x
			}
			*placed = append(*placed, Placed{Rect: Rect{X: x, Y: remaining.Y, W: width, H: thickness}, Node: item.Node})
			x += width
		}
		remaining.Y += thickness
		remaining.H -= thickness
	}
	return remaining
}

// worstRatio is the worst aspect ratio any member of a row with the given
// weight sum, max and min would get if the row were laid along an edge of
// the given length.
func worstRatio(sum, max, min, edge float64) float64 {
	squaredEdge := edge * edge
	squaredSum := sum * sum
	return maxFloat(squaredEdge*max/squaredSum, squaredSum/(squaredEdge*min))
}

func shortSide(rect Rect) float64 {
	return minFloat(rect.W, rect.H)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
