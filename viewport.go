package tvtextviewer

// Viewport tracks the window of visual rows currently shown. It is a
// plain value; every operation returns the clamped successor state so
// the invariant TopRow in [0, max(0, total-VisibleRowCount)] holds after
// any sequence of operations.
type Viewport struct {
	TopRow          int
	VisibleRowCount int
}

func (v Viewport) clamp(total int) Viewport {
	max := total - v.VisibleRowCount
	if max < 0 {
		max = 0
	}
	if v.TopRow > max {
		v.TopRow = max
	}
	if v.TopRow < 0 {
		v.TopRow = 0
	}
	return v
}

// Scroll moves the top row by delta (negative is up) and clamps.
func (v Viewport) Scroll(delta, total int) Viewport {
	v.TopRow += delta
	return v.clamp(total)
}

// PageScroll moves by one page in direction dir (negative is up). A page
// is VisibleRowCount-1 rows, leaving one row of overlap for reading
// continuity.
func (v Viewport) PageScroll(dir, total int) Viewport {
	page := v.VisibleRowCount - 1
	if page < 1 {
		page = 1
	}
	if dir < 0 {
		v.TopRow -= page
	} else {
		v.TopRow += page
	}
	return v.clamp(total)
}

// JumpHome scrolls to the first row.
func (v Viewport) JumpHome() Viewport {
	v.TopRow = 0
	return v
}

// JumpEnd scrolls so the last row is the bottom visible row.
func (v Viewport) JumpEnd(total int) Viewport {
	v.TopRow = total
	return v.clamp(total)
}

// Resize changes the visible row count and re-clamps the existing top
// row against the new bounds. The top row is preserved where possible so
// the reader keeps their place across a geometry change.
func (v Viewport) Resize(visible, total int) Viewport {
	if visible < 1 {
		visible = 1
	}
	v.VisibleRowCount = visible
	return v.clamp(total)
}

// VisibleCount returns how many rows are actually on screen:
// min(VisibleRowCount, total-TopRow), never negative.
func (v Viewport) VisibleCount(total int) int {
	n := total - v.TopRow
	if n > v.VisibleRowCount {
		n = v.VisibleRowCount
	}
	if n < 0 {
		n = 0
	}
	return n
}
