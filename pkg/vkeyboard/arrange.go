package vkeyboard

// KeyBox is the on-screen rectangle of a key.
type KeyBox struct {
	Row, Col   int
	X, Y, W, H int32
}

// Contains reports whether x, y is inside the box.
func (b KeyBox) Contains(x, y int32) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Arrange lays the layout's rows out inside a width by height area with
// spacing between keys. Every row is centered on the widest row. Spacers take
// room but get no box.
func Arrange(layout *Layout, width, height, spacing int32) []KeyBox {
	if layout == nil || len(layout.Rows) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	maxUnits := 0.0
	maxKeys := 0
	for _, row := range layout.Rows {
		units := 0.0
		for _, key := range row {
			units += key.Units()
		}
		if units > maxUnits {
			maxUnits, maxKeys = units, len(row)
		}
	}
	if maxUnits == 0 {
		return nil
	}

	unit := float64(width-spacing*int32(maxKeys+1)) / maxUnits
	rows := int32(len(layout.Rows))
	keyHeight := (height - spacing*(rows+1)) / rows
	if unit <= 0 || keyHeight <= 0 {
		return nil
	}

	var boxes []KeyBox
	y := spacing
	for r, row := range layout.Rows {
		rowWidth := spacing * int32(len(row)-1)
		for _, key := range row {
			rowWidth += int32(key.Units() * unit)
		}

		x := (width - rowWidth) / 2
		for c, key := range row {
			w := int32(key.Units() * unit)
			if key.Kind != KindSpacer {
				boxes = append(boxes, KeyBox{Row: r, Col: c, X: x, Y: y, W: w, H: keyHeight})
			}
			x += w + spacing
		}
		y += keyHeight + spacing
	}
	return boxes
}

// HitTest returns the row and column of the box containing x, y.
func HitTest(boxes []KeyBox, x, y int32) (row, col int, ok bool) {
	for _, b := range boxes {
		if b.Contains(x, y) {
			return b.Row, b.Col, true
		}
	}
	return 0, 0, false
}
