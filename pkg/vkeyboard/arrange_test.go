package vkeyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrange(t *testing.T) {
	r := newTestRegistry(t)
	numpad, _ := r.Layout("Numpad")

	boxes := Arrange(numpad, 500, 400, 10)

	spacers := 0
	for _, row := range numpad.Rows {
		for _, key := range row {
			if key.Kind == KindSpacer {
				spacers++
			}
		}
	}
	require.Positive(t, spacers)
	require.Len(t, boxes, numpad.KeyCount()-spacers)

	for _, b := range boxes {
		assert.GreaterOrEqual(t, b.X, int32(0))
		assert.LessOrEqual(t, b.X+b.W, int32(500))
		assert.LessOrEqual(t, b.Y+b.H, int32(400))
	}

	seven := boxes[0]
	assert.Equal(t, 0, seven.Row)
	assert.Equal(t, 0, seven.Col)

	row, col, ok := HitTest(boxes, seven.X+1, seven.Y+1)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	_, _, ok = HitTest(boxes, 0, 0)
	assert.False(t, ok)
}

func TestArrange_WideKeys(t *testing.T) {
	layout := &Layout{Rows: [][]Key{
		{{Base: "a"}, {Base: "Bksp", Kind: KindBackspace}},
	}}

	boxes := Arrange(layout, 310, 100, 10)
	require.Len(t, boxes, 2)
	assert.Equal(t, boxes[0].W*2, boxes[1].W)
}

func TestArrange_Degenerate(t *testing.T) {
	assert.Nil(t, Arrange(nil, 100, 100, 1))
	assert.Nil(t, Arrange(&Layout{Rows: [][]Key{{{Base: "a"}}}}, 0, 100, 1))
	assert.Nil(t, Arrange(&Layout{Rows: [][]Key{{{Base: "a"}}}}, 100, 100, 80))
}
