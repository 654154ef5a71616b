package sdlhost

import (
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

func drawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, color sdl.Color) {
	if radius <= 0 {
		renderer.SetDrawColor(color.R, color.G, color.B, color.A)
		renderer.FillRect(rect)
		return
	}

	gfx.BoxColor(renderer, rect.X+radius, rect.Y, rect.X+rect.W-radius, rect.Y+rect.H, color)
	gfx.BoxColor(renderer, rect.X, rect.Y+radius, rect.X+radius, rect.Y+rect.H-radius, color)
	gfx.BoxColor(renderer, rect.X+rect.W-radius, rect.Y+radius, rect.X+rect.W, rect.Y+rect.H-radius, color)

	for _, c := range [][2]int32{
		{rect.X + radius, rect.Y + radius},
		{rect.X + rect.W - radius, rect.Y + radius},
		{rect.X + radius, rect.Y + rect.H - radius},
		{rect.X + rect.W - radius, rect.Y + rect.H - radius},
	} {
		gfx.FilledCircleColor(renderer, c[0], c[1], radius, color)
		gfx.AACircleColor(renderer, c[0], c[1], radius, color)
	}
}

// drawCenteredText renders text in the middle of rect.
func drawCenteredText(renderer *sdl.Renderer, font *ttf.Font, text string, rect sdl.Rect, color sdl.Color) {
	if text == "" || font == nil {
		return
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return
	}
	defer texture.Destroy()

	dst := sdl.Rect{
		X: rect.X + (rect.W-surface.W)/2,
		Y: rect.Y + (rect.H-surface.H)/2,
		W: surface.W,
		H: surface.H,
	}
	renderer.Copy(texture, nil, &dst)
}

// drawText renders text left aligned and vertically centered in rect and
// returns the x just after it.
func drawText(renderer *sdl.Renderer, font *ttf.Font, text string, rect sdl.Rect, color sdl.Color) int32 {
	if text == "" || font == nil {
		return rect.X
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return rect.X
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return rect.X
	}
	defer texture.Destroy()

	w := min(surface.W, rect.W)
	src := sdl.Rect{X: surface.W - w, Y: 0, W: w, H: surface.H}
	dst := sdl.Rect{X: rect.X, Y: rect.Y + (rect.H-surface.H)/2, W: w, H: surface.H}
	renderer.Copy(texture, &src, &dst)
	return dst.X + w
}
