package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// streamTexture is a CPU pixel buffer streamed to a GPU texture every
// frame; the software rasterizers write into Pixels and Draw uploads.
type streamTexture struct {
	Pixels []color.RGBA
	tex    rl.Texture2D
	w, h   int
	loaded bool
}

func newStreamTexture(w, h int) *streamTexture {
	st := &streamTexture{}
	st.alloc(w, h)
	return st
}

func (st *streamTexture) alloc(w, h int) {
	if st.loaded {
		rl.UnloadTexture(st.tex)
	}
	st.w = w
	st.h = h
	st.Pixels = make([]color.RGBA, w*h)

	img := rl.GenImageColor(w, h, rl.Black)
	st.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	st.loaded = true
}

// Resize reallocates the buffer and texture.
func (st *streamTexture) Resize(w, h int) {
	if w == st.w && h == st.h {
		return
	}
	st.alloc(w, h)
}

// Draw uploads the pixel buffer and blits it to the full screen.
func (st *streamTexture) Draw() {
	rl.UpdateTexture(st.tex, st.Pixels)
	rl.DrawTexturePro(
		st.tex,
		rl.Rectangle{X: 0, Y: 0, Width: float32(st.w), Height: float32(st.h)},
		rl.Rectangle{X: 0, Y: 0, Width: float32(st.w), Height: float32(st.h)},
		rl.Vector2{},
		0,
		rl.White,
	)
}

// Unload releases the texture. Idempotent.
func (st *streamTexture) Unload() {
	if st.loaded {
		rl.UnloadTexture(st.tex)
		st.loaded = false
	}
}
