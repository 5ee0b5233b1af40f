package pattern

import (
	"image/color"
	"math"
)

// Software rasterizers. These are the CPU fallbacks for the shader
// paths: one field evaluation per stride×stride block, block-filled
// into an RGBA pixel buffer that the renderer streams to a texture.

// RasterizeChladni fills pixels (len w*h) with the shaded nodal field.
// Coordinates are normalized so the shorter screen axis spans [-1,1].
func RasterizeChladni(pixels []color.RGBA, w, h, stride int, n, m, amplitude, time float64, shading ChladniShading, col RGB) {
	if stride < 1 {
		stride = 1
	}
	half := math.Min(float64(w), float64(h)) / 2
	cx := float64(w) / 2
	cy := float64(h) / 2

	for py := 0; py < h; py += stride {
		y := (float64(py) - cy) / half
		for px := 0; px < w; px += stride {
			x := (float64(px) - cx) / half
			r := math.Sqrt(x*x + y*y)

			var c color.RGBA
			c.A = 255
			if r < shading.VignetteOuter {
				v := ChladniValue(x, y, n, m)
				intensity := shading.Intensity(v, r, amplitude, time)
				c.R = uint8(clamp01(col.R*intensity) * 255)
				c.G = uint8(clamp01(col.G*intensity) * 255)
				c.B = uint8(clamp01(col.B*intensity) * 255)
			}

			fillBlock(pixels, w, h, px, py, stride, c)
		}
	}
}

// RasterizeInterference fills pixels with the color-mapped sum of all
// wave sources.
func RasterizeInterference(pixels []color.RGBA, w, h, stride int, sources []WaveSource, wavelength, amplitude, time, exponent float64) {
	if stride < 1 {
		stride = 1
	}
	for py := 0; py < h; py += stride {
		for px := 0; px < w; px += stride {
			v := SumInterference(float64(px), float64(py), sources, wavelength, time)
			rgb := InterferenceColor(v, amplitude, exponent)
			r, g, b := rgb.Bytes()
			fillBlock(pixels, w, h, px, py, stride, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
}

// fillBlock writes one evaluated color into a stride×stride block,
// clipped at the buffer edges.
func fillBlock(pixels []color.RGBA, w, h, px, py, stride int, c color.RGBA) {
	maxY := py + stride
	if maxY > h {
		maxY = h
	}
	maxX := px + stride
	if maxX > w {
		maxX = w
	}
	for by := py; by < maxY; by++ {
		row := by * w
		for bx := px; bx < maxX; bx++ {
			pixels[row+bx] = c
		}
	}
}
