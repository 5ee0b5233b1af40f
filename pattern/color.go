package pattern

// RGB is a normalized float color triplet used throughout the pattern core.
// Conversion to display color space happens at draw time.
type RGB struct {
	R, G, B float64
}

// LerpRGB interpolates componentwise between two colors.
func LerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
	}
}

// Scale multiplies all components by s, clamped to [0,1].
func (c RGB) Scale(s float64) RGB {
	return RGB{
		R: clamp01(c.R * s),
		G: clamp01(c.G * s),
		B: clamp01(c.B * s),
	}
}

// Bytes returns the 8-bit channel values.
func (c RGB) Bytes() (r, g, b uint8) {
	return uint8(clamp01(c.R) * 255), uint8(clamp01(c.G) * 255), uint8(clamp01(c.B) * 255)
}
