package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// fieldShader renders the Chladni field as a fullscreen fragment pass.
type fieldShader struct {
	shader rl.Shader

	resolutionLoc    int32
	modeNLoc         int32
	modeMLoc         int32
	amplitudeLoc     int32
	timeLoc          int32
	baseColorLoc     int32
	lineThicknessLoc int32
	vignetteInnerLoc int32
	vignetteOuterLoc int32
	ambientWobbleLoc int32

	width, height float32
	loaded        bool
}

// newFieldShader compiles the embedded fragment shader. When the
// compile fails raylib substitutes its default shader, which lacks our
// uniforms; a missing uniform location is therefore the failure signal.
func newFieldShader(cfg *config.ChladniConfig, width, height int) (*fieldShader, error) {
	fs := &fieldShader{
		width:  float32(width),
		height: float32(height),
	}

	fs.shader = rl.LoadShaderFromMemory("", chladniFragmentShader)
	fs.modeNLoc = rl.GetShaderLocation(fs.shader, "modeN")
	if fs.modeNLoc < 0 {
		rl.UnloadShader(fs.shader)
		return nil, fmt.Errorf("chladni fragment shader did not compile")
	}
	fs.loaded = true

	fs.resolutionLoc = rl.GetShaderLocation(fs.shader, "resolution")
	fs.modeMLoc = rl.GetShaderLocation(fs.shader, "modeM")
	fs.amplitudeLoc = rl.GetShaderLocation(fs.shader, "amplitude")
	fs.timeLoc = rl.GetShaderLocation(fs.shader, "time")
	fs.baseColorLoc = rl.GetShaderLocation(fs.shader, "baseColor")
	fs.lineThicknessLoc = rl.GetShaderLocation(fs.shader, "lineThickness")
	fs.vignetteInnerLoc = rl.GetShaderLocation(fs.shader, "vignetteInner")
	fs.vignetteOuterLoc = rl.GetShaderLocation(fs.shader, "vignetteOuter")
	fs.ambientWobbleLoc = rl.GetShaderLocation(fs.shader, "ambientWobble")

	fs.setResolution()
	rl.SetShaderValue(fs.shader, fs.lineThicknessLoc, []float32{float32(cfg.LineThickness)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.vignetteInnerLoc, []float32{float32(cfg.VignetteInner)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.vignetteOuterLoc, []float32{float32(cfg.VignetteOuter)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.ambientWobbleLoc, []float32{float32(cfg.AmbientWobble)}, rl.ShaderUniformFloat)

	return fs, nil
}

func (fs *fieldShader) setResolution() {
	rl.SetShaderValue(fs.shader, fs.resolutionLoc, []float32{fs.width, fs.height}, rl.ShaderUniformVec2)
}

// Resize updates the resolution uniform.
func (fs *fieldShader) Resize(width, height int) {
	fs.width = float32(width)
	fs.height = float32(height)
	fs.setResolution()
}

// Draw renders the field pass for the current frame parameters.
func (fs *fieldShader) Draw(mode pattern.ModeState, amplitude, time float64, col pattern.RGB) {
	rl.SetShaderValue(fs.shader, fs.modeNLoc, []float32{float32(mode.N)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.modeMLoc, []float32{float32(mode.M)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.amplitudeLoc, []float32{float32(amplitude)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.timeLoc, []float32{float32(time)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(fs.shader, fs.baseColorLoc, []float32{float32(col.R), float32(col.G), float32(col.B)}, rl.ShaderUniformVec3)

	rl.BeginShaderMode(fs.shader)
	rl.DrawRectangle(0, 0, int32(fs.width), int32(fs.height), rl.White)
	rl.EndShaderMode()
}

// Unload releases the shader. Idempotent.
func (fs *fieldShader) Unload() {
	if fs.loaded {
		rl.UnloadShader(fs.shader)
		fs.loaded = false
	}
}
