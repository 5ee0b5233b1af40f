package telemetry

import "log/slog"

// Capture is a user-marked moment of the instrument: the full tuning
// needed to reproduce what was on screen when the key was pressed.
type Capture struct {
	Time      float64 `csv:"time"`
	Renderer  string  `csv:"renderer"`
	Frequency float64 `csv:"frequency"`
	Beat      float64 `csv:"beat"`
	Mode      string  `csv:"mode"`
	Volume    float64 `csv:"volume"`
	ModeN     float64 `csv:"mode_n"`
	ModeM     float64 `csv:"mode_m"`
	FormStage float64 `csv:"form_stage"`
	Amplitude float64 `csv:"amplitude"`
}

// LogCapture logs the capture using slog.
func (c Capture) LogCapture() {
	slog.Info("capture",
		"time", c.Time,
		"renderer", c.Renderer,
		"frequency", c.Frequency,
		"beat", c.Beat,
		"mode", c.Mode,
		"volume", c.Volume,
		"mode_n", c.ModeN,
		"mode_m", c.ModeM,
		"form_stage", c.FormStage,
		"amplitude", c.Amplitude,
	)
}
