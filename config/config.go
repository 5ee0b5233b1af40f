// Package config provides configuration loading and access for the instrument.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all instrument configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Audio        AudioConfig        `yaml:"audio"`
	Chladni      ChladniConfig      `yaml:"chladni"`
	Particles    ParticlesConfig    `yaml:"particles"`
	Interference InterferenceConfig `yaml:"interference"`
	Geometry     GeometryConfig     `yaml:"geometry"`
	GPU          GPUConfig          `yaml:"gpu"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// AudioConfig holds synthesis engine settings.
type AudioConfig struct {
	SampleRate             int     `yaml:"sample_rate"`
	BufferMs               int     `yaml:"buffer_ms"`
	DefaultFrequency       float64 `yaml:"default_frequency"`
	DefaultBeat            float64 `yaml:"default_beat"` // binaural beat offset in Hz
	DefaultMode            string  `yaml:"default_mode"` // pure, binaural, harmonic, noise
	Volume                 float64 `yaml:"volume"`       // master gain [0,1]
	AmplitudeWindowMs      int     `yaml:"amplitude_window_ms"`
	AmplitudeSpringFreq    float64 `yaml:"amplitude_spring_freq"`
	AmplitudeSpringDamping float64 `yaml:"amplitude_spring_damping"`
}

// ChladniConfig holds the standing-wave renderer parameters.
type ChladniConfig struct {
	ReferenceFrequency float64 `yaml:"reference_frequency"` // Hz at which mode numbers equal the base values
	BaseN              float64 `yaml:"base_n"`
	BaseM              float64 `yaml:"base_m"`
	Asymmetry          float64 `yaml:"asymmetry"` // m advances slower than n per octave
	ModeMin            float64 `yaml:"mode_min"`
	ModeMax            float64 `yaml:"mode_max"`
	SnapThreshold      float64 `yaml:"snap_threshold"` // fractional octave above which targets nudge to the next step
	SnapStrength       float64 `yaml:"snap_strength"`
	ApproachRate       float64 `yaml:"approach_rate"`  // per-second rate of current -> target damping
	RetargetDelta      float64 `yaml:"retarget_delta"` // accumulated mode change that triggers particle retargeting
	LineThickness      float64 `yaml:"line_thickness"`
	VignetteInner      float64 `yaml:"vignette_inner"`
	VignetteOuter      float64 `yaml:"vignette_outer"`
	AmbientWobble      float64 `yaml:"ambient_wobble"`
	RasterStride       int     `yaml:"raster_stride"`
}

// ParticlesConfig holds particle field parameters.
type ParticlesConfig struct {
	Count              int     `yaml:"count"`
	SamplesPerRetarget int     `yaml:"samples_per_retarget"`
	TargetTolerance    float64 `yaml:"target_tolerance"`
	SteerForce         float64 `yaml:"steer_force"`
	MaxSpeed           float64 `yaml:"max_speed"`
	Damping            float64 `yaml:"damping"` // per 60Hz-normalized step
	Jitter             float64 `yaml:"jitter"`
	WrapMargin         float64 `yaml:"wrap_margin"`
}

// InterferenceConfig holds the wave interference renderer parameters.
type InterferenceConfig struct {
	SourceCount      int     `yaml:"source_count"`
	RasterStride     int     `yaml:"raster_stride"`
	ContrastExponent float64 `yaml:"contrast_exponent"`
	MinWavelength    float64 `yaml:"min_wavelength"` // pixels; guards the frequency -> wavelength division
	WanderScale      float64 `yaml:"wander_scale"`
	WanderSpeed      float64 `yaml:"wander_speed"`
}

// GeometryConfig holds the sacred geometry renderer parameters.
type GeometryConfig struct {
	BreathingHz float64 `yaml:"breathing_hz"`
	AlphaFloor  float64 `yaml:"alpha_floor"` // composition alpha at zero amplitude
	AlphaGain   float64 `yaml:"alpha_gain"`
	BirthWindow float64 `yaml:"birth_window"` // form-stage span over which an element eases in
}

// GPUConfig holds GPU rendering parameters.
type GPUConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
