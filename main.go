package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/app"
	"github.com/pthm-cable/resonant/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics or a sound device")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	freq := flag.Float64("freq", 0, "Starting frequency in Hz (0 = use config)")
	mute := flag.Bool("mute", false, "Disable sound output, keep the synthesis engine")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *freq > 0 {
		cfg.Audio.DefaultFrequency = *freq
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := app.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Mute:           *mute,
	}

	if *headless {
		host, err := app.NewHost(cfg, opts)
		if err != nil {
			slog.Error("failed to start instrument", "error", err)
			os.Exit(1)
		}
		defer host.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"stats_window", statsWindowSec,
			"max_frames", *maxFrames,
		)

		for {
			host.UpdateHeadless()

			if *maxFrames > 0 && host.Frames() >= *maxFrames {
				slog.Info("max frames reached", "frames", host.Frames())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Resonant")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	host, err := app.NewHost(cfg, opts)
	if err != nil {
		slog.Error("failed to start instrument", "error", err)
		os.Exit(1)
	}
	defer host.Unload()

	for !rl.WindowShouldClose() {
		host.Update()
		host.Draw()

		if *maxFrames > 0 && host.Frames() >= *maxFrames {
			break
		}
	}
}
