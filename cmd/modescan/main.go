// Package main scans a frequency range and reports the mode numbers and
// archetype state each frequency maps to. Useful for tuning the mapping
// constants without launching the instrument.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// scanRow is one frequency sample of the mapping tables.
type scanRow struct {
	Frequency  float64 `csv:"frequency"`
	ModeN      float64 `csv:"mode_n"`
	ModeM      float64 `csv:"mode_m"`
	Wavelength float64 `csv:"wavelength_px"`
	FormStage  float64 `csv:"form_stage"`
	Archetype  string  `csv:"archetype"`
	PetalCount float64 `csv:"petal_count"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	from := flag.Float64("from", 100, "Scan start frequency in Hz")
	to := flag.Float64("to", 1200, "Scan end frequency in Hz")
	steps := flag.Int("steps", 48, "Number of samples across the range")
	output := flag.String("output", "", "CSV output path (empty = print a table)")
	flag.Parse()

	if *from <= 0 || *to <= *from {
		log.Fatal("need 0 < -from < -to")
	}
	if *steps < 2 {
		log.Fatal("-steps must be at least 2")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	mapper := pattern.ModeMapper{
		ReferenceHz:   cfg.Chladni.ReferenceFrequency,
		BaseN:         cfg.Chladni.BaseN,
		BaseM:         cfg.Chladni.BaseM,
		Asymmetry:     cfg.Chladni.Asymmetry,
		ModeMin:       cfg.Chladni.ModeMin,
		ModeMax:       cfg.Chladni.ModeMax,
		SnapThreshold: cfg.Chladni.SnapThreshold,
		SnapStrength:  cfg.Chladni.SnapStrength,
	}
	anchors := pattern.Anchors()

	// Sample in log space so every octave gets equal coverage.
	logFrom := math.Log(*from)
	logTo := math.Log(*to)

	rows := make([]scanRow, *steps)
	for i := range rows {
		p := float64(i) / float64(*steps-1)
		hz := math.Exp(logFrom + (logTo-logFrom)*p)

		mode := mapper.Map(hz)
		state := pattern.StateAt(anchors, hz)

		rows[i] = scanRow{
			Frequency:  hz,
			ModeN:      mode.N,
			ModeM:      mode.M,
			Wavelength: pattern.WavelengthFor(hz, cfg.Interference.MinWavelength),
			FormStage:  state.FormStage,
			Archetype:  pattern.BracketName(anchors, hz),
			PetalCount: state.PetalCount,
		}
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()

		if err := gocsv.Marshal(rows, f); err != nil {
			log.Fatalf("failed to write csv: %v", err)
		}
		fmt.Printf("wrote %d rows to %s\n", len(rows), *output)
		return
	}

	fmt.Printf("%10s %7s %7s %9s %7s %10s %7s\n",
		"freq", "n", "m", "lambda", "stage", "archetype", "petals")
	for _, r := range rows {
		fmt.Printf("%10.1f %7.3f %7.3f %9.1f %7.3f %10s %7.2f\n",
			r.Frequency, r.ModeN, r.ModeM, r.Wavelength, r.FormStage, r.Archetype, r.PetalCount)
	}
}
