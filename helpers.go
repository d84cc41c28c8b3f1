package main

import (
	"flag"
	"fmt"
	"os"

	"FractalExplorer/explorer"
	"FractalExplorer/fractal"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
)

const (
	modeAnimate = "animate"
	modeAssets  = "assets"
	modeRender  = "render"
	modeView    = "view"
)

func parseArguments() {
	flag.StringVar(&settingsFile, "settings", "", "Json file with explorer settings")
	flag.StringVar(&mode, "mode", modeView, "One of view, render, animate or assets")
	flag.StringVar(&outPath, "out", "", "Image file for render mode or directory for assets mode")
	flag.StringVar(&fractalName, "fractal", "", "Fractal to start with (mandelbrot, julia, burning_ship, tricorn, newton)")
	flag.StringVar(&paletteName, "palette", "", "Palette to start with (classic, fire, ocean, rainbow, grayscale, blue_red)")
	flag.StringVar(&logFile, "log", "fractal-explorer.log", "Log file used while the terminal viewer is open")

	flag.Parse()

	switch mode {
	case modeAnimate, modeAssets, modeRender, modeView:
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q\n", mode)
		flag.Usage()
		os.Exit(2)
	}
}

// applyOverrides puts the command line choices on top of the settings file.
func applyOverrides(settings *explorer.Settings) error {
	if fractalName != "" {
		kind, err := fractal.ParseKind(fractalName)
		if err != nil {
			return err
		}
		settings.Fractal = kind
	}
	if paletteName != "" {
		scheme, err := palette.ParseScheme(paletteName)
		if err != nil {
			return err
		}
		settings.Palette = scheme
	}
	return nil
}

// redirectOutput sends everything written to stdout and stderr into fileName so log lines do not tear the
// terminal viewer. The returned function restores the original streams.
func redirectOutput(fileName string) (func(), error) {
	if fileName == "" {
		return nil, misc.ErrNoFileName
	}
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", fileName, err)
	}
	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = f, f
	return func() {
		os.Stdout, os.Stderr = stdout, stderr
		f.Close()
	}, nil
}
