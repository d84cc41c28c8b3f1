package explorer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"FractalExplorer/export"
	"FractalExplorer/fractal"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
)

// RenderTransitions renders every frame of the configured transitions at full resolution into
// SavePath/RunName/<frame>.png, next to a copy of the settings so the run can be repeated. It returns the paths
// written.
func (e *Explorer) RenderTransitions() ([]string, error) {
	runPath := filepath.Join(e.settings.SavePath, e.settings.RunName)
	err := misc.EnsureDir(runPath)
	if err != nil {
		return nil, err
	}

	settingsBytes, err := json.MarshalIndent(e.settings, "", "  ")
	if err == nil {
		_, err = misc.WriteFile(filepath.Join(runPath, "settings.json"), settingsBytes)
	}
	misc.CheckError(err, e.logger, misc.Warning)

	frameCount := 0
	for i := range e.settings.TransitionSettings {
		frameCount += e.settings.TransitionSettings[i].FrameCount()
	}
	e.logger.Infof("Rendering %d frames into %s", frameCount, runPath)

	var startTime = time.Now()
	var paths []string
	imageNumber := 1
	for i := range e.settings.TransitionSettings {
		transition := e.settings.TransitionSettings[i]
		for _, frame := range transition.Frames(e.params) {
			img, err := e.render(frame, 1)
			if err != nil {
				return paths, fmt.Errorf("unable to render frame %d: %w", imageNumber, err)
			}
			path := filepath.Join(runPath, fmt.Sprintf("%d.png", imageNumber))
			err = export.Save(img, path)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
			e.logger.Infof("Frames [Completed: %d] [Todo: %d]", imageNumber, frameCount-imageNumber)
			imageNumber++
		}
	}

	e.logger.Debugf("Done rendering %d frames in %s", len(paths), time.Since(startTime))
	return paths, nil
}

// ShowcaseImage is one of the reference renders produced by RenderShowcase.
type ShowcaseImage struct {
	FileName string
	Kind     fractal.Kind
	Params   fractal.Params
	Scheme   palette.Scheme
}

// Showcase lists a reference render for each family of fractal at width x height.
func Showcase(width int, height int) []ShowcaseImage {
	base := fractal.Params{Width: width, Height: height, Zoom: 1, CenterX: -0.7, MaxIterations: 200, JuliaReal: -0.7, JuliaImag: 0.27015}

	julia := base
	julia.Zoom = 1.2
	julia.CenterX = 0

	ship := base
	ship.Zoom = 1.8
	ship.CenterX, ship.CenterY = -1.75, -0.04
	ship.MaxIterations = 300

	tricorn := base
	tricorn.Zoom = 0.3
	tricorn.CenterX = -0.3

	newton := base
	newton.CenterX = 0
	newton.MaxIterations = 50

	return []ShowcaseImage{
		{FileName: "mandelbrot_fire.png", Kind: fractal.Mandelbrot, Params: base, Scheme: palette.Fire},
		{FileName: "julia_ocean.png", Kind: fractal.Julia, Params: julia, Scheme: palette.Ocean},
		{FileName: "burning_ship_rainbow.png", Kind: fractal.BurningShip, Params: ship, Scheme: palette.Rainbow},
		{FileName: "tricorn_grayscale.png", Kind: fractal.Tricorn, Params: tricorn, Scheme: palette.Grayscale},
		{FileName: "newton_classic.png", Kind: fractal.Newton, Params: newton, Scheme: palette.Classic},
	}
}

// RenderShowcase renders the showcase images into dir at the size of the current view.
func (e *Explorer) RenderShowcase(dir string) ([]string, error) {
	err := misc.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, item := range Showcase(e.params.Width, e.params.Height) {
		e.logger.Infof("Generating %s (%s)", item.Kind, item.Scheme)
		img, err := e.engine.Generate(item.Params, item.Kind, item.Scheme, 1)
		if err != nil {
			return paths, fmt.Errorf("unable to render %s: %w", item.FileName, err)
		}
		path := filepath.Join(dir, item.FileName)
		err = export.Save(img, path)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
