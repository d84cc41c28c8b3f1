package main

import (
	"path/filepath"

	"FractalExplorer/audio"
	"FractalExplorer/explorer"
	"FractalExplorer/misc"
	"FractalExplorer/viewer"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	fractalName, logFile, mode, outPath, paletteName, settingsFile string
)

func main() {
	parseArguments()
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	settings, err := explorer.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	misc.CheckError(applyOverrides(&settings), logger, misc.Fatal)

	switch mode {
	case modeView:
		startViewer(settings, logger)

	case modeRender:
		e := newExplorer(settings, logger)
		path := outPath
		if path == "" {
			path = settings.ExportFile
		}
		misc.CheckError(e.Export(path), logger, misc.Fatal)
		logger.Infof("Saved %s", path)

	case modeAnimate:
		e := newExplorer(settings, logger)
		paths, err := e.RenderTransitions()
		misc.CheckError(err, logger, misc.Fatal)
		logger.Infof("Rendered %d frames", len(paths))

	case modeAssets:
		e := newExplorer(settings, logger)
		dir := outPath
		if dir == "" {
			dir = filepath.Join(settings.SavePath, "assets")
		}
		paths, err := e.RenderShowcase(dir)
		misc.CheckError(err, logger, misc.Fatal)
		logger.Infof("Rendered %d showcase images into %s", len(paths), dir)
	}
}

func newExplorer(settings explorer.Settings, logger bslogger.Logger) *explorer.Explorer {
	e, err := explorer.NewExplorer(settings)
	misc.CheckError(err, logger, misc.Fatal)
	return e
}

func startViewer(settings explorer.Settings, logger bslogger.Logger) {
	restore, err := redirectOutput(logFile)
	misc.CheckError(err, logger, misc.Fatal)
	defer restore()

	e := newExplorer(settings, logger)
	screen, err := viewer.NewScreen()
	misc.CheckError(err, logger, misc.Fatal)

	sound := audio.NewPlayer()
	defer sound.Close()

	logger.Info("Starting viewer")
	misc.CheckError(viewer.New(screen, e, sound).Run(), logger, misc.Error)
	logger.Info("Viewer closed")
}
