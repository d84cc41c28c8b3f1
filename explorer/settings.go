package explorer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"FractalExplorer/cache"
	"FractalExplorer/fractal"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
	"FractalExplorer/progressive"
	"FractalExplorer/render"
	"FractalExplorer/views"

	"github.com/BrugadaSyndrome/bslogger"
)

const DefaultZoomStep = 1.05

type Settings struct {
	logger bslogger.Logger

	CacheEntries        int
	CacheMaxAgeSeconds  int
	ExportFile          string
	Fractal             fractal.Kind
	HistorySize         int
	MinRenderIntervalMs int
	Palette             palette.Scheme
	Params              fractal.Params
	RenderSettings      render.Settings
	RunName             string
	SavedViewsFile      string
	SavePath            string
	TransitionSettings  []TransitionSettings
	ZoomStep            float64
}

func DefaultSettings() Settings {
	return Settings{
		logger:              bslogger.NewLogger("ExplorerSettings", bslogger.Normal, nil),
		CacheEntries:        cache.DefaultMaxEntries,
		CacheMaxAgeSeconds:  int(cache.DefaultMaxAge / time.Second),
		ExportFile:          "fractal.png",
		Fractal:             fractal.Mandelbrot,
		HistorySize:         views.DefaultHistorySize,
		MinRenderIntervalMs: int(progressive.DefaultMinRenderInterval / time.Millisecond),
		Palette:             palette.Classic,
		Params:              fractal.DefaultParams(),
		ZoomStep:            DefaultZoomStep,
	}
}

// NewSettings reads settingsFile on top of the defaults. An empty settingsFile yields the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := DefaultSettings()
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		err = json.Unmarshal(fileBytes, &s)
		if err != nil {
			return s, fmt.Errorf("unable to parse settings %s - %w", settingsFile, err)
		}
	}
	err := s.Verify()
	if err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nExplorer settings\n"
	output += fmt.Sprintf("Fractal: %s\n", s.Fractal)
	output += fmt.Sprintf("Palette: %s\n", s.Palette)
	output += fmt.Sprintf("Params: %s\n", s.Params)
	output += fmt.Sprintf("Cache: %d entries for %ds\n", s.CacheEntries, s.CacheMaxAgeSeconds)
	output += fmt.Sprintf("Min Render Interval: %dms\n", s.MinRenderIntervalMs)
	output += fmt.Sprintf("History Size: %d\n", s.HistorySize)
	output += fmt.Sprintf("Saved Views File: %s\n", s.SavedViewsFile)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Run Name: %s\n", s.RunName)
	output += fmt.Sprintf("Transitions: %d\n", len(s.TransitionSettings))
	output += s.RenderSettings.String()
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("ExplorerSettings", bslogger.Normal, nil)

	err := s.Params.Verify()
	if err != nil {
		return err
	}
	misc.CheckError(s.RenderSettings.Verify(), s.logger, misc.Warning)

	if s.CacheEntries <= 0 {
		s.CacheEntries = cache.DefaultMaxEntries
	}
	if s.CacheMaxAgeSeconds <= 0 {
		s.CacheMaxAgeSeconds = int(cache.DefaultMaxAge / time.Second)
	}
	if s.ExportFile == "" {
		s.ExportFile = "fractal.png"
	}
	if s.Fractal < fractal.Mandelbrot || s.Fractal > fractal.Newton {
		s.Fractal = fractal.Mandelbrot
	}
	if s.HistorySize <= 0 {
		s.HistorySize = views.DefaultHistorySize
	}
	if s.MinRenderIntervalMs <= 0 {
		s.MinRenderIntervalMs = int(progressive.DefaultMinRenderInterval / time.Millisecond)
	}
	if s.Palette < palette.Classic || s.Palette > palette.BlueRed {
		s.Palette = palette.Classic
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ZoomStep <= 1 {
		s.ZoomStep = DefaultZoomStep
	}
	if len(s.TransitionSettings) == 0 {
		s.TransitionSettings = []TransitionSettings{
			{
				StartX:    s.Params.CenterX,
				StartY:    s.Params.CenterY,
				EndX:      -0.743643887037151,
				EndY:      0.13182590420533,
				ZoomStart: s.Params.Zoom,
				ZoomEnd:   s.Params.Zoom * 1000,
				ZoomStep:  1.1,
			},
		}
	}

	// Verify each of the transition settings objects
	for i := 0; i < len(s.TransitionSettings); i++ {
		misc.CheckError(s.TransitionSettings[i].Verify(), s.logger, misc.Warning)
	}

	return nil
}

func (s *Settings) cacheMaxAge() time.Duration {
	return time.Duration(s.CacheMaxAgeSeconds) * time.Second
}

func (s *Settings) minRenderInterval() time.Duration {
	return time.Duration(s.MinRenderIntervalMs) * time.Millisecond
}
