package render

import (
	"fmt"
	"image"
	"time"

	"FractalExplorer/fractal"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
	"FractalExplorer/task"
	"FractalExplorer/worker"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/image/draw"
)

// Engine turns fractal parameters into colour rasters, spreading the work over a worker pool.
type Engine struct {
	logger   bslogger.Logger
	pool     *worker.Pool
	settings Settings
}

func NewEngine(settings Settings) *Engine {
	engine := &Engine{
		logger: bslogger.NewLogger("Engine", bslogger.Normal, nil),
	}
	misc.CheckError(settings.Verify(), engine.logger, misc.Warning)
	engine.settings = settings
	engine.pool = worker.NewPool(settings.WorkerSettings)
	engine.logger.Debug(settings.String())
	return engine
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// QualityScale converts a quality level into the edge length of the pixel block each sample covers.
func QualityScale(quality int) int {
	return max(1, quality)
}

// Generate renders params at the given quality. Quality q samples every q-th pixel on both axes and fills the q x q
// block under each sample with its colour, so the returned image always has the full requested size.
func (e *Engine) Generate(params fractal.Params, kind fractal.Kind, scheme palette.Scheme, quality int) (*Image, error) {
	err := params.CheckDimensions()
	if err != nil {
		return nil, err
	}

	var startTime = time.Now()
	scale := QualityScale(quality)
	gridWidth := (params.Width + scale - 1) / scale
	gridHeight := (params.Height + scale - 1) / scale
	img := NewImage(params.Width, params.Height)

	tasks := task.Split(e.settings.TaskGeneration, gridWidth, gridHeight)
	e.pool.Process(tasks, func(t task.Task) {
		fillTask(img, t.Bounds, scale, params, kind, scheme)
	})

	e.logger.Debugf("Rendered %s %s with %s at quality %d in %s", kind, params, scheme, scale, time.Since(startTime))
	return img, nil
}

// GenerateSupersampled renders at factor times the requested size and scales the result back down, smoothing the
// edges of the set.
func (e *Engine) GenerateSupersampled(params fractal.Params, kind fractal.Kind, scheme palette.Scheme, factor int) (*Image, error) {
	err := params.CheckDimensions()
	if err != nil {
		return nil, err
	}
	factor = SuperSamplingFactor(params, factor)
	if factor == 1 {
		return e.Generate(params, kind, scheme, 1)
	}

	large := params
	large.Width *= factor
	large.Height *= factor
	// the mapping is relative to the image size, so the larger render covers the same region
	src, err := e.Generate(large, kind, scheme, 1)
	if err != nil {
		return nil, fmt.Errorf("unable to render supersampled image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src.RGBA(), src.RGBA().Bounds(), draw.Src, nil)
	return &Image{Width: params.Width, Height: params.Height, Pix: dst.Pix}, nil
}

// SuperSamplingFactor limits factor to 1..MaxSuperSampling and to what keeps the enlarged render within
// fractal.MaxDimension on both axes.
func SuperSamplingFactor(params fractal.Params, factor int) int {
	factor = min(max(1, factor), MaxSuperSampling)
	if params.Width > 0 && params.Height > 0 {
		factor = min(factor, fractal.MaxDimension/params.Width, fractal.MaxDimension/params.Height)
	}
	return max(1, factor)
}

// fillTask evaluates every sample of bounds and paints its block. Blocks of different samples never overlap, so
// concurrent calls on disjoint bounds write disjoint bytes.
func fillTask(img *Image, bounds image.Rectangle, scale int, params fractal.Params, kind fractal.Kind, scheme palette.Scheme) {
	for gy := bounds.Min.Y; gy < bounds.Max.Y; gy++ {
		py := gy * scale
		blockHeight := min(scale, img.Height-py)
		for gx := bounds.Min.X; gx < bounds.Max.X; gx++ {
			px := gx * scale
			blockWidth := min(scale, img.Width-px)

			iterations, z := fractal.Evaluate(kind, params, params.Map(px, py))
			c := palette.SmoothColor(scheme, iterations, params.MaxIterations, fractal.NormSqr(z))

			for y := py; y < py+blockHeight; y++ {
				offset := (y*img.Width + px) * 4
				for x := 0; x < blockWidth; x++ {
					img.Pix[offset] = c.R
					img.Pix[offset+1] = c.G
					img.Pix[offset+2] = c.B
					img.Pix[offset+3] = c.A
					offset += 4
				}
			}
		}
	}
}
