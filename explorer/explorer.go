package explorer

import (
	"errors"
	"fmt"
	"time"

	"FractalExplorer/cache"
	"FractalExplorer/export"
	"FractalExplorer/fractal"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
	"FractalExplorer/progressive"
	"FractalExplorer/render"
	"FractalExplorer/views"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	ErrNothingRendered = errors.New("nothing has been rendered yet")
	ErrUnviewable      = errors.New("position cannot be shown")
)

// Explorer owns an interactive session: the current view, the progressive controller, the region cache and the
// last accepted image. It is driven from a single goroutine, usually once per display frame through Tick.
type Explorer struct {
	book        *views.Book
	cache       *cache.Cache
	controller  *progressive.Controller
	current     *render.Image
	dirty       bool
	engine      *render.Engine
	history     *views.History
	kind        fractal.Kind
	logger      bslogger.Logger
	params      fractal.Params
	renderCount uint
	scheme      palette.Scheme
	settings    Settings
}

func NewExplorer(settings Settings) (*Explorer, error) {
	err := settings.Verify()
	if err != nil {
		return nil, err
	}

	e := &Explorer{
		book:       views.NewBook(settings.SavedViewsFile),
		dirty:      true,
		cache:      cache.New(settings.CacheEntries, settings.cacheMaxAge()),
		controller: progressive.NewController(1, settings.minRenderInterval()),
		engine:     render.NewEngine(settings.RenderSettings),
		history:    views.NewHistory(settings.HistorySize),
		kind:       settings.Fractal,
		logger:     bslogger.NewLogger("Explorer", bslogger.Normal, nil),
		params:     settings.Params,
		scheme:     settings.Palette,
		settings:   settings,
	}
	misc.CheckError(e.book.Load(), e.logger, misc.Warning)
	e.logger.Infof("Exploring %s with %s at %s", e.kind, e.scheme, e.params)
	return e, nil
}

func (e *Explorer) Params() fractal.Params {
	return e.params
}

func (e *Explorer) Kind() fractal.Kind {
	return e.kind
}

func (e *Explorer) Scheme() palette.Scheme {
	return e.scheme
}

func (e *Explorer) Settings() Settings {
	return e.settings
}

// Current is the last accepted image, or nil before the first render.
func (e *Explorer) Current() *render.Image {
	return e.current
}

// Resolution is the block size the next render will use.
func (e *Explorer) Resolution() int {
	return e.controller.Resolution()
}

// Settled reports whether the current image is the full resolution render of the current view.
func (e *Explorer) Settled() bool {
	return !e.dirty
}

func (e *Explorer) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// SetClock replaces the time source of the progressive controller and the cache.
func (e *Explorer) SetClock(now func() time.Time) {
	e.controller.SetClock(now)
	e.cache.SetClock(now)
}

// Tick renders the next refinement step if the controller asks for one. It returns the current image and whether it
// changed during this call.
func (e *Explorer) Tick() (*render.Image, bool, error) {
	if !e.dirty || !e.controller.ShouldRender() {
		return e.current, false, nil
	}

	level := e.controller.NextResolution()
	region := cache.RegionFor(e.params, level)
	img, ok := e.cache.Get(region)
	if ok && !img.Matches(e.params.Width, e.params.Height) {
		// a region can be shared by views of different sizes
		ok = false
	}
	if !ok {
		var err error
		var startTime = time.Now()
		img, err = e.render(e.params, level)
		if err != nil {
			return e.current, false, err
		}
		e.cache.Insert(region, img)
		e.renderCount++
		e.logger.Debugf("Rendered level %d in %s [Renders: %d] [Cached: %d]", level, time.Since(startTime), e.renderCount, e.cache.Len())
	}

	if !e.Accept(img) {
		return e.current, false, nil
	}
	if level <= e.controller.Target() {
		e.dirty = false
	}
	return img, true, nil
}

// Accept makes img the current image if it matches the current view size. Stale images from before a resize are
// discarded and the previous image is kept.
func (e *Explorer) Accept(img *render.Image) bool {
	if !img.Matches(e.params.Width, e.params.Height) {
		if img != nil {
			e.logger.Warningf("Discarding a %dx%d image for a %dx%d view", img.Width, img.Height, e.params.Width, e.params.Height)
		}
		return false
	}
	e.current = img
	return true
}

func (e *Explorer) render(params fractal.Params, level int) (*render.Image, error) {
	if level <= 1 && e.settings.RenderSettings.SuperSampling > 1 {
		return e.engine.GenerateSupersampled(params, e.kind, e.scheme, e.settings.RenderSettings.SuperSampling)
	}
	return e.engine.Generate(params, e.kind, e.scheme, level)
}

// RenderFull renders the current view at full resolution, bypassing the progressive steps.
func (e *Explorer) RenderFull() (*render.Image, error) {
	img, err := e.render(e.params, 1)
	if err != nil {
		return nil, err
	}
	e.cache.Insert(cache.RegionFor(e.params, 1), img)
	if e.Accept(img) {
		e.dirty = false
	}
	return img, nil
}

// Export saves the full resolution image of the current view to path.
func (e *Explorer) Export(path string) error {
	img := e.current
	if img == nil || !e.Settled() {
		var err error
		img, err = e.RenderFull()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNothingRendered, err)
		}
	}
	err := export.Save(img, path)
	if err != nil {
		return err
	}
	e.logger.Infof("Saved image to %s", path)
	return nil
}

// changed restarts refinement after the view moved. Cached regions stay valid.
func (e *Explorer) changed() {
	e.dirty = true
	e.controller.Reset()
}

// invalidated restarts refinement after something outside the region key changed, so every cached image is stale.
func (e *Explorer) invalidated() {
	e.cache.Clear()
	e.changed()
}

func (e *Explorer) remember() {
	e.history.Push(views.NewPosition(e.params, e.kind, e.scheme))
}

// SetZoom changes the zoom around the current center. Zooms below fractal.MinZoom are raised to it.
func (e *Explorer) SetZoom(zoom float64) {
	if !(zoom > 0) {
		return
	}
	moved := e.params
	moved.Zoom = max(zoom, fractal.MinZoom)
	e.move(moved, true)
}

// ZoomAt multiplies the zoom by factor keeping the point under pixel (x, y) in place.
func (e *Explorer) ZoomAt(x int, y int, factor float64) {
	if !(factor > 0) || factor == 1 {
		return
	}
	e.move(e.zoomedAt(x, y, factor), true)
}

func (e *Explorer) zoomedAt(x int, y int, factor float64) fractal.Params {
	moved := e.params
	anchor := moved.Map(x, y)
	moved.Zoom = max(moved.Zoom*factor, fractal.MinZoom)
	if moved.Zoom == e.params.Zoom {
		return e.params
	}
	offsetX := (float64(x)/float64(moved.Width) - 0.5) / moved.Zoom
	offsetY := (float64(y)/float64(moved.Height) - 0.5) / moved.Zoom
	moved.CenterX = real(anchor) - offsetX
	moved.CenterY = imag(anchor) - offsetY
	return moved
}

// AnimateStep zooms into the center by the configured zoom step without recording history.
func (e *Explorer) AnimateStep() {
	e.move(e.zoomedAt(e.params.Width/2, e.params.Height/2, e.settings.ZoomStep), false)
}

// Pan moves the view by fractions of its width and height.
func (e *Explorer) Pan(dx float64, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	moved := e.params
	moved.CenterX += dx / moved.Zoom
	moved.CenterY += dy / moved.Zoom
	e.move(moved, true)
}

func (e *Explorer) SetCenter(x float64, y float64) {
	moved := e.params
	moved.CenterX = x
	moved.CenterY = y
	e.move(moved, true)
}

// move switches to a new center and zoom. Views that are not viewable are ignored, as are moves that change nothing.
func (e *Explorer) move(moved fractal.Params, record bool) bool {
	if moved.CenterX == e.params.CenterX && moved.CenterY == e.params.CenterY && moved.Zoom == e.params.Zoom {
		return false
	}
	if !moved.Viewable() {
		e.logger.Warningf("Ignoring a move to (%g, %g) x%g", moved.CenterX, moved.CenterY, moved.Zoom)
		return false
	}
	if record {
		e.remember()
	}
	e.params = moved
	e.changed()
	return true
}

func (e *Explorer) SetMaxIterations(maxIterations int) {
	if maxIterations <= 0 || maxIterations == e.params.MaxIterations {
		return
	}
	e.params.MaxIterations = maxIterations
	e.invalidated()
}

// Resize changes the image size. Images already rendered for the old size are dropped.
func (e *Explorer) Resize(width int, height int) error {
	if width == e.params.Width && height == e.params.Height {
		return nil
	}
	resized := e.params
	resized.Width = width
	resized.Height = height
	err := resized.CheckDimensions()
	if err != nil {
		return err
	}
	e.params = resized
	e.invalidated()
	return nil
}

func (e *Explorer) SetJuliaConstant(re float64, im float64) {
	if re == e.params.JuliaReal && im == e.params.JuliaImag {
		return
	}
	e.params.JuliaReal = re
	e.params.JuliaImag = im
	if e.kind == fractal.Julia {
		e.invalidated()
	}
}

func (e *Explorer) SetKind(kind fractal.Kind) {
	if kind == e.kind {
		return
	}
	e.kind = kind
	e.invalidated()
}

func (e *Explorer) SetScheme(scheme palette.Scheme) {
	if scheme == e.scheme {
		return
	}
	e.scheme = scheme
	e.invalidated()
}

// Back returns to the previous position in the history.
func (e *Explorer) Back() bool {
	position, ok := e.history.Pop()
	if !ok {
		return false
	}
	return !misc.CheckError(e.apply(position), e.logger, misc.Warning)
}

func (e *Explorer) apply(position views.Position) error {
	restored := position.Apply(e.params)
	if !restored.Viewable() {
		return fmt.Errorf("%w: %s", ErrUnviewable, position)
	}
	stale := restored.MaxIterations != e.params.MaxIterations ||
		restored.JuliaReal != e.params.JuliaReal || restored.JuliaImag != e.params.JuliaImag ||
		position.Fractal != e.kind || position.Palette != e.scheme

	e.params = restored
	e.kind = position.Fractal
	e.scheme = position.Palette
	if stale {
		e.invalidated()
		return nil
	}
	e.changed()
	return nil
}

func (e *Explorer) History() []views.Position {
	return e.history.Positions()
}

// SaveView stores the current position under name.
func (e *Explorer) SaveView(name string) (views.SavedView, error) {
	view, err := e.book.Add(name, views.NewPosition(e.params, e.kind, e.scheme))
	if err != nil {
		return view, err
	}
	e.logger.Infof("Saved view %s as %s", view.Name, view.ID)
	return view, nil
}

// RestoreView moves to a saved view, found by id or name.
func (e *Explorer) RestoreView(nameOrID string) error {
	view, err := e.book.Find(nameOrID)
	if err != nil {
		return err
	}
	if !view.Position.Apply(e.params).Viewable() {
		return fmt.Errorf("%w: %s", ErrUnviewable, view.Position)
	}
	e.remember()
	return e.apply(view.Position)
}

func (e *Explorer) RemoveView(id string) error {
	return e.book.Remove(id)
}

func (e *Explorer) SavedViews() []views.SavedView {
	return e.book.Views()
}

// Status is a one line summary of the session.
func (e *Explorer) Status() string {
	stats := e.cache.Stats()
	return fmt.Sprintf("%s | %s | (%.6g, %.6g) x%.3g | %d iter | res %d | cache %d/%d hits",
		e.kind, e.scheme, e.params.CenterX, e.params.CenterY, e.params.Zoom, e.params.MaxIterations,
		e.controller.Resolution(), stats.Hits, stats.Hits+stats.Misses)
}
