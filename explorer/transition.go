package explorer

import (
	"fmt"
	"math"

	"FractalExplorer/fractal"
	"FractalExplorer/misc"
)

// TransitionSettings describes a zoom from one view to another, rendered frame by frame.
type TransitionSettings struct {
	EndX      float64
	EndY      float64
	StartX    float64
	StartY    float64
	ZoomEnd   float64
	ZoomStart float64
	ZoomStep  float64
}

func (ts *TransitionSettings) Verify() error {
	if ts.StartX < -4 || ts.StartX > 4 {
		ts.StartX = 0
	}
	if ts.StartY < -4 || ts.StartY > 4 {
		ts.StartY = 0
	}
	if ts.EndX < -4 || ts.EndX > 4 {
		ts.EndX = 0
	}
	if ts.EndY < -4 || ts.EndY > 4 {
		ts.EndY = 0
	}
	if !(ts.ZoomEnd > 0) {
		ts.ZoomEnd = 1.5
	}
	if !(ts.ZoomStart > 0) {
		ts.ZoomStart = 0.5
	}
	if ts.ZoomStep == 0 {
		ts.ZoomStep = 1.1
	}
	if !(ts.ZoomStep > 1) {
		step := ts.ZoomStep
		ts.ZoomStep = 1.1
		return fmt.Errorf("transition zoom step %g must be greater than 1, using 1.1", step)
	}
	return nil
}

// FrameCount is the number of frames needed to go from ZoomStart to ZoomEnd multiplying or dividing by ZoomStep each
// frame, i.e. the smallest n with ZoomStart * ZoomStep^n >= ZoomEnd when zooming in.
func (ts *TransitionSettings) FrameCount() int {
	step := ts.ZoomStep
	if !(step > 1) {
		step = 1.1
	}
	ratio := math.Abs(math.Log(ts.ZoomEnd / ts.ZoomStart))
	if ratio == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return max(1, int(math.Ceil(ratio/math.Log(step)-1e-9)))
}

// Frames returns the view of every frame of the transition, keeping the rest of base. The center eases out when
// zooming in and eases in when zooming out so it moves while the view is still wide.
func (ts *TransitionSettings) Frames(base fractal.Params) []fractal.Params {
	frameCount := ts.FrameCount()
	zoomingIn := ts.ZoomStart < ts.ZoomEnd
	frames := make([]fractal.Params, 0, frameCount)

	for currentFrame := 1; currentFrame <= frameCount; currentFrame++ {
		t := float64(currentFrame) / float64(frameCount)
		eased := misc.EaseInExpo(t)
		if zoomingIn {
			eased = misc.EaseOutExpo(t)
		}

		frame := base
		frame.CenterX = misc.LerpFloat64(ts.StartX, ts.EndX, eased)
		frame.CenterY = misc.LerpFloat64(ts.StartY, ts.EndY, eased)
		// interpolate the zoom geometrically so every frame zooms by the same factor
		frame.Zoom = ts.ZoomStart * math.Pow(ts.ZoomEnd/ts.ZoomStart, t)
		frames = append(frames, frame)
	}
	return frames
}
