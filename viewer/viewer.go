package viewer

import (
	"fmt"
	"image/color"
	"time"

	"FractalExplorer/audio"
	"FractalExplorer/explorer"
	"FractalExplorer/misc"
	"FractalExplorer/palette"
	"FractalExplorer/render"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval  = 16 * time.Millisecond
	panFraction    = 0.1
	zoomFactor     = 1.5
	wheelFactor    = 1.25
	iterationScale = 1.25
	minIterations  = 10
	legendWidth    = 16
	halfBlock      = '▀'
)

// Viewer shows an explorer session in a terminal. Every cell draws two pixels stacked vertically with the upper half
// block glyph, and the last row holds a status line.
type Viewer struct {
	animating bool
	explorer  *explorer.Explorer
	logger    bslogger.Logger
	message   string
	savedView int
	screen    tcell.Screen
	sound     *audio.Player
}

// NewScreen opens the terminal with mouse support.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// New creates a viewer on an initialized screen. sound may be nil to stay silent.
func New(screen tcell.Screen, e *explorer.Explorer, sound *audio.Player) *Viewer {
	v := &Viewer{
		explorer: e,
		logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		screen:   screen,
		sound:    sound,
	}
	v.fitToScreen()
	return v
}

// ImageSize is the pixel size shown by a terminal of cols x rows cells.
func ImageSize(cols int, rows int) (int, int) {
	return max(1, cols), max(1, rows-1) * 2
}

// Run draws frames until the user quits.
func (v *Viewer) Run() error {
	defer v.screen.Fini()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.drawStatus()
			v.screen.Show()

		case <-ticker.C:
			err := v.Frame()
			if misc.CheckError(err, v.logger, misc.Error) {
				v.message = err.Error()
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Frame advances the animation, renders the next refinement step and draws it if anything changed.
func (v *Viewer) Frame() error {
	if v.animating {
		v.explorer.AnimateStep()
	}
	img, changed, err := v.explorer.Tick()
	if err != nil {
		return err
	}
	if changed {
		v.Draw(img)
		v.drawStatus()
		v.screen.Show()
	}
	return nil
}

// HandleEvent applies one terminal event to the session and returns false when the user asked to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventMouse:
		x, y := ev.Position()
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			v.explorer.ZoomAt(x, y*2, wheelFactor)
		case ev.Buttons()&tcell.WheelDown != 0:
			v.explorer.ZoomAt(x, y*2, 1/wheelFactor)
		case ev.Buttons()&tcell.Button1 != 0:
			point := v.explorer.Params().Map(x, y*2)
			v.explorer.SetCenter(real(point), imag(point))
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.fitToScreen()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.explorer.Pan(-panFraction, 0)
	case tcell.KeyRight:
		v.explorer.Pan(panFraction, 0)
	case tcell.KeyUp:
		v.explorer.Pan(0, -panFraction)
	case tcell.KeyDown:
		v.explorer.Pan(0, panFraction)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	params := v.explorer.Params()
	switch r {
	case 'q':
		return false
	case '+', '=':
		v.explorer.ZoomAt(params.Width/2, params.Height/2, zoomFactor)
	case '-', '_':
		v.explorer.ZoomAt(params.Width/2, params.Height/2, 1/zoomFactor)
	case 'f':
		v.explorer.SetKind(v.explorer.Kind().Next())
		v.message = v.explorer.Kind().String()
	case 'p':
		v.explorer.SetScheme(v.explorer.Scheme().Next())
		v.message = v.explorer.Scheme().String()
	case ']':
		v.explorer.SetMaxIterations(int(float64(params.MaxIterations) * iterationScale))
	case '[':
		v.explorer.SetMaxIterations(max(minIterations, int(float64(params.MaxIterations)/iterationScale)))
	case 'b':
		if !v.explorer.Back() {
			v.message = "history is empty"
		}
	case 's':
		view, err := v.explorer.SaveView(fmt.Sprintf("view %d", len(v.explorer.SavedViews())+1))
		v.message = "saved " + view.Name
		if misc.CheckError(err, v.logger, misc.Warning) {
			v.message = err.Error()
		}
	case 'v':
		v.restoreNextView()
	case 'e':
		path := v.explorer.Settings().ExportFile
		v.message = "exported " + path
		if err := v.explorer.Export(path); misc.CheckError(err, v.logger, misc.Warning) {
			v.message = err.Error()
		}
	case 'a':
		v.animating = !v.animating
	case ' ':
		v.playTone()
	}
	return true
}

func (v *Viewer) restoreNextView() {
	saved := v.explorer.SavedViews()
	if len(saved) == 0 {
		v.message = "no saved views"
		return
	}
	view := saved[v.savedView%len(saved)]
	v.savedView++
	v.message = view.Name
	if err := v.explorer.RestoreView(view.ID); misc.CheckError(err, v.logger, misc.Warning) {
		v.message = err.Error()
	}
}

func (v *Viewer) playTone() {
	if v.sound == nil {
		return
	}
	if err := v.sound.PlayZoomTone(v.explorer.Params().Zoom); misc.CheckError(err, v.logger, misc.Warning) {
		v.message = "audio unavailable"
	}
}

func (v *Viewer) fitToScreen() {
	width, height := ImageSize(v.screen.Size())
	if err := v.explorer.Resize(width, height); misc.CheckError(err, v.logger, misc.Warning) {
		v.message = err.Error()
	}
}

// Draw paints img into every cell above the status line.
func (v *Viewer) Draw(img *render.Image) {
	cols, rows := v.screen.Size()
	for cy := 0; cy < rows-1; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := CellColors(img, cx, cy)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			v.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

// CellColors returns the two pixels shown by cell (cx, cy). Cells outside the image are black.
func CellColors(img *render.Image, cx int, cy int) (color.RGBA, color.RGBA) {
	return pixel(img, cx, cy*2), pixel(img, cx, cy*2+1)
}

func pixel(img *render.Image, x int, y int) color.RGBA {
	if img == nil || x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return palette.Black
	}
	offset := (y*img.Width + x) * 4
	return color.RGBA{R: img.Pix[offset], G: img.Pix[offset+1], B: img.Pix[offset+2], A: img.Pix[offset+3]}
}

func (v *Viewer) drawStatus() {
	cols, rows := v.screen.Size()
	if rows <= 0 {
		return
	}
	y := rows - 1
	text := v.explorer.Status()
	if v.animating {
		text += " | animating"
	}
	if v.message != "" {
		text += " | " + v.message
	}

	textWidth := max(0, cols-legendWidth)
	runes := []rune(text)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < textWidth; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, y, r, nil, style)
	}

	legend := palette.Table(v.explorer.Scheme(), min(legendWidth, cols))
	for i, c := range legend {
		v.screen.SetContent(textWidth+i, y, ' ', nil, tcell.StyleDefault.Background(tcellColor(c)))
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
