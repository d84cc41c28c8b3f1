package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	BaseFrequency  = 440.0
	HertzPerZoom   = 10.0
	MaxFrequency   = 4000.0
	ToneDuration   = 500 * time.Millisecond
	ToneAmplitude  = 0.25
	speakerLatency = 100 * time.Millisecond
)

// ToneFrequency maps a zoom level to the pitch of its feedback tone, rising with the zoom and capped at
// MaxFrequency.
func ToneFrequency(zoom float64) float64 {
	if !(zoom > 0) {
		zoom = 0
	}
	return math.Min(BaseFrequency+zoom*HertzPerZoom, MaxFrequency)
}

// Tone is the feedback tone for zoom: a sine wave at ToneFrequency lasting ToneDuration at ToneAmplitude.
func Tone(rate beep.SampleRate, zoom float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, ToneFrequency(zoom))
	if err != nil {
		return nil, fmt.Errorf("unable to create tone for zoom %g: %w", zoom, err)
	}
	quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: math.Log2(ToneAmplitude), Silent: false}
	return beep.Take(rate.N(ToneDuration), quiet), nil
}

// Player plays tones on the default audio device. The device is opened on first use.
type Player struct {
	initialized bool
	logger      bslogger.Logger
	mutex       sync.Mutex
}

func NewPlayer() *Player {
	return &Player{
		logger: bslogger.NewLogger("Audio", bslogger.Normal, nil),
	}
}

func (p *Player) Initialize() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.initialized {
		return nil
	}
	err := speaker.Init(sampleRate, sampleRate.N(speakerLatency))
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	p.initialized = true
	return nil
}

// PlayZoomTone starts the tone for zoom and returns without waiting for it to finish.
func (p *Player) PlayZoomTone(zoom float64) error {
	err := p.Initialize()
	if err != nil {
		return err
	}
	tone, err := Tone(sampleRate, zoom)
	if err != nil {
		return err
	}
	speaker.Play(tone)
	p.logger.Debugf("Playing %.0f Hz", ToneFrequency(zoom))
	return nil
}

func (p *Player) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
