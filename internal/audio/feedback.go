package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/san-kum/dronesim/internal/config"
	"github.com/san-kum/dronesim/internal/dynamo"
)

const sampleRate = beep.SampleRate(44100)

// Feedback plays a chirp on every connection change and a motor hum that
// follows the throttle while connected. Every method is a no-op until
// Initialize succeeds, so a machine without an audio device flies silent.
type Feedback struct {
	mu          sync.Mutex
	volume      float64
	mixer       *beep.Mixer
	hum         *HumGenerator
	humCtrl     *beep.Ctrl
	initialized bool
}

func NewFeedback(cfg config.AudioConfig) *Feedback {
	hum := NewHumGenerator(sampleRate)
	return &Feedback{
		volume:  cfg.Volume,
		mixer:   &beep.Mixer{},
		hum:     hum,
		humCtrl: &beep.Ctrl{Streamer: hum, Paused: true},
	}
}

// Initialize opens the speaker. The error wraps dynamo.ErrAudioUnavailable.
func (f *Feedback) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrAudioUnavailable, err)
	}

	f.mixer.Add(f.humCtrl)
	speaker.Play(&effects.Gain{Streamer: f.mixer, Gain: f.volume - 1})
	f.initialized = true
	return nil
}

func (f *Feedback) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// OnConnectionChange implements sim.ConnectionListener.
func (f *Feedback) OnConnectionChange(connected bool, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	if !connected {
		f.hum.SetThrottle(0)
	}
	speaker.Lock()
	f.humCtrl.Paused = !connected
	f.mixer.Add(NewConnectChirp(sampleRate, connected))
	speaker.Unlock()
}

// OnFrame implements dynamo.Observer.
func (f *Feedback) OnFrame(frame dynamo.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	f.hum.SetThrottle(frame.Controls.Throttle)
}

// Cleanup silences everything. Beep has no speaker close, so the mixer is
// cleared instead.
func (f *Feedback) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	speaker.Lock()
	f.humCtrl.Paused = true
	f.mixer.Clear()
	speaker.Unlock()
	f.initialized = false
}
