package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the output rate used by NewPlayer when given zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Player mixes sound effects onto the speaker. Calls made before Init or
// after Close are ignored so a game can run without audio.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player that outputs at rate.
func NewPlayer(rate beep.SampleRate) *Player {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Player{rate: rate, mixer: &beep.Mixer{}}
}

// SampleRate returns the output sample rate.
func (p *Player) SampleRate() beep.SampleRate { return p.rate }

// Init opens the speaker with a 100ms buffer and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// PlayOnce starts s from the beginning. Overlapping calls play concurrently.
func (p *Player) PlayOnce(s *Sound) {
	if s == nil {
		return
	}
	p.play(p.resample(s.Format().SampleRate, s.Streamer()))
}

// PlayTone plays a short sine beep.
func (p *Player) PlayTone(freq float64, d time.Duration) {
	t, err := Tone(p.rate, freq, d)
	if err != nil {
		return
	}
	p.play(t)
}

func (p *Player) resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == p.rate {
		return s
	}
	return beep.Resample(4, from, p.rate, s)
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
