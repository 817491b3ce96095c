package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// toneVolume attenuates generated tones so they sit under sampled effects.
const toneVolume = -1.5

// Tone returns a sine wave of freq Hz lasting d, with a linear fade-out over
// its final quarter.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	n := rate.N(d)
	faded := &fadeOut{streamer: beep.Take(n, sine), total: n, fade: n / 4}
	return &effects.Volume{Streamer: faded, Base: 2, Volume: toneVolume}, nil
}

// fadeOut ramps the last fade samples of a total-sample stream down to zero.
type fadeOut struct {
	streamer beep.Streamer
	pos      int
	total    int
	fade     int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := range n {
		left := f.total - f.pos
		if f.fade > 0 && left < f.fade {
			g := float64(left) / float64(f.fade)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }
