package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		path string
		want Type
	}{
		{"static/TMissile.ogg", TypeOGG},
		{"boom.WAV", TypeWAV},
		{"music/theme.mp3", TypeMP3},
		{"a.b/c.Flac", TypeFLAC},
		{"notes.txt", TypeOther},
		{"noext", TypeOther},
		{"wav", TypeOther},
	}
	for _, tt := range tests {
		if got := DetectType(tt.path); got != tt.want {
			t.Errorf("DetectType(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("sound.aiff")
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("Load error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(io.NopCloser(strings.NewReader("")), TypeOther)
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("Decode error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadWAV(t *testing.T) {
	rate := beep.SampleRate(22050)
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	n := rate.N(50 * time.Millisecond)

	sine, err := generators.SineTone(rate, 440)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "beep.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Encode(f, beep.Take(n, sine), format); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != n {
		t.Errorf("Len = %d, want %d", s.Len(), n)
	}
	if s.Format().SampleRate != rate {
		t.Errorf("SampleRate = %v, want %v", s.Format().SampleRate, rate)
	}

	// Each streamer starts from the beginning.
	buf := make([][2]float64, n)
	for range 2 {
		got, _ := s.Streamer().Stream(buf)
		if got != n {
			t.Errorf("streamed %d samples, want %d", got, n)
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 20 * time.Millisecond
	tone, err := Tone(rate, 880, d)
	if err != nil {
		t.Fatal(err)
	}

	want := rate.N(d)
	total := 0
	buf := make([][2]float64, 256)
	for {
		n, ok := tone.Stream(buf)
		total += n
		for i := range n {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total-n+i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("tone length = %d samples, want %d", total, want)
	}
}

func TestToneFadesOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone, err := Tone(rate, 1000, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := tone.Stream(buf)
	if last := buf[n-1][0]; last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %f, want silence", last)
	}
}

func TestPlayerIgnoresCallsBeforeInit(t *testing.T) {
	p := NewPlayer(0)
	if p.SampleRate() != DefaultSampleRate {
		t.Errorf("SampleRate = %v, want %v", p.SampleRate(), DefaultSampleRate)
	}
	p.PlayTone(440, 10*time.Millisecond)
	p.PlayOnce(nil)
	p.Close()
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers, want 0", p.mixer.Len())
	}
}
