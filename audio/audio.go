// Package audio plays short sound effects for mengine games.
//
// Sounds are decoded fully into memory when loaded so they can be started any
// number of times, possibly overlapping, with [Player.PlayOnce].
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedAudio is returned when a file's type cannot be decoded.
var ErrUnsupportedAudio = errors.New("audio: unsupported audio type")

// Type is an audio container format.
type Type uint8

const (
	TypeOther Type = iota
	TypeWAV
	TypeMP3
	TypeOGG
	TypeFLAC
)

func (t Type) String() string {
	switch t {
	case TypeWAV:
		return "wav"
	case TypeMP3:
		return "mp3"
	case TypeOGG:
		return "ogg"
	case TypeFLAC:
		return "flac"
	default:
		return "other"
	}
}

// DetectType guesses the format from the file extension, ignoring case.
func DetectType(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return TypeWAV
	case ".mp3":
		return TypeMP3
	case ".ogg":
		return TypeOGG
	case ".flac":
		return TypeFLAC
	default:
		return TypeOther
	}
}

// Sound is a decoded clip held in memory.
type Sound struct {
	buf *beep.Buffer
}

// Format returns the sample format of the clip.
func (s *Sound) Format() beep.Format { return s.buf.Format() }

// Len returns the number of samples in the clip.
func (s *Sound) Len() int { return s.buf.Len() }

// Streamer returns a fresh streamer over the whole clip.
func (s *Sound) Streamer() beep.StreamSeeker {
	return s.buf.Streamer(0, s.buf.Len())
}

// Decode reads a whole clip of type t from rc and closes rc.
func Decode(rc io.ReadCloser, t Type) (*Sound, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch t {
	case TypeWAV:
		stream, format, err = wav.Decode(rc)
	case TypeMP3:
		stream, format, err = mp3.Decode(rc)
	case TypeOGG:
		stream, format, err = vorbis.Decode(rc)
	case TypeFLAC:
		stream, format, err = flac.Decode(rc)
	default:
		rc.Close()
		return nil, ErrUnsupportedAudio
	}
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", t, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", t, err)
	}
	return &Sound{buf: buf}, nil
}

// Load opens and decodes the file at path, detecting its type from the
// extension.
func Load(path string) (*Sound, error) {
	t := DetectType(path)
	if t == TypeOther {
		return nil, fmt.Errorf("audio: load %s: %w", path, ErrUnsupportedAudio)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: load %s: %w", path, err)
	}
	return Decode(f, t)
}
