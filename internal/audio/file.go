package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	visualRingSize  = 8192
	resampleQuality = 4
)

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker initializes the speaker once per sample rate.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate == rate {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		return nil
	}
	if speakerRate != 0 {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return err
	}
	speakerRate = rate
	return nil
}

// File plays an audio file through the speaker and serves the most recently
// played samples as blocks. Reads never block.
type File struct {
	path      string
	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	tap       *tap
	rate      int
	blockSize int

	mu     sync.Mutex
	done   bool
	closed bool
}

// OpenFile decodes a wav, mp3 or flac file, resamples it to sampleRate and
// starts playback.
func OpenFile(path string, sampleRate, blockSize int) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	rate := beep.SampleRate(sampleRate)
	if err := initSpeaker(rate); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	// streamer -> resample -> tap -> ctrl
	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
	}
	fs := &File{
		path:      path,
		file:      f,
		streamer:  streamer,
		format:    format,
		rate:      sampleRate,
		blockSize: blockSize,
	}
	fs.tap = newTap(src, visualRingSize)
	fs.ctrl = &beep.Ctrl{Streamer: fs.tap}

	speaker.Play(beep.Seq(fs.ctrl, beep.Callback(func() {
		fs.mu.Lock()
		fs.done = true
		fs.mu.Unlock()
	})))
	return fs, nil
}

func (f *File) SampleRate() int { return f.rate }

// Path is the file being played.
func (f *File) Path() string { return f.path }

// Read copies the latest played samples. While paused or after the end of
// the file the block is silent.
func (f *File) Read(block []int16) error {
	if err := checkBlock(block, f.blockSize); err != nil {
		return err
	}
	f.mu.Lock()
	done, closed := f.done, f.closed
	f.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if done || f.Paused() {
		zero(block)
		return nil
	}
	f.tap.block(block)
	return nil
}

// TogglePause pauses or resumes playback.
func (f *File) TogglePause() {
	speaker.Lock()
	f.ctrl.Paused = !f.ctrl.Paused
	speaker.Unlock()
}

// Paused reports whether playback is paused.
func (f *File) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return f.ctrl.Paused
}

// Done reports whether playback reached the end of the file.
func (f *File) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Position is the current playback position.
func (f *File) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return f.format.SampleRate.D(f.streamer.Position())
}

// Duration is the total length of the file.
func (f *File) Duration() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return f.format.SampleRate.D(f.streamer.Len())
}

// Seek jumps to frac of the file, clamped to [0,1]. It is a no-op once
// playback has finished.
func (f *File) Seek(frac float64) error {
	if f.Done() {
		return nil
	}
	frac = math.Max(0, math.Min(1, frac))

	speaker.Lock()
	defer speaker.Unlock()
	n := f.streamer.Len()
	if n == 0 {
		return nil
	}
	pos := int(frac * float64(n))
	if pos >= n {
		pos = n - 1
	}
	return f.streamer.Seek(pos)
}

// Close stops playback and releases the file.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()

	err := f.streamer.Close()
	_ = f.file.Close()
	return err
}
