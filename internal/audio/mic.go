package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Mic captures mono 16-bit audio from the default input device. Read
// blocks for one block duration.
type Mic struct {
	stream *portaudio.Stream
	buffer []int16
	rate   int
	closed bool
}

// OpenMic initializes PortAudio and starts the default input stream.
func OpenMic(sampleRate, blockSize int) (*Mic, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	buffer := make([]int16, blockSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(buffer), buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	return &Mic{
		stream: stream,
		buffer: buffer,
		rate:   sampleRate,
	}, nil
}

func (m *Mic) SampleRate() int { return m.rate }

// Read waits for the next block. Device errors, input overflow included,
// are wrapped in ErrCapture and leave block untouched.
func (m *Mic) Read(block []int16) error {
	if m.closed {
		return ErrClosed
	}
	if err := checkBlock(block, len(m.buffer)); err != nil {
		return err
	}
	if err := m.stream.Read(); err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}
	copy(block, m.buffer)
	return nil
}

func (m *Mic) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if stopErr := m.stream.Stop(); stopErr != nil {
		err = stopErr
	}
	if closeErr := m.stream.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	portaudio.Terminate()
	return err
}
