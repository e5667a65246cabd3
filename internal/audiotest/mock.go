// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates 16-bit audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int // Total frames to generate
	generated   int // Frames generated so far
	bufSize     int
	closed      bool
	waveform    func(frame int, channel int) int16
}

// NewMockSource creates a new mock audio source.
// totalFrames is the number of frames (samples per channel) to generate.
// waveform is a function that generates sample values given frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) int16) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		bufSize:     4096,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) int16 {
		return 0
	})
}

// NewSineSource creates a mock source that generates a half-scale sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(16384 * math.Sin(2*math.Pi*frequency*t))
	})
}

// NewRampSource creates a mock source whose sample value encodes its
// position: frame*channels + channel, wrapped into the int16 range. Useful for
// checking that no sample is lost or reordered.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) int16 {
		return int16((frame*channels + channel) % 32768)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value int16) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) int16 {
		return value
	})
}

// WithBufSize sets the value reported by BufSize.
func (m *MockSource) WithBufSize(samples int) *MockSource {
	m.bufSize = samples
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated frame counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []int16) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)

	for frame := range framesToWrite {
		frameIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(frameIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// SliceSource plays back a fixed run of interleaved samples. Reads are
// capped at a read size that need not line up with frames, like a decoder
// that returns whatever it has.
type SliceSource struct {
	sampleRate int
	channels   int
	samples    []int16
	pos        int
	readSize   int
	err        error
	closed     bool
}

// NewSliceSource returns a source yielding samples, then io.EOF.
func NewSliceSource(sampleRate, channels int, samples []int16) *SliceSource {
	return &SliceSource{sampleRate: sampleRate, channels: channels, samples: samples}
}

// WithReadSize caps every read at n samples. Zero means no cap.
func (s *SliceSource) WithReadSize(n int) *SliceSource {
	s.readSize = n
	return s
}

// WithError makes the source end with err instead of io.EOF. err comes back
// together with the last samples.
func (s *SliceSource) WithError(err error) *SliceSource {
	s.err = err
	return s
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }

func (s *SliceSource) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *SliceSource) Closed() bool { return s.closed }

func (s *SliceSource) ReadSamples(dst []int16) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, s.end()
	}
	if s.readSize > 0 && len(dst) > s.readSize {
		dst = dst[:s.readSize]
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, s.end()
	}
	return n, nil
}

func (s *SliceSource) end() error {
	if s.err != nil {
		return s.err
	}
	return io.EOF
}
