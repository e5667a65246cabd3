// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// BytesPerSample is the width of one signed 16-bit PCM sample.
const BytesPerSample = 2

// Format describes the sample rate and channel count of a 16-bit PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

// Validate reports whether f can describe a stream at all. It does not
// restrict the channel count; callers with narrower needs check that
// themselves.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", f.SampleRate, ErrInvalidFormat)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("channel count %d: %w", f.Channels, ErrInvalidFormat)
	}
	return nil
}

// FrameBytes is the size in bytes of one frame (one sample per channel).
func (f Format) FrameBytes() int { return f.Channels * BytesPerSample }

// String returns e.g. "48000Hz stereo".
func (f Format) String() string {
	ch := "mono"
	switch {
	case f.Channels == 2:
		ch = "stereo"
	case f.Channels > 2 || f.Channels <= 0:
		ch = fmt.Sprintf("%dch", f.Channels)
	}
	return fmt.Sprintf("%dHz %s", f.SampleRate, ch)
}
