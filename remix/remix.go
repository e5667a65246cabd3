// SPDX-License-Identifier: EPL-2.0

package remix

import (
	"fmt"

	"github.com/ik5/pcmbridge/pcm"
)

// Remixer converts interleaved 16-bit samples from one channel layout to
// another.
type Remixer interface {
	// Remix consumes whole input frames from in and writes whole output
	// frames to out. It stops when in has no complete frame left or out has
	// no room for another complete frame, so the caller can tell a
	// capacity-limited call by in.HasRemaining().
	Remix(in, out *pcm.View)

	InChannels() int
	OutChannels() int
	String() string
}

// Select returns the Remixer converting in channels to out channels.
// Only mono and stereo are supported.
func Select(in, out int) (Remixer, error) {
	if in != 1 && in != 2 {
		return nil, fmt.Errorf("input channel count %d: %w", in, ErrUnsupportedChannelCount)
	}
	if out != 1 && out != 2 {
		return nil, fmt.Errorf("output channel count %d: %w", out, ErrUnsupportedChannelCount)
	}

	switch {
	case in > out:
		return Downmix{}, nil
	case in < out:
		return Upmix{}, nil
	default:
		return Passthrough{Channels: in}, nil
	}
}

// OutputSamples is the number of samples r produces from inSamples input
// samples. Trailing partial frames produce nothing.
func OutputSamples(r Remixer, inSamples int) int {
	return inSamples / r.InChannels() * r.OutChannels()
}

// frames returns how many frames can move from in to out.
func frames(in, out *pcm.View, inCh, outCh int) int {
	return min(in.Remaining()/inCh, out.Remaining()/outCh)
}
