// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"time"

	"github.com/ik5/pcmbridge/audio"
)

// EndOfStream is the buffer index that marks the end of a decoder's output.
const EndOfStream = -1

// Flags qualify a queued buffer.
type Flags uint32

const (
	// FlagEndOfStream marks the last buffer queued into an encoder. Such a
	// buffer normally carries no data.
	FlagEndOfStream Flags = 1 << 2
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// BufferInfo describes one decoder output buffer. Index is EndOfStream when
// the decoder has nothing more to produce.
type BufferInfo struct {
	Index int
	Size  int
	PtsUs int64
	Flags Flags
}

// EOS reports whether info is the end-of-stream marker.
func (info BufferInfo) EOS() bool {
	return info.Index == EndOfStream || info.Flags.Has(FlagEndOfStream)
}

// Decoder exposes decoded PCM buffers by index. The bytes returned by
// OutputBuffer stay valid until the index is released.
type Decoder interface {
	OutputBuffer(index int) ([]byte, error)
	ReleaseOutputBuffer(index int) error
}

// Encoder accepts PCM through indexed input slots.
//
// DequeueInputBuffer waits up to timeout for a free slot and returns
// ErrTryAgainLater when none shows up; a zero timeout polls. InputBuffer
// returns the full writable slot. QueueInputBuffer submits the first size
// bytes of the slot with their presentation time.
type Encoder interface {
	DequeueInputBuffer(timeout time.Duration) (int, error)
	InputBuffer(index int) ([]byte, error)
	QueueInputBuffer(index, size int, ptsUs int64, flags Flags) error
}

// DecoderEngine is a decoder that also produces buffers on request.
// The first DequeueOutputBuffer reports ErrOutputFormatChanged so the
// caller can read OutputFormat before any data arrives.
type DecoderEngine interface {
	Decoder
	DequeueOutputBuffer(timeout time.Duration) (BufferInfo, error)
	OutputFormat() audio.Format
	Close() error
}

// EncoderEngine is an encoder with a fixed input format.
type EncoderEngine interface {
	Encoder
	Format() audio.Format
	Close() error
}

// Sink consumes the PCM an encoder engine accepts. Bytes are interleaved
// little-endian 16-bit samples and are only valid during the call.
type Sink interface {
	WritePCM(pcm []byte, ptsUs int64) error
	Close() error
}
