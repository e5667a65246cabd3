// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/pcmbridge/audio"
)

// Writer is a PCM sink that produces a 16-bit WAV file. The RIFF sizes are
// patched on Close, which is why it needs an io.WriteSeeker.
type Writer struct {
	enc     *wav.Encoder
	buf     *goaudio.IntBuffer
	written int
	closed  bool
}

// NewWriter writes a WAV header for f to w and returns the sink.
func NewWriter(w io.WriteSeeker, f audio.Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("wav writer: %w", err)
	}

	return &Writer{
		enc: wav.NewEncoder(w, f.SampleRate, 16, f.Channels, 1),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.Channels,
				SampleRate:  f.SampleRate,
			},
			SourceBitDepth: 16,
		},
	}, nil
}

// WritePCM appends little-endian 16-bit samples. Timestamps are implied by
// the sample count in a WAV file, so ptsUs is ignored.
func (w *Writer) WritePCM(pcm []byte, _ int64) error {
	if w.closed {
		return ErrWriterClosed
	}

	n := len(pcm) / audio.BytesPerSample
	if n == 0 {
		return nil
	}

	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]
	for i := range n {
		w.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	w.written += n
	return nil
}

// Samples returns how many samples were written so far.
func (w *Writer) Samples() int { return w.written }

// Close finalizes the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// The encoder only emits its header on the first Write.
	if w.written == 0 {
		w.buf.Data = w.buf.Data[:0]
		if err := w.enc.Write(w.buf); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}
