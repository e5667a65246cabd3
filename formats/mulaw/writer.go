// SPDX-License-Identifier: EPL-2.0

package mulaw

import (
	"errors"
	"fmt"
	"io"
)

// ErrWriterClosed is returned by WritePCM after Close.
var ErrWriterClosed = errors.New("mu-law writer is closed")

// Writer is a PCM sink producing a raw headerless G.711 µ-law stream, one
// byte per sample. Channel layout and rate are implied, so the stream is
// normally 8000 Hz mono.
type Writer struct {
	w       io.Writer
	scratch []byte
	written int64
	closed  bool
}

// NewWriter returns a Writer encoding to w. Close closes w when it is an
// io.Closer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WritePCM(pcm []byte, _ int64) error {
	if w.closed {
		return ErrWriterClosed
	}

	w.scratch = EncodeBytes(w.scratch, pcm)
	if len(w.scratch) == 0 {
		return nil
	}

	n, err := w.w.Write(w.scratch)
	w.written += int64(n)
	if err != nil {
		return fmt.Errorf("writing mu-law bytes: %w", err)
	}
	return nil
}

// BytesWritten reports the number of encoded bytes written.
func (w *Writer) BytesWritten() int64 { return w.written }

// Close marks the writer closed. It closes the underlying writer when that
// is an io.Closer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
