// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"sync"
	"time"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/pcm"
	"github.com/rs/zerolog"
)

// SinkEncoder is an EncoderEngine that hands every queued buffer to a Sink.
// Slots return to the free set as soon as the sink has consumed them, so
// DequeueInputBuffer only blocks while the caller itself holds every slot.
type SinkEncoder struct {
	sink   Sink
	format audio.Format
	log    zerolog.Logger

	slots [][]byte
	free  chan int

	mu      sync.Mutex
	owned   []bool
	eos     bool
	closed  bool
	queued  int
	samples int64
}

// NewSinkEncoder returns an encoder that accepts PCM in format and hands
// every queued buffer to sink. Closing the encoder closes sink.
func NewSinkEncoder(sink Sink, format audio.Format, opts ...Option) (*SinkEncoder, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("sink encoder: %w", err)
	}

	samples := o.samples
	if samples == 0 {
		samples = DefaultBufferSamples
	}

	e := &SinkEncoder{
		sink:   sink,
		format: format,
		log:    o.log,
		slots:  make([][]byte, o.slots),
		free:   make(chan int, o.slots),
		owned:  make([]bool, o.slots),
	}
	for i := range e.slots {
		e.slots[i] = make([]byte, samples*pcm.BytesPerSample)
		e.free <- i
	}
	return e, nil
}

func (e *SinkEncoder) Format() audio.Format { return e.format }

func (e *SinkEncoder) DequeueInputBuffer(timeout time.Duration) (int, error) {
	e.mu.Lock()
	eos := e.eos
	e.mu.Unlock()
	if eos {
		return 0, ErrEndOfStream
	}

	idx, err := acquire(e.free, timeout)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	e.owned[idx] = true
	e.mu.Unlock()
	return idx, nil
}

func (e *SinkEncoder) InputBuffer(index int) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.slots) || !e.owned[index] {
		return nil, fmt.Errorf("input buffer %d: %w", index, ErrInvalidIndex)
	}
	return e.slots[index], nil
}

func (e *SinkEncoder) QueueInputBuffer(index, size int, ptsUs int64, flags Flags) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.slots) || !e.owned[index] {
		return fmt.Errorf("queue input buffer %d: %w", index, ErrInvalidIndex)
	}
	if size < 0 || size > len(e.slots[index]) {
		return fmt.Errorf("queue input buffer %d with %d bytes: %w", index, size, ErrBufferTooLarge)
	}

	e.owned[index] = false
	defer func() { e.free <- index }()

	if size > 0 {
		if err := e.sink.WritePCM(e.slots[index][:size], ptsUs); err != nil {
			return fmt.Errorf("sink write at %dus: %w", ptsUs, err)
		}
		e.queued++
		e.samples += int64(size / pcm.BytesPerSample)
	}

	if flags.Has(FlagEndOfStream) {
		e.eos = true
		e.log.Debug().Int("buffers", e.queued).Int64("samples", e.samples).Msg("encoder received end of stream")
	}
	return nil
}

// EndOfStream reports whether a buffer flagged FlagEndOfStream was queued.
func (e *SinkEncoder) EndOfStream() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eos
}

// SamplesWritten is the number of samples handed to the sink.
func (e *SinkEncoder) SamplesWritten() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.samples
}

// Close closes the sink. Calling it more than once is a no-op.
func (e *SinkEncoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.sink.Close(); err != nil {
		return fmt.Errorf("closing sink: %w", err)
	}
	return nil
}
