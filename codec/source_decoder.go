// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/pcm"
	"github.com/rs/zerolog"
)

// maxEmptyReads bounds how often a source may return (0, nil) in a row
// before DequeueOutputBuffer gives up with ErrTryAgainLater.
const maxEmptyReads = 16

// SourceDecoder turns an audio.Source into a DecoderEngine. Each dequeued
// buffer holds up to one chunk of samples read from the source.
//
// One goroutine may dequeue while another reads and releases buffers.
type SourceDecoder struct {
	src    audio.Source
	format audio.Format
	log    zerolog.Logger

	slots   [][]byte
	free    chan int
	scratch []int16

	mu    sync.Mutex
	sizes []int
	owned []bool

	// held samples sit at the front of scratch waiting for the rest of
	// their frame.
	held    int
	readErr error

	formatReported bool
	eof            bool
	eosDelivered   bool
	samplesRead    int64
}

// NewSourceDecoder wraps src. Chunks default to src.BufSize() samples and
// are rounded down to whole frames.
func NewSourceDecoder(src audio.Source, opts ...Option) (*SourceDecoder, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	format := audio.FormatOf(src)
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("source decoder: %w", err)
	}

	chunk := o.samples
	if chunk == 0 {
		chunk = src.BufSize()
	}
	// whole frames only
	chunk = max(chunk/format.Channels, 1) * format.Channels

	d := &SourceDecoder{
		src:     src,
		format:  format,
		log:     o.log,
		slots:   make([][]byte, o.slots),
		free:    make(chan int, o.slots),
		scratch: make([]int16, chunk),
		sizes:   make([]int, o.slots),
		owned:   make([]bool, o.slots),
	}
	for i := range d.slots {
		d.slots[i] = make([]byte, chunk*pcm.BytesPerSample)
		d.free <- i
	}
	return d, nil
}

func (d *SourceDecoder) OutputFormat() audio.Format { return d.format }

// ChunkSamples is the capacity of each output buffer in samples.
func (d *SourceDecoder) ChunkSamples() int { return len(d.scratch) }

// DequeueOutputBuffer reads the next chunk from the source into a free
// slot. When every slot is held by the consumer it waits up to timeout for
// one to be released.
func (d *SourceDecoder) DequeueOutputBuffer(timeout time.Duration) (BufferInfo, error) {
	if !d.formatReported {
		d.formatReported = true
		d.log.Debug().Stringer("format", d.format).Msg("decoder output format")
		return BufferInfo{}, ErrOutputFormatChanged
	}
	if d.eosDelivered {
		return BufferInfo{}, ErrEndOfStream
	}
	if d.eof {
		return d.deliverEOS(), nil
	}

	idx, err := acquire(d.free, timeout)
	if err != nil {
		return BufferInfo{}, err
	}

	n, err := d.read()
	if n == 0 {
		d.free <- idx
		if err != nil {
			return BufferInfo{}, err
		}
		return d.deliverEOS(), nil
	}

	pcm.Int16sToBytes(d.slots[idx][:0], d.scratch[:n])

	info := BufferInfo{
		Index: idx,
		Size:  n * pcm.BytesPerSample,
		PtsUs: pcm.DurationUs(int(d.samplesRead), d.format.SampleRate, d.format.Channels),
	}
	d.samplesRead += int64(n)

	d.mu.Lock()
	d.sizes[idx] = info.Size
	d.owned[idx] = true
	d.mu.Unlock()

	return info, nil
}

// read fills scratch with whole frames only. Sources may stop mid-frame,
// so it keeps reading until the frame completes. It returns (0, nil) once
// the source is exhausted. Samples read together with an error are
// returned first and the error on the next call.
func (d *SourceDecoder) read() (int, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}

	ch := d.format.Channels
	for empty := 0; empty < maxEmptyReads; {
		n, err := d.src.ReadSamples(d.scratch[d.held:])
		d.held += n

		switch {
		case errors.Is(err, io.EOF):
			d.eof = true
			return d.takeFrames(), nil
		case err != nil:
			d.readErr = fmt.Errorf("reading source: %w", err)
			if whole := d.takeFrames(); whole > 0 {
				return whole, nil
			}
			return 0, d.readErr
		case n == 0:
			empty++
		case d.held%ch == 0:
			return d.takeFrames(), nil
		}
	}
	return 0, ErrTryAgainLater
}

// takeFrames hands out the whole frames held in scratch and discards a
// trailing partial frame, which only a truncated stream leaves behind.
func (d *SourceDecoder) takeFrames() int {
	n := d.held - d.held%d.format.Channels
	if tail := d.held - n; tail > 0 {
		d.log.Warn().Int("samples", tail).Msg("source ended inside a frame, dropping partial frame")
	}
	d.held = 0
	return n
}

func (d *SourceDecoder) deliverEOS() BufferInfo {
	d.eosDelivered = true
	pts := pcm.DurationUs(int(d.samplesRead), d.format.SampleRate, d.format.Channels)
	d.log.Debug().Int64("samples", d.samplesRead).Int64("pts_us", pts).Msg("decoder reached end of stream")
	return BufferInfo{Index: EndOfStream, PtsUs: pts, Flags: FlagEndOfStream}
}

func (d *SourceDecoder) OutputBuffer(index int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.slots) || !d.owned[index] {
		return nil, fmt.Errorf("output buffer %d: %w", index, ErrInvalidIndex)
	}
	return d.slots[index][:d.sizes[index]], nil
}

func (d *SourceDecoder) ReleaseOutputBuffer(index int) error {
	d.mu.Lock()
	if index < 0 || index >= len(d.slots) || !d.owned[index] {
		d.mu.Unlock()
		return fmt.Errorf("release output buffer %d: %w", index, ErrInvalidIndex)
	}
	d.owned[index] = false
	d.mu.Unlock()

	d.free <- index
	return nil
}

// SamplesRead is the number of samples taken from the source so far.
func (d *SourceDecoder) SamplesRead() int64 { return d.samplesRead }

// Close closes the source.
func (d *SourceDecoder) Close() error {
	return d.src.Close()
}

// acquire takes a free slot index, waiting at most timeout.
func acquire(free <-chan int, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		select {
		case idx := <-free:
			return idx, nil
		default:
			return 0, ErrTryAgainLater
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case idx := <-free:
		return idx, nil
	case <-timer.C:
		return 0, ErrTryAgainLater
	}
}
