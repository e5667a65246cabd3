// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	list "github.com/bahlo/generic-list-go"
	"github.com/rs/zerolog"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/codec"
	"github.com/ik5/pcmbridge/internal/bufpool"
	"github.com/ik5/pcmbridge/internal/observe"
	"github.com/ik5/pcmbridge/pcm"
	"github.com/ik5/pcmbridge/remix"
)

// sampleBuffer is one decoder output buffer waiting to be remixed.
// view is nil for the end of stream marker.
type sampleBuffer struct {
	index int
	ptsUs int64
	view  *pcm.View
}

func (b *sampleBuffer) eos() bool { return b.index == codec.EndOfStream }

// Stats are running totals of a Channel.
type Stats struct {
	BuffersIn    int64
	SamplesIn    int64
	SamplesOut   int64
	Spills       int64
	Backpressure int64
}

// Channel moves PCM from a decoder to an encoder, converting the channel
// layout and repacking samples into encoder sized buffers.
//
// A Channel is not safe for concurrent use.
type Channel struct {
	dec codec.Decoder
	enc codec.Encoder
	out audio.Format

	in        audio.Format
	formatSet bool
	remixer   remix.Remixer

	filled *list.List[*sampleBuffer]
	free   *bufpool.FreeList[sampleBuffer]
	over   overflow

	eosQueued     bool
	finished      bool
	warnedPartial bool

	stats   Stats
	log     zerolog.Logger
	metrics *observe.Metrics
}

// New returns a Channel that reads from dec and writes to enc, which accepts
// PCM in the out format. SetActualFormat must be called before any buffer
// is enqueued.
func New(dec codec.Decoder, enc codec.Encoder, out audio.Format, opts ...Option) (*Channel, error) {
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("encoder format: %w", err)
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Channel{
		dec:     dec,
		enc:     enc,
		out:     out,
		filled:  list.New[*sampleBuffer](),
		free:    bufpool.New[sampleBuffer](codec.DefaultSlots),
		log:     o.log,
		metrics: o.metrics,
	}, nil
}

// SetActualFormat tells the channel what the decoder really produces. It
// fails without changing anything when the sample rates differ or a channel
// count is not 1 or 2. Setting the same format again is a no-op.
func (c *Channel) SetActualFormat(in audio.Format) error {
	if c.formatSet {
		if in == c.in {
			return nil
		}
		return fmt.Errorf("%w: have %s, got %s", ErrFormatAlreadySet, c.in, in)
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("decoder format: %w", err)
	}
	if in.SampleRate != c.out.SampleRate {
		return fmt.Errorf("%w: decoder %d Hz, encoder %d Hz",
			ErrSampleRateMismatch, in.SampleRate, c.out.SampleRate)
	}

	r, err := remix.Select(in.Channels, c.out.Channels)
	if err != nil {
		return err
	}

	c.in = in
	c.remixer = r
	c.formatSet = true
	if c.over.view != nil {
		c.over.view.Empty()
	}

	c.log.Debug().
		Stringer("input", in).
		Stringer("output", c.out).
		Str("remix", r.String()).
		Msg("actual format set")
	return nil
}

// EnqueueDecoderOutput queues decoder buffer index, or the end of stream
// marker codec.EndOfStream, with its presentation timestamp. The decoder
// buffer stays borrowed until FeedEncoder has remixed it.
func (c *Channel) EnqueueDecoderOutput(index int, ptsUs int64) error {
	if !c.formatSet {
		return ErrFormatNotSet
	}
	if c.eosQueued {
		return ErrEndOfStream
	}

	buf := c.free.Acquire()
	buf.index = index
	buf.ptsUs = ptsUs

	if index == codec.EndOfStream {
		buf.view = nil
		c.eosQueued = true
	} else {
		b, err := c.dec.OutputBuffer(index)
		if err != nil {
			c.free.Release(buf)
			return fmt.Errorf("decoder output buffer %d: %w", index, err)
		}
		if buf.view == nil {
			buf.view = pcm.Wrap(b)
		} else {
			buf.view.Reset(b)
		}
		c.sizeOverflow(buf.view.Remaining())

		c.stats.SamplesIn += int64(buf.view.Remaining())
		c.metrics.SamplesDecoded.Add(context.Background(), int64(buf.view.Remaining()))
	}

	c.filled.PushBack(buf)
	c.stats.BuffersIn++
	c.metrics.BuffersEnqueued.Add(context.Background(), 1)
	return nil
}

// sizeOverflow makes the overflow big enough for one remixed chunk of
// samples input samples, while it holds nothing.
func (c *Channel) sizeOverflow(samples int) {
	if c.over.pending() {
		return
	}
	c.over.reserve(max(samples, remix.OutputSamples(c.remixer, samples)))
}

// FeedEncoder moves at most one encoder buffer worth of samples to the
// encoder and reports whether it made progress. Leftover samples from a
// previous call are sent before any queued buffer is looked at.
//
// It returns false with a nil error when there is nothing to send, when no
// encoder slot frees up within timeout, and once the end of stream has been
// forwarded.
func (c *Channel) FeedEncoder(timeout time.Duration) (bool, error) {
	if !c.formatSet {
		return false, ErrFormatNotSet
	}
	if c.finished {
		return false, nil
	}
	if !c.over.pending() && c.filled.Len() == 0 {
		return false, nil
	}

	slot, err := c.enc.DequeueInputBuffer(timeout)
	if errors.Is(err, codec.ErrTryAgainLater) {
		c.stats.Backpressure++
		c.metrics.EncoderBackpressure.Add(context.Background(), 1)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dequeue encoder input: %w", err)
	}

	if c.over.pending() {
		return c.drainOverflow(slot)
	}

	// The front buffer leaves the queue only once the encoder accepted it.
	front := c.filled.Front()
	if front.Value.eos() {
		if err := c.queueEndOfStream(slot, front.Value); err != nil {
			return false, err
		}
		c.filled.Remove(front)
		return false, nil
	}
	return c.remixBuffer(slot, front)
}

// outputView wraps encoder slot as a writable view trimmed to whole frames.
func (c *Channel) outputView(slot int) (*pcm.View, error) {
	b, err := c.enc.InputBuffer(slot)
	if err != nil {
		return nil, fmt.Errorf("encoder input buffer %d: %w", slot, err)
	}

	v := pcm.Wrap(b)
	frames := v.Capacity() / c.out.Channels
	if frames == 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels",
			ErrEncoderBufferTooSmall, v.Capacity(), c.out.Channels)
	}
	v.SetLimit(frames * c.out.Channels)
	return v, nil
}

func (c *Channel) drainOverflow(slot int) (bool, error) {
	out, err := c.outputView(slot)
	if err != nil {
		return false, err
	}

	start := c.over.view.Position()
	ptsUs := c.over.headPtsUs(c.out.SampleRate, c.out.Channels)
	n := out.CopyFrom(c.over.view, out.Remaining())

	if err := c.submit(slot, out, ptsUs); err != nil {
		c.over.view.SetPosition(start)
		return false, err
	}
	if !c.over.view.HasRemaining() {
		c.over.view.Empty()
	}
	c.log.Trace().Int("samples", n).Int64("pts_us", ptsUs).Msg("overflow drained")
	return true, nil
}

// queueEndOfStream forwards the marker. Its wrapper is not recycled since
// nothing may be enqueued after it.
func (c *Channel) queueEndOfStream(slot int, buf *sampleBuffer) error {
	if err := c.enc.QueueInputBuffer(slot, 0, buf.ptsUs, codec.FlagEndOfStream); err != nil {
		return fmt.Errorf("queue end of stream: %w", err)
	}
	c.finished = true
	c.log.Debug().
		Int64("samples_in", c.stats.SamplesIn).
		Int64("samples_out", c.stats.SamplesOut).
		Msg("end of stream forwarded")
	return nil
}

func (c *Channel) remixBuffer(slot int, e *list.Element[*sampleBuffer]) (bool, error) {
	out, err := c.outputView(slot)
	if err != nil {
		return false, err
	}

	buf := e.Value
	in := buf.view
	start := in.Position()
	c.remixer.Remix(in, out)

	spilled := in.Remaining() >= c.in.Channels
	if spilled {
		c.spill(buf)
	}

	if err := c.submit(slot, out, buf.ptsUs); err != nil {
		in.SetPosition(start)
		if spilled {
			c.over.view.Empty()
		}
		return false, err
	}
	c.filled.Remove(e)

	if spilled {
		c.stats.Spills++
		c.metrics.OverflowSpills.Add(context.Background(), 1)
		c.log.Trace().
			Int("samples", c.over.view.Remaining()).
			Int64("pts_us", c.over.ptsUs).
			Msg("spilled to overflow")
	}
	if in.HasRemaining() && !c.warnedPartial {
		c.warnedPartial = true
		c.log.Warn().
			Int("samples", in.Remaining()).
			Int("channels", c.in.Channels).
			Msg("decoder buffer ends with a partial frame, dropping it")
	}

	if err := c.dec.ReleaseOutputBuffer(buf.index); err != nil {
		return false, fmt.Errorf("release decoder buffer %d: %w", buf.index, err)
	}

	buf.view.Reset(nil)
	c.free.Release(buf)
	return true, nil
}

// spill remixes what is left of buf into the empty overflow.
func (c *Channel) spill(buf *sampleBuffer) {
	in := buf.view
	c.over.ptsUs = buf.ptsUs + pcm.DurationUs(in.Position(), c.in.SampleRate, c.in.Channels)
	c.over.reserve(remix.OutputSamples(c.remixer, in.Remaining()))

	c.over.view.Clear()
	c.remixer.Remix(in, c.over.view)
	c.over.view.Flip()
}

func (c *Channel) submit(slot int, out *pcm.View, ptsUs int64) error {
	n := out.Position()
	if err := c.enc.QueueInputBuffer(slot, n*pcm.BytesPerSample, ptsUs, 0); err != nil {
		return fmt.Errorf("queue encoder input %d: %w", slot, err)
	}
	c.stats.SamplesOut += int64(n)
	c.metrics.RecordEncoded(context.Background(), c.remixer.String(), n)
	return nil
}

// InputFormat is the format given to SetActualFormat.
func (c *Channel) InputFormat() audio.Format { return c.in }

// OutputFormat is the encoder format given to New.
func (c *Channel) OutputFormat() audio.Format { return c.out }

// Queued is the number of enqueued buffers not yet fed to the encoder.
func (c *Channel) Queued() int { return c.filled.Len() }

// OverflowSamples is the number of remixed samples waiting for the next
// encoder slot.
func (c *Channel) OverflowSamples() int { return c.over.samples() }

// Finished reports whether the end of stream reached the encoder.
func (c *Channel) Finished() bool { return c.finished }

// Stats returns a copy of the running totals.
func (c *Channel) Stats() Stats { return c.stats }
