// SPDX-License-Identifier: EPL-2.0

package pcmbridge

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/pcmbridge/codec"
	"github.com/ik5/pcmbridge/transcode"
)

// Pipeline drives a decoder engine and an encoder engine through a
// transcode.Channel until the end of stream reaches the encoder.
type Pipeline struct {
	dec  codec.DecoderEngine
	enc  codec.EncoderEngine
	ch   *transcode.Channel
	opts options

	formatSet bool
	decDone   bool
}

// NewPipeline builds the channel between dec and enc. The channel accepts
// whatever dec reports as its output format, as long as the sample rate
// matches enc.
func NewPipeline(dec codec.DecoderEngine, enc codec.EncoderEngine, opts ...Option) (*Pipeline, error) {
	o := newOptions(opts)

	chOpts := []transcode.Option{transcode.WithLogger(o.log)}
	if o.meterProvider != nil {
		chOpts = append(chOpts, transcode.WithMeterProvider(o.meterProvider))
	}

	ch, err := transcode.New(dec, enc, enc.Format(), chOpts...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{dec: dec, enc: enc, ch: ch, opts: o}, nil
}

// Channel exposes the underlying channel, mostly for its Stats.
func (p *Pipeline) Channel() *transcode.Channel { return p.ch }

// Run alternates between pulling one decoder buffer and feeding the encoder
// on the calling goroutine.
func (p *Pipeline) Run(ctx context.Context) error {
	for !p.ch.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !p.decDone {
			ev, err := p.pull()
			if err != nil {
				return err
			}
			if err := p.apply(ev); err != nil {
				return err
			}
		}

		if err := p.feed(); err != nil {
			return err
		}
	}
	return nil
}

// RunConcurrent dequeues decoder buffers on one goroutine and hands them to
// a second goroutine that owns the channel. Events cross over a Go channel,
// so the order of decoder output is kept.
func (p *Pipeline) RunConcurrent(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan event, p.opts.decoderSlots)

	g.Go(func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := p.pull()
			if err != nil {
				return err
			}
			if ev.kind == eventNone {
				continue
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
			if ev.kind == eventEndOfStream {
				close(events)
				return nil
			}
		}
	})

	g.Go(func() error {
		for !p.ch.Finished() {
			if err := p.feed(); err != nil {
				return err
			}
			if p.ch.Finished() {
				break
			}

			// Pending work must keep being fed, so only block when idle.
			if p.ch.Queued() > 0 || p.ch.OverflowSamples() > 0 {
				select {
				case ev, ok := <-events:
					if ok {
						if err := p.apply(ev); err != nil {
							return err
						}
					} else {
						events = nil
					}
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				continue
			}

			select {
			case ev, ok := <-events:
				if !ok {
					if !p.ch.Finished() {
						return ErrDecoderStopped
					}
					return nil
				}
				if err := p.apply(ev); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

type eventKind int

const (
	eventNone eventKind = iota
	eventFormat
	eventBuffer
	eventEndOfStream
)

type event struct {
	kind eventKind
	info codec.BufferInfo
}

// pull asks the decoder for one buffer.
func (p *Pipeline) pull() (event, error) {
	info, err := p.dec.DequeueOutputBuffer(p.opts.timeout)
	switch {
	case errors.Is(err, codec.ErrOutputFormatChanged):
		return event{kind: eventFormat}, nil
	case errors.Is(err, codec.ErrTryAgainLater):
		return event{kind: eventNone}, nil
	case err != nil:
		return event{}, fmt.Errorf("dequeue decoder output: %w", err)
	case info.EOS():
		return event{kind: eventEndOfStream, info: info}, nil
	default:
		return event{kind: eventBuffer, info: info}, nil
	}
}

// apply hands a decoder event to the channel. It must run on the goroutine
// that owns the channel.
func (p *Pipeline) apply(ev event) error {
	switch ev.kind {
	case eventNone:
		return nil
	case eventFormat:
		return p.setFormat()
	}

	// Decoders are allowed to skip the format change notification.
	if !p.formatSet {
		if err := p.setFormat(); err != nil {
			return err
		}
	}

	index := ev.info.Index
	if ev.kind == eventEndOfStream {
		index = codec.EndOfStream
		p.decDone = true
	}
	return p.ch.EnqueueDecoderOutput(index, ev.info.PtsUs)
}

func (p *Pipeline) setFormat() error {
	f := p.dec.OutputFormat()
	if err := p.ch.SetActualFormat(f); err != nil {
		return err
	}
	if !p.formatSet {
		p.opts.log.Info().
			Stringer("input", f).
			Stringer("output", p.enc.Format()).
			Msg("transcoding")
	}
	p.formatSet = true
	return nil
}

// feed pushes everything the encoder will currently accept.
func (p *Pipeline) feed() error {
	if !p.formatSet {
		return nil
	}
	for {
		ok, err := p.ch.FeedEncoder(p.opts.timeout)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
