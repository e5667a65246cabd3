// SPDX-License-Identifier: EPL-2.0

package pcmbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/codec"
	"github.com/ik5/pcmbridge/pcm"
	"github.com/ik5/pcmbridge/transcode"
)

// Stats summarises a finished Transcode call.
type Stats struct {
	transcode.Stats

	Input  audio.Format
	Output audio.Format

	// DurationUs is the length of the output stream in microseconds.
	DurationUs int64
}

// Transcode reads src to the end, converts it to the out channel layout and
// writes the result to sink. Zero fields of out are taken from src. The
// sample rate of src must equal out.SampleRate.
//
// src and sink are closed before Transcode returns.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(in)
//	sink := mulaw.NewWriter(out)
//	stats, err := pcmbridge.Transcode(ctx, src, sink, audio.Format{Channels: 1})
func Transcode(ctx context.Context, src audio.Source, sink codec.Sink, out audio.Format, opts ...Option) (stats Stats, err error) {
	o := newOptions(opts)

	in := audio.FormatOf(src)
	if out.SampleRate == 0 {
		out.SampleRate = in.SampleRate
	}
	if out.Channels == 0 {
		out.Channels = in.Channels
	}
	stats.Input = in
	stats.Output = out

	dec, err := codec.NewSourceDecoder(src,
		codec.WithSlots(o.decoderSlots),
		codec.WithBufferSamples(o.chunkSamples),
		codec.WithLogger(o.log),
	)
	if err != nil {
		return stats, errors.Join(err, src.Close(), sink.Close())
	}
	defer func() {
		err = errors.Join(err, dec.Close())
	}()

	enc, err := codec.NewSinkEncoder(sink, out,
		codec.WithSlots(o.encoderSlots),
		codec.WithBufferSamples(o.encoderSamples),
		codec.WithLogger(o.log),
	)
	if err != nil {
		return stats, errors.Join(err, sink.Close())
	}
	defer func() {
		err = errors.Join(err, enc.Close())
	}()

	p, err := NewPipeline(dec, enc, opts...)
	if err != nil {
		return stats, err
	}

	if o.concurrent {
		err = p.RunConcurrent(ctx)
	} else {
		err = p.Run(ctx)
	}

	stats.Stats = p.Channel().Stats()
	stats.DurationUs = pcm.DurationUs(int(stats.SamplesOut), out.SampleRate, out.Channels)
	if err != nil {
		return stats, fmt.Errorf("transcode %s to %s: %w", in, out, err)
	}

	o.log.Debug().
		Int64("buffers", stats.BuffersIn).
		Int64("samples_in", stats.SamplesIn).
		Int64("samples_out", stats.SamplesOut).
		Int64("spills", stats.Spills).
		Msg("transcode done")
	return stats, nil
}
