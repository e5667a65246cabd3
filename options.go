// SPDX-License-Identifier: EPL-2.0

package pcmbridge

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/pcmbridge/codec"
)

// DefaultFeedTimeout bounds each wait for a decoder or encoder buffer.
const DefaultFeedTimeout = 10 * time.Millisecond

type options struct {
	log            zerolog.Logger
	meterProvider  metric.MeterProvider
	timeout        time.Duration
	concurrent     bool
	chunkSamples   int
	decoderSlots   int
	encoderSlots   int
	encoderSamples int
}

func newOptions(opts []Option) options {
	o := options{
		log:            zerolog.Nop(),
		timeout:        DefaultFeedTimeout,
		decoderSlots:   codec.DefaultSlots,
		encoderSlots:   codec.DefaultSlots,
		encoderSamples: codec.DefaultBufferSamples,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Pipeline or Transcode.
type Option func(*options)

// WithLogger sets the logger handed to every component.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMeterProvider records channel metrics on mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTimeout sets how long one step waits for a free buffer. Zero polls.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithConcurrent makes Transcode run the decoder on its own goroutine.
func WithConcurrent(on bool) Option {
	return func(o *options) { o.concurrent = on }
}

// WithChunkSamples sets how many samples Transcode reads from the source
// per decoder buffer. Zero uses the source's BufSize.
func WithChunkSamples(n int) Option {
	return func(o *options) { o.chunkSamples = n }
}

// WithDecoderSlots sets how many decoder buffers can be in flight.
func WithDecoderSlots(n int) Option {
	return func(o *options) { o.decoderSlots = n }
}

func WithEncoderSlots(n int) Option {
	return func(o *options) { o.encoderSlots = n }
}

// WithEncoderBufferSamples sets the capacity of one encoder input buffer.
func WithEncoderBufferSamples(n int) Option {
	return func(o *options) { o.encoderSamples = n }
}
