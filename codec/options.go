// SPDX-License-Identifier: EPL-2.0

package codec

import "github.com/rs/zerolog"

// Defaults used when no option overrides them.
const (
	DefaultSlots         = 4
	DefaultBufferSamples = 4096
)

type options struct {
	slots   int
	samples int
	log     zerolog.Logger
}

func newOptions(opts []Option) (options, error) {
	o := options{
		slots: DefaultSlots,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.slots < 1 {
		return o, ErrInvalidOption
	}
	if o.samples < 0 {
		return o, ErrInvalidOption
	}
	return o, nil
}

// Option configures a SourceDecoder or a SinkEncoder.
type Option func(*options)

// WithSlots sets how many buffers the engine cycles through.
func WithSlots(n int) Option {
	return func(o *options) { o.slots = n }
}

// WithBufferSamples sets the capacity of every buffer in samples. For a
// SourceDecoder it is the chunk read from the source per buffer.
func WithBufferSamples(n int) Option {
	return func(o *options) { o.samples = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}
