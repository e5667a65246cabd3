// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/pcmbridge/internal/observe"
)

type options struct {
	log     zerolog.Logger
	metrics *observe.Metrics
}

// Option configures a Channel.
type Option func(*options) error

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) error {
		o.log = l
		return nil
	}
}

// WithMeterProvider records the channel counters on mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) error {
		m, err := observe.NewMetrics(mp)
		if err != nil {
			return err
		}
		o.metrics = m
		return nil
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	if o.metrics == nil {
		o.metrics = observe.DefaultMetrics()
	}
	return o, nil
}
