// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments of the bridge.
//
// Instruments are created from a [metric.MeterProvider]. Library code
// defaults to [otel.GetMeterProvider], so nothing is exported unless the
// program installs a provider; tests should pass their own provider to
// [NewMetrics] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all bridge metrics.
const meterName = "github.com/ik5/pcmbridge"

// Metric names.
const (
	BuffersEnqueued     = "pcmbridge.buffers.enqueued"
	SamplesDecoded      = "pcmbridge.samples.decoded"
	SamplesEncoded      = "pcmbridge.samples.encoded"
	OverflowSpills      = "pcmbridge.overflow.spills"
	EncoderBackpressure = "pcmbridge.encoder.backpressure"
)

// Metrics holds the counters recorded by the transcoding channel. All fields
// are safe for concurrent use.
type Metrics struct {
	// BuffersEnqueued counts decoder buffers accepted, end of stream included.
	BuffersEnqueued metric.Int64Counter

	// SamplesDecoded counts input samples taken from decoder buffers.
	SamplesDecoded metric.Int64Counter

	// SamplesEncoded counts remixed samples submitted to the encoder. Use
	// with attribute.String("remix", ...).
	SamplesEncoded metric.Int64Counter

	// OverflowSpills counts decoder buffers that did not fit one encoder slot.
	OverflowSpills metric.Int64Counter

	// EncoderBackpressure counts feed attempts that found no free slot.
	EncoderBackpressure metric.Int64Counter
}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BuffersEnqueued, err = m.Int64Counter(BuffersEnqueued,
		metric.WithDescription("Decoder output buffers queued for remixing."),
	); err != nil {
		return nil, err
	}
	if met.SamplesDecoded, err = m.Int64Counter(SamplesDecoded,
		metric.WithDescription("Samples read from decoder output buffers."),
	); err != nil {
		return nil, err
	}
	if met.SamplesEncoded, err = m.Int64Counter(SamplesEncoded,
		metric.WithDescription("Remixed samples submitted to the encoder."),
	); err != nil {
		return nil, err
	}
	if met.OverflowSpills, err = m.Int64Counter(OverflowSpills,
		metric.WithDescription("Decoder buffers whose remixed output overflowed one encoder slot."),
	); err != nil {
		return nil, err
	}
	if met.EncoderBackpressure, err = m.Int64Counter(EncoderBackpressure,
		metric.WithDescription("Feed attempts that found no free encoder slot."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] built from the global
// provider on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordEncoded adds n submitted samples for the given remix strategy.
func (m *Metrics) RecordEncoded(ctx context.Context, remix string, n int) {
	m.SamplesEncoded.Add(ctx, int64(n),
		metric.WithAttributes(attribute.String("remix", remix)),
	)
}
