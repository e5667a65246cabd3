// SPDX-License-Identifier: EPL-2.0

// Package config holds the YAML configuration of the pcmbridge command.
package config

import (
	"time"

	"github.com/ik5/pcmbridge/codec"
)

// Codec selects the output encoder.
type Codec string

const (
	CodecWAV   Codec = "wav"
	CodecMulaw Codec = "mulaw"
	CodecOpus  Codec = "opus"
)

// IsValid reports whether c is a known output codec.
func (c Codec) IsValid() bool {
	switch c {
	case CodecWAV, CodecMulaw, CodecOpus:
		return true
	}
	return false
}

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration. Fields missing from the YAML keep the
// values from [Default].
type Config struct {
	// Input is the file to decode. The decoder is picked by extension.
	Input string `yaml:"input"`

	// Output is the file to write. "-" writes to stdout.
	Output string `yaml:"output"`

	Codec Codec `yaml:"codec"`

	// Channels is the output channel count, 1 or 2. Zero keeps the input
	// channel count.
	Channels int `yaml:"channels"`

	// ChunkSamples is the decoder output buffer size in samples.
	ChunkSamples int `yaml:"chunk_samples"`

	DecoderSlots int `yaml:"decoder_slots"`
	EncoderSlots int `yaml:"encoder_slots"`

	// EncoderBufferSamples is the capacity of one encoder input buffer.
	EncoderBufferSamples int `yaml:"encoder_buffer_samples"`

	// FeedTimeout bounds each wait for a free encoder input buffer.
	FeedTimeout time.Duration `yaml:"feed_timeout"`

	// Concurrent runs the decoder and encoder sides on separate goroutines.
	Concurrent bool `yaml:"concurrent"`

	LogLevel LogLevel `yaml:"log_level"`

	Opus OpusConfig `yaml:"opus"`
}

// OpusConfig tunes the opus encoder. Ignored for other codecs.
type OpusConfig struct {
	Bitrate     int    `yaml:"bitrate"`
	FrameMs     int    `yaml:"frame_ms"`
	Application string `yaml:"application"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output:               "-",
		Codec:                CodecWAV,
		ChunkSamples:         codec.DefaultBufferSamples,
		DecoderSlots:         codec.DefaultSlots,
		EncoderSlots:         codec.DefaultSlots,
		EncoderBufferSamples: codec.DefaultBufferSamples,
		FeedTimeout:          10 * time.Millisecond,
		LogLevel:             LogInfo,
		Opus: OpusConfig{
			FrameMs:     20,
			Application: "audio",
		},
	}
}
