// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of [Default] and validates the
// result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found in c at once.
func (c Config) Validate() error {
	var errs []error

	if !c.Codec.IsValid() {
		errs = append(errs, fmt.Errorf("codec: unknown value %q (want wav, mulaw or opus)", c.Codec))
	}
	if c.Channels < 0 || c.Channels > 2 {
		errs = append(errs, fmt.Errorf("channels: %d out of range (0, 1 or 2)", c.Channels))
	}
	if c.ChunkSamples <= 0 {
		errs = append(errs, fmt.Errorf("chunk_samples: must be positive, got %d", c.ChunkSamples))
	}
	if c.DecoderSlots <= 0 {
		errs = append(errs, fmt.Errorf("decoder_slots: must be positive, got %d", c.DecoderSlots))
	}
	if c.EncoderSlots <= 0 {
		errs = append(errs, fmt.Errorf("encoder_slots: must be positive, got %d", c.EncoderSlots))
	}
	if c.EncoderBufferSamples <= 0 {
		errs = append(errs, fmt.Errorf("encoder_buffer_samples: must be positive, got %d", c.EncoderBufferSamples))
	}
	if c.FeedTimeout < 0 {
		errs = append(errs, fmt.Errorf("feed_timeout: must not be negative, got %s", c.FeedTimeout))
	}
	if c.LogLevel != "" && !c.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level: unknown value %q", c.LogLevel))
	}

	if c.Codec == CodecOpus {
		switch c.Opus.FrameMs {
		case 5, 10, 20, 40, 60:
		default:
			errs = append(errs, fmt.Errorf("opus.frame_ms: %d is not an opus frame size", c.Opus.FrameMs))
		}
		switch c.Opus.Application {
		case "audio", "voip", "lowdelay":
		default:
			errs = append(errs, fmt.Errorf("opus.application: unknown value %q", c.Opus.Application))
		}
		if c.Opus.Bitrate < 0 {
			errs = append(errs, fmt.Errorf("opus.bitrate: must not be negative, got %d", c.Opus.Bitrate))
		}
	}

	return errors.Join(errs...)
}
