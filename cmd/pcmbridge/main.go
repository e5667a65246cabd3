// SPDX-License-Identifier: EPL-2.0

// Command pcmbridge converts an audio file to mono or stereo 16-bit PCM and
// writes it as WAV, G.711 µ-law or Opus packets.
//
// Usage:
//
//	pcmbridge [-config pcmbridge.yaml] [-channels 1] [-codec mulaw] input.mp3 output.ulaw
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ik5/pcmbridge"
	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/codec"
	"github.com/ik5/pcmbridge/formats/aiff"
	"github.com/ik5/pcmbridge/formats/mp3"
	"github.com/ik5/pcmbridge/formats/mulaw"
	"github.com/ik5/pcmbridge/formats/opus"
	"github.com/ik5/pcmbridge/formats/vorbis"
	"github.com/ik5/pcmbridge/formats/wav"
	"github.com/ik5/pcmbridge/internal/config"
	"github.com/ik5/pcmbridge/internal/logger"
	"github.com/ik5/pcmbridge/internal/observe"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("pcmbridge", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	channels := fs.Int("channels", 0, "output channels, 1 or 2 (0 keeps the input layout)")
	codecName := fs.String("codec", "", "output codec: wav, mulaw or opus")
	concurrent := fs.Bool("concurrent", false, "decode on a separate goroutine")
	pretty := fs.Bool("pretty", false, "human readable logs")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: pcmbridge [flags] <input.{wav|mp3|ogg|aiff}> <output|->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcmbridge: %v\n", err)
		return 1
	}
	applyFlags(fs, &cfg, fs.Args(), *channels, *codecName, *concurrent)
	if cfg.Input == "" || cfg.Output == "" {
		fs.Usage()
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "pcmbridge: %v\n", err)
		return 1
	}

	newLogger := logger.New
	if *pretty {
		newLogger = logger.NewConsole
	}
	log, err := newLogger(logger.LevelFromEnv(string(cfg.LogLevel)), os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcmbridge: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := convert(ctx, cfg, log); err != nil {
		log.Error().Err(err).Str("input", cfg.Input).Msg("transcode failed")
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyFlags overrides cfg with the flags that were given explicitly and
// with the positional input and output paths.
func applyFlags(fs *flag.FlagSet, cfg *config.Config, args []string, channels int, codecName string, concurrent bool) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "channels":
			cfg.Channels = channels
		case "codec":
			cfg.Codec = config.Codec(codecName)
		case "concurrent":
			cfg.Concurrent = concurrent
		}
	})
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

func convert(ctx context.Context, cfg config.Config, log zerolog.Logger) (err error) {
	dec, err := newRegistry().ForPath(cfg.Input)
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.Input, err)
	}

	out := audio.Format{SampleRate: src.SampleRate(), Channels: cfg.Channels}
	if out.Channels == 0 {
		out.Channels = src.Channels()
	}

	sink, err := openSink(cfg, out)
	if err != nil {
		return errors.Join(err, src.Close())
	}

	metrics, err := observe.NewProvider("pcmbridge", version)
	if err != nil {
		return errors.Join(err, src.Close(), sink.Close())
	}
	defer func() {
		err = errors.Join(err, metrics.Shutdown(context.Background()))
	}()

	stats, err := pcmbridge.Transcode(ctx, src, sink, out,
		pcmbridge.WithLogger(log),
		pcmbridge.WithMeterProvider(metrics),
		pcmbridge.WithConcurrent(cfg.Concurrent),
		pcmbridge.WithTimeout(cfg.FeedTimeout),
		pcmbridge.WithChunkSamples(cfg.ChunkSamples),
		pcmbridge.WithDecoderSlots(cfg.DecoderSlots),
		pcmbridge.WithEncoderSlots(cfg.EncoderSlots),
		pcmbridge.WithEncoderBufferSamples(cfg.EncoderBufferSamples),
	)
	if err != nil {
		return err
	}

	totals, err := metrics.Totals(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", cfg.Input).
		Str("output", cfg.Output).
		Str("codec", string(cfg.Codec)).
		Stringer("from", stats.Input).
		Stringer("to", stats.Output).
		Int64("samples_in", stats.SamplesIn).
		Int64("samples_out", stats.SamplesOut).
		Int64("duration_ms", stats.DurationUs/1000).
		Int64("spills", totals[observe.OverflowSpills]).
		Int64("backpressure", totals[observe.EncoderBackpressure]).
		Msg("done")
	return nil
}

// openSink creates the output file and the encoder writing to it.
func openSink(cfg config.Config, out audio.Format) (codec.Sink, error) {
	if cfg.Codec == config.CodecWAV {
		if cfg.Output == "-" {
			return nil, errors.New("wav output needs a seekable file, not stdout")
		}
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		w, err := wav.NewWriter(f, out)
		if err != nil {
			return nil, errors.Join(err, f.Close())
		}
		return &fileSink{Sink: w, f: f}, nil
	}

	var w io.Writer = nopCloser{os.Stdout}
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		w = f
	}

	switch cfg.Codec {
	case config.CodecMulaw:
		return mulaw.NewWriter(w), nil
	case config.CodecOpus:
		s, err := opus.NewWriter(w, out, opus.Options{
			Bitrate:     cfg.Opus.Bitrate,
			FrameMs:     cfg.Opus.FrameMs,
			Application: cfg.Opus.Application,
		})
		if err != nil {
			if c, ok := w.(io.Closer); ok {
				err = errors.Join(err, c.Close())
			}
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown codec %q", cfg.Codec)
}

// fileSink closes the file behind a wav.Writer, which only finalizes the
// header.
type fileSink struct {
	codec.Sink
	f *os.File
}

func (s *fileSink) Close() error {
	return errors.Join(s.Sink.Close(), s.f.Close())
}

// nopCloser keeps stdout open when a sink closes its writer.
type nopCloser struct {
	io.Writer
}
