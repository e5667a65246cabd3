// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/formats/wav"
	"github.com/ik5/pcmbridge/internal/config"
	"github.com/ik5/pcmbridge/pcm"
)

func writeWAV(t *testing.T, path string, f audio.Format, samples []int16) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	w, err := wav.NewWriter(file, f)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WritePCM(pcm.Int16sToBytes(nil, samples), 0); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestApplyFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	channels := fs.Int("channels", 0, "")
	codecName := fs.String("codec", "", "")
	concurrent := fs.Bool("concurrent", false, "")
	if err := fs.Parse([]string{"-channels", "1", "in.mp3", "out.ulaw"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Codec = config.CodecMulaw
	applyFlags(fs, &cfg, fs.Args(), *channels, *codecName, *concurrent)

	if cfg.Channels != 1 {
		t.Errorf("Channels = %d, want 1", cfg.Channels)
	}
	// -codec was not given, so the configured codec stays.
	if cfg.Codec != config.CodecMulaw {
		t.Errorf("Codec = %q, want mulaw", cfg.Codec)
	}
	if cfg.Input != "in.mp3" || cfg.Output != "out.ulaw" {
		t.Errorf("paths = %q, %q", cfg.Input, cfg.Output)
	}
}

func TestNewRegistry(t *testing.T) {
	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav"}
	if got := newRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRun_WavToMulaw(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.ulaw")

	samples := make([]int16, 2*400)
	for i := range samples {
		samples[i] = int16(i * 10)
	}
	writeWAV(t, in, audio.Format{SampleRate: 8000, Channels: 2}, samples)

	if code := run([]string{"-codec", "mulaw", "-channels", "1", in, out}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 400 {
		t.Errorf("output size = %d, want 400 (one byte per mono sample)", info.Size())
	}
}

func TestRun_WavUpmix(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	writeWAV(t, in, audio.Format{SampleRate: 16000, Channels: 1}, []int16{1, 2, 3, 4})

	if code := run([]string{"-channels", "2", "-concurrent", in, out}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := audio.FormatOf(src); got != (audio.Format{SampleRate: 16000, Channels: 2}) {
		t.Errorf("output format = %s", got)
	}

	buf := make([]int16, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if !slices.Equal(buf[:n], []int16{1, 1, 2, 2, 3, 3, 4, 4}) {
		t.Errorf("output samples = %v", buf[:n])
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeWAV(t, in, audio.Format{SampleRate: 8000, Channels: 1}, []int16{1, 2})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, 2},
		{"bad flag", []string{"-bogus"}, 2},
		{"unknown extension", []string{filepath.Join(dir, "in.flac"), filepath.Join(dir, "o.wav")}, 1},
		{"missing input", []string{filepath.Join(dir, "nope.wav"), filepath.Join(dir, "o.wav")}, 1},
		{"wav to stdout", []string{in, "-"}, 1},
		{"bad channels", []string{"-channels", "5", in, filepath.Join(dir, "o.wav")}, 1},
		{"missing config", []string{"-config", filepath.Join(dir, "none.yaml"), in, filepath.Join(dir, "o.wav")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
