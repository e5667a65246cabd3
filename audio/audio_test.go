// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/pcmbridge/internal/audiotest"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "mp3"}
	registry.Register("MP3", decoder)

	got, ok := registry.Get("mp3")
	if !ok || got != decoder {
		t.Error("Registry.Get(\"mp3\") did not find decoder registered as \"MP3\"")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"wav", "aiff", "ogg", "mp3"} {
		registry.Register(f, &mockDecoder{name: f})
	}

	want := []string{"aiff", "mp3", "ogg", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	oggDecoder := &mockDecoder{name: "ogg"}
	registry.Register("wav", wavDecoder)
	registry.Register("ogg", oggDecoder)

	tests := []struct {
		path    string
		want    Decoder
		wantErr bool
	}{
		{"/tmp/in.wav", wavDecoder, false},
		{"song.OGG", oggDecoder, false},
		{"track.flac", nil, true},
		{"noextension", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := registry.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ForPath(%q) error = %v, want ErrUnknownFormat", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ForPath(%q) returned wrong decoder", tt.path)
			}
		})
	}
}

func TestRegistry_ForPathNamesFormat(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().ForPath("x.flac")

	var unknown *UnknownFormatError
	if !errors.As(err, &unknown) {
		t.Fatalf("ForPath() error = %T, want *UnknownFormatError", err)
	}
	if unknown.Format != "flac" {
		t.Errorf("UnknownFormatError.Format = %q, want \"flac\"", unknown.Format)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			done <- true
		}()
	}

	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	f := FormatOf(audiotest.NewSilentSource(22050, 1, 10))
	if f != (Format{SampleRate: 22050, Channels: 1}) {
		t.Errorf("FormatOf() = %+v", f)
	}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  Format
		wantErr bool
	}{
		{Format{SampleRate: 48000, Channels: 2}, false},
		{Format{SampleRate: 8000, Channels: 1}, false},
		{Format{SampleRate: 0, Channels: 1}, true},
		{Format{SampleRate: 44100, Channels: 0}, true},
		{Format{SampleRate: -1, Channels: -1}, true},
	}

	for _, tt := range tests {
		err := tt.format.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%+v.Validate() error = %v, want ErrInvalidFormat", tt.format, err)
		}
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{Format{SampleRate: 48000, Channels: 2}, "48000Hz stereo"},
		{Format{SampleRate: 8000, Channels: 1}, "8000Hz mono"},
		{Format{SampleRate: 48000, Channels: 6}, "48000Hz 6ch"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat_FrameBytes(t *testing.T) {
	t.Parallel()

	if got := (Format{SampleRate: 8000, Channels: 2}).FrameBytes(); got != 4 {
		t.Errorf("FrameBytes() = %d, want 4", got)
	}
}

// BenchmarkRegistry_Get benchmarks retrieving decoders
func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
