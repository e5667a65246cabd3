// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/pcm"
	libopus "gopkg.in/hraban/opus.v2"
)

func sine(frames, channels int, rate float64) []byte {
	s := make([]int16, frames*channels)
	for i := range frames {
		v := int16(8000 * math.Sin(2*math.Pi*440*float64(i)/rate))
		for c := range channels {
			s[i*channels+c] = v
		}
	}
	return pcm.Int16sToBytes(nil, s)
}

func readPackets(t *testing.T, r io.Reader) []Packet {
	t.Helper()

	var out []Packet
	for {
		p, err := ReadPacket(r)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		out = append(out, p)
	}
}

func TestNewWriter_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  audio.Format
		opts    Options
		wantErr error
	}{
		{"bad rate", audio.Format{SampleRate: 44100, Channels: 2}, Options{}, ErrUnsupportedSampleRate},
		{"bad channels", audio.Format{SampleRate: 48000, Channels: 3}, Options{}, ErrUnsupportedChannels},
		{"bad frame", audio.Format{SampleRate: 48000, Channels: 1}, Options{FrameMs: 15}, ErrInvalidFrameDuration},
		{"bad app", audio.Format{SampleRate: 48000, Channels: 1}, Options{Application: "karaoke"}, ErrUnknownApplication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewWriter(io.Discard, tt.format, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewWriter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriter_FramesAndTimestamps(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w, err := NewWriter(&out, audio.Format{SampleRate: 48000, Channels: 2}, Options{Bitrate: 64000})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if w.FrameSamples() != 960*2 {
		t.Fatalf("FrameSamples() = %d, want 1920", w.FrameSamples())
	}

	// 50 ms in uneven pieces: two full 20 ms frames plus a 10 ms tail.
	data := sine(2400, 2, 48000)
	for _, cut := range [][2]int{{0, 1000}, {1000, 7000}, {7000, len(data)}} {
		chunk := data[cut[0]:cut[1]]
		pts := pcm.DurationUs(cut[0]/2, 48000, 2)
		if err := w.WritePCM(chunk, pts); err != nil {
			t.Fatalf("WritePCM() error = %v", err)
		}
	}
	if w.Packets() != 2 {
		t.Errorf("Packets() before Close = %d, want 2", w.Packets())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	packets := readPackets(t, &out)
	if len(packets) != 3 {
		t.Fatalf("got %d packets, want 3", len(packets))
	}
	for i, p := range packets {
		if want := int64(i) * 20000; p.PtsUs != want {
			t.Errorf("packet %d pts = %d, want %d", i, p.PtsUs, want)
		}
	}

	dec, err := libopus.NewDecoder(48000, 2)
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}
	buf := make([]int16, 5760*2)
	for i, p := range packets {
		n, err := dec.Decode(p.Payload, buf)
		if err != nil {
			t.Fatalf("decoding packet %d: %v", i, err)
		}
		if n != 960 {
			t.Errorf("packet %d decoded to %d frames, want 960", i, n)
		}
	}
}

func TestWriter_CloseWithoutData(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w, err := NewWriter(&out, audio.Format{SampleRate: 8000, Channels: 1}, Options{FrameMs: 10, Application: "voip"})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("wrote %d bytes for empty stream", out.Len())
	}
	if err := w.WritePCM([]byte{0, 0}, 0); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("WritePCM() after Close error = %v, want ErrWriterClosed", err)
	}
}

func TestReadPacket_Truncated(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"short header":  {0, 0, 0},
		"short payload": {0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2},
		"huge length":   {0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := ReadPacket(bytes.NewReader(data)); !errors.Is(err, ErrShortPacket) {
				t.Errorf("ReadPacket() error = %v, want ErrShortPacket", err)
			}
		})
	}
}
