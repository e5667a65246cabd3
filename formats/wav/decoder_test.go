// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// Helper function to create a minimal valid WAV file
func createWAVFile(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := uint16(numChannels) * uint16(bits/8)
	dataSize := uint32(len(samples) * 2)
	riffSize := 36 + dataSize

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM format
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func readAll(t *testing.T, src interface {
	ReadSamples([]int16) (int, error)
}, bufSize int) []int16 {
	t.Helper()

	var out []int16
	buf := make([]int16, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 0}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got := readAll(t, src, 4)
	if !slices.Equal(got, samples) {
		t.Errorf("samples = %v, want %v", got, samples)
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400, 500, 600}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(44100, 2, 16, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("format = %dHz/%dch, want 44100Hz/2ch", src.SampleRate(), src.Channels())
	}

	if got := readAll(t, src, 64); !slices.Equal(got, samples) {
		t.Errorf("samples = %v, want %v", got, samples)
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	samples := []int16{1, -1, 32767, -32768}
	r := io.MultiReader(bytes.NewReader(createWAVFile(16000, 1, 16, samples)))

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src, 3); !slices.Equal(got, samples) {
		t.Errorf("samples = %v, want %v", got, samples)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"garbage":   []byte("NOT A WAV FILE DATA"),
		"truncated": []byte("RIFF\x00"),
		"empty":     {},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestDecoder_Non16BitPCM(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 8, nil)

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrOnlyPCM16bitSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
}

func TestDecoder_NonPCMFormat(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, []int16{1, 2})
	binary.LittleEndian.PutUint16(data[20:22], 3) // IEEE float

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrOnlyPCM16bitSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, []int16{5})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

type failingWavReader struct{}

func (failingWavReader) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: 1, SampleRate: 8000}
}

func (failingWavReader) PCMBuffer(*goaudio.IntBuffer) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := &source{dec: failingWavReader{}, sampleRate: 8000, channels: 1}

	_, err := src.ReadSamples(make([]int16, 8))
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() error = %v, want wrapped read failure", err)
	}
	if src.BufSize() != 8 {
		t.Errorf("BufSize() = %d, want 8 after first read", src.BufSize())
	}
}


func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 48000)
	data := createWAVFile(48000, 1, 16, samples)
	buf := make([]int16, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(data))
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
