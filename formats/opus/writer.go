// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/pcm"
	libopus "gopkg.in/hraban/opus.v2"
)

// maxPacketBytes is the largest packet libopus will ever produce.
const maxPacketBytes = 4000

// Options tune the encoder. The zero value picks 20 ms frames, the audio
// application and libopus' default bitrate.
type Options struct {
	// Bitrate in bits per second; 0 keeps the libopus default.
	Bitrate int
	// FrameMs is the packet duration: 5, 10, 20, 40 or 60.
	FrameMs int
	// Application is "audio", "voip" or "lowdelay".
	Application string
}

func (o Options) withDefaults() Options {
	if o.FrameMs == 0 {
		o.FrameMs = 20
	}
	if o.Application == "" {
		o.Application = "audio"
	}
	return o
}

func application(name string) (libopus.Application, error) {
	switch name {
	case "audio":
		return libopus.AppAudio, nil
	case "voip":
		return libopus.AppVoIP, nil
	case "lowdelay":
		return libopus.AppRestrictedLowDelay, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownApplication, name)
}

// Writer is a PCM sink that encodes to Opus and writes each packet with a
// small header: 4-byte big-endian payload length, 8-byte big-endian
// presentation time in microseconds, then the payload.
type Writer struct {
	w      io.Writer
	enc    *libopus.Encoder
	format audio.Format

	frameSamples int // interleaved samples per packet
	frameUs      int64

	pending    []int16
	pendingPts int64
	packet     []byte
	header     [HeaderSize]byte

	packets int
	closed  bool
}

// NewWriter returns a Writer encoding f to Opus packets on w.
func NewWriter(w io.Writer, f audio.Format, opts Options) (*Writer, error) {
	opts = opts.withDefaults()

	switch f.SampleRate {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, f.Channels)
	}
	if !slices.Contains([]int{5, 10, 20, 40, 60}, opts.FrameMs) {
		return nil, fmt.Errorf("%w: %d ms", ErrInvalidFrameDuration, opts.FrameMs)
	}

	app, err := application(opts.Application)
	if err != nil {
		return nil, err
	}

	enc, err := libopus.NewEncoder(f.SampleRate, f.Channels, app)
	if err != nil {
		return nil, fmt.Errorf("creating opus encoder: %w", err)
	}
	if opts.Bitrate > 0 {
		if err := enc.SetBitrate(opts.Bitrate); err != nil {
			return nil, fmt.Errorf("setting opus bitrate %d: %w", opts.Bitrate, err)
		}
	}

	frameSamples := f.SampleRate * opts.FrameMs / 1000 * f.Channels

	return &Writer{
		w:            w,
		enc:          enc,
		format:       f,
		frameSamples: frameSamples,
		frameUs:      int64(opts.FrameMs) * 1000,
		pending:      make([]int16, 0, frameSamples),
		packet:       make([]byte, maxPacketBytes),
	}, nil
}

// WritePCM buffers little-endian 16-bit samples and emits a packet for
// every complete frame. ptsUs is the time of the first sample in pcm.
func (w *Writer) WritePCM(data []byte, ptsUs int64) error {
	if w.closed {
		return ErrWriterClosed
	}

	if len(w.pending) == 0 {
		w.pendingPts = ptsUs
	}

	for i := 0; i+1 < len(data); i += pcm.BytesPerSample {
		w.pending = append(w.pending, int16(binary.LittleEndian.Uint16(data[i:])))
		if len(w.pending) == w.frameSamples {
			if err := w.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) flush() error {
	n, err := w.enc.Encode(w.pending, w.packet)
	if err != nil {
		return fmt.Errorf("opus encode: %w", err)
	}

	binary.BigEndian.PutUint32(w.header[0:4], uint32(n))
	binary.BigEndian.PutUint64(w.header[4:12], uint64(w.pendingPts))
	if _, err := w.w.Write(w.header[:]); err != nil {
		return fmt.Errorf("writing packet header: %w", err)
	}
	if _, err := w.w.Write(w.packet[:n]); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}

	w.packets++
	w.pending = w.pending[:0]
	w.pendingPts += w.frameUs
	return nil
}

// Packets returns the number of packets written so far.
func (w *Writer) Packets() int { return w.packets }

// FrameSamples is the number of interleaved samples that make one packet.
func (w *Writer) FrameSamples() int { return w.frameSamples }

// Close pads any partial frame with silence, writes it and closes the
// underlying writer if it is an io.Closer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if len(w.pending) > 0 {
		w.pending = append(w.pending, make([]int16, w.frameSamples-len(w.pending))...)
		if err := w.flush(); err != nil {
			return err
		}
	}

	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
