// SPDX-License-Identifier: EPL-2.0

// Package pcmbridge moves 16-bit PCM from a decoder to an encoder that
// expects a different channel layout or buffer size, keeping presentation
// timestamps exact across the repacking.
//
// # Supported Formats
//
// Inputs are decoded by the formats subpackages:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// Outputs are written by sinks:
//   - WAV via wav.Writer
//   - G.711 µ-law via mulaw.Writer
//   - Opus packets via opus.Writer
//
// # Quick Start
//
// The simplest way to convert a file is Transcode:
//
//	file, _ := os.Open("speech.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	out, _ := os.Create("speech.ulaw")
//	sink := mulaw.NewWriter(out)
//
//	// mono, same rate as the input
//	stats, err := pcmbridge.Transcode(ctx, src, sink, audio.Format{Channels: 1})
//
// # Codec Engines
//
// Transcode wraps the source in a codec.SourceDecoder and the sink in a
// codec.SinkEncoder. Both hand out fixed buffers by index, like hardware
// codecs do. Any codec.DecoderEngine and codec.EncoderEngine pair can be
// driven with a Pipeline:
//
//	p, _ := pcmbridge.NewPipeline(dec, enc)
//	err := p.Run(ctx)
//
// RunConcurrent dequeues decoder output on its own goroutine. The
// transcode.Channel in between is still only touched by one goroutine.
//
// # Limits
//
// Only mono and stereo are handled, and the decoder and encoder must run at
// the same sample rate. Either mismatch is reported before any sample is
// processed.
//
// See the individual subpackages for more detailed documentation.
package pcmbridge
