// SPDX-License-Identifier: EPL-2.0

// Package codec defines the index-based decoder and encoder contracts the
// transcoding channel talks to, plus software engines that satisfy them.
//
// Buffers are addressed by small integer indices. A decoder lends out an
// output buffer until it is released; an encoder lends out an input slot
// until it is queued back with a size and a presentation timestamp.
//
//	dec, _ := codec.NewSourceDecoder(src, codec.WithSlots(4))
//	enc, _ := codec.NewSinkEncoder(sink, format, codec.WithBufferSamples(2048))
//
// SourceDecoder reads chunks from an audio.Source. SinkEncoder writes
// queued PCM to a Sink such as a WAV, µ-law or Opus writer.
//
// Timeouts follow one rule everywhere: zero polls, a positive value waits
// at most that long, and ErrTryAgainLater reports that nothing was
// available.
package codec
