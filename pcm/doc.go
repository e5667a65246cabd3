// SPDX-License-Identifier: EPL-2.0

// Package pcm provides the sample-level plumbing shared by the transcoding
// bridge: a position/limit View over little-endian 16-bit PCM bytes and the
// timestamp arithmetic used to place samples on the presentation clock.
//
// # Views
//
// Codec engines hand out raw byte buffers. A View lets the bridge read and
// write them sample by sample without copying:
//
//	in := pcm.Wrap(decoderBytes)   // position 0, limit = len/2
//	out := pcm.Wrap(encoderBytes)
//	for in.HasRemaining() && out.HasRemaining() {
//	    out.Put(in.Get())
//	}
//	size := len(out.Written())
//
// # Timestamps
//
// DurationUs converts a sample count into microseconds:
//
//	frames := samples / channels
//	durationUs := frames * 1_000_000 / sampleRate
package pcm
