// SPDX-License-Identifier: EPL-2.0

// Package remix converts 16-bit PCM between mono and stereo layouts.
//
// Three strategies are provided:
//   - Passthrough: input and output layouts match, frames are copied verbatim
//   - Upmix: mono to stereo, every sample is written to both channels
//   - Downmix: stereo to mono, every L/R pair is averaged
//
// Select picks the strategy for a pair of channel counts:
//
//	r, err := remix.Select(decoded.Channels, encoded.Channels)
//	if err != nil {
//	    return err // remix.ErrUnsupportedChannelCount
//	}
//	r.Remix(in, out)
//
// Remixers work on pcm.View cursors and only move whole frames. When out
// fills up before in is exhausted, in keeps its position so the rest can be
// remixed elsewhere.
//
// # Rounding
//
// Downmix sums in int32 and rounds half away from zero, so (-3 + 0)/2 is -2
// and (3 + 0)/2 is 2. Two full-scale samples of the same sign average to
// themselves without clipping.
package remix
