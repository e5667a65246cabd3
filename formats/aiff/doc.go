// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// Only 16-bit PCM is accepted. Samples come out of ReadSamples as signed
// 16-bit integers in host order, interleaved when the file has more than one
// channel. AIFF stores samples big-endian; the conversion happens inside
// go-audio.
//
//	source, err := aiff.Decoder{}.Decode(file)
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrOnlyPCM16bitSupported: Only 16-bit PCM is currently supported
//   - ErrUnsupportedAiffLayout: Unsupported AIFF file structure
//
// Inputs that cannot seek are read fully into memory before decoding, since
// go-audio needs to jump between chunks.
package aiff
