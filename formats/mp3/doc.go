// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// go-mp3 already produces 16-bit little-endian PCM, so samples pass through
// without any scaling.
//
//	source, err := mp3.Decoder{}.Decode(file)
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: signed 16-bit
//   - Channels: always 2; go-mp3 duplicates mono streams
//   - Sample rate: taken from the stream
//
// A mono target is reached by the transcoding channel's downmix, not here.
//
// # Limitations
//
// MP3 writing is not supported.
package mp3
