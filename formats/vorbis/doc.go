// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files. The library decodes to normalized float32; each value is scaled by
// 32767, rounded and clamped into a signed 16-bit sample.
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
//
// ReadSamples only requests whole frames, so a buffer shorter than one frame
// reads nothing.
package vorbis
