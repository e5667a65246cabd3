// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

// MicrosPerSecond converts seconds to presentation timestamp units.
const MicrosPerSecond = 1_000_000

// DurationUs returns the playback duration in microseconds of sampleCount
// interleaved samples at sampleRate with the given channel count.
//
// Partial frames are not counted. Zero or negative rate or channel count
// yields 0.
func DurationUs(sampleCount, sampleRate, channels int) int64 {
	if sampleRate <= 0 || channels <= 0 || sampleCount <= 0 {
		return 0
	}
	frames := int64(sampleCount / channels)
	return frames * MicrosPerSecond / int64(sampleRate)
}

// Int16sToBytes encodes samples as little-endian bytes into dst, growing it
// when it is too small, and returns the used portion.
func Int16sToBytes(dst []byte, samples []int16) []byte {
	need := len(samples) * BytesPerSample
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*BytesPerSample:], uint16(s))
	}
	return dst
}

// BytesToInt16s decodes little-endian bytes into dst, growing it when it is
// too small, and returns the used portion. A trailing odd byte is ignored.
func BytesToInt16s(dst []int16, b []byte) []int16 {
	n := len(b) / BytesPerSample
	if cap(dst) < n {
		dst = make([]int16, n)
	}
	dst = dst[:n]
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(b[i*BytesPerSample:]))
	}
	return dst
}
