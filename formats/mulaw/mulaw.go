// SPDX-License-Identifier: EPL-2.0

package mulaw

const (
	bias = 0x84
	clip = 32635
)

// Encode compresses one linear 16-bit sample to a G.711 µ-law byte.
func Encode(sample int16) byte {
	s := int32(sample)

	var sign byte
	if s < 0 {
		sign = 0x80
		s = -s
	}
	if s > clip {
		s = clip
	}
	s += bias

	exponent := byte(7)
	for mask := int32(0x4000); s&mask == 0 && exponent > 0; mask >>= 1 {
		exponent--
	}
	mantissa := byte(s>>(exponent+3)) & 0x0F

	return ^(sign | exponent<<4 | mantissa)
}

// Decode expands a µ-law byte back to a linear sample.
func Decode(b byte) int16 {
	b = ^b
	exponent := (b >> 4) & 0x07
	mantissa := int32(b & 0x0F)

	s := ((mantissa << 3) + bias) << exponent
	s -= bias
	if b&0x80 != 0 {
		return int16(-s)
	}
	return int16(s)
}

// EncodeBytes converts little-endian 16-bit PCM into dst, one byte per
// sample, and returns the filled slice. dst is reused when large enough.
func EncodeBytes(dst, pcm []byte) []byte {
	n := len(pcm) / 2
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i := range n {
		dst[i] = Encode(int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8))
	}
	return dst
}
