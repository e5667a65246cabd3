// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a normalized sample in [-1, 1] to 16-bit PCM. Values
// outside the range are clamped, and the result is rounded to nearest.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for both signs so the scale stays symmetric
	return int16(math.Round(float64(x) * 32767.0))
}

// Float32sToInt16s converts src into dst and returns the number of samples
// written, which is the shorter of the two lengths.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
