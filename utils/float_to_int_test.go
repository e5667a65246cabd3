// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "clamp above", input: 3.5, want: math.MaxInt16},
		{name: "clamp below", input: -2, want: -math.MaxInt16},
		{name: "tiny rounds to zero", input: 1e-6, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32sToInt16s(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 2)
	n := Float32sToInt16s(dst, []float32{1, -1, 0.5})

	if n != 2 {
		t.Fatalf("Float32sToInt16s() = %d, want 2", n)
	}
	if dst[0] != math.MaxInt16 || dst[1] != -math.MaxInt16 {
		t.Errorf("dst = %v", dst)
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		_ = Float32ToInt16(0.123)
	}
}
