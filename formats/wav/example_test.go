// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/pcmbridge/audio"
	"github.com/ik5/pcmbridge/formats/wav"
	"github.com/ik5/pcmbridge/pcm"
)

// Example_roundTrip writes PCM bytes through the Writer sink and reads them
// back with the Decoder.
func Example_roundTrip() {
	f, err := os.CreateTemp("", "example-*.wav")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	w, _ := wav.NewWriter(f, audio.Format{SampleRate: 8000, Channels: 1})
	_ = w.WritePCM(pcm.Int16sToBytes(nil, []int16{-1000, -500, 0, 500, 1000}), 0)
	_ = w.Close()

	f.Seek(0, io.SeekStart)
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]int16, 16)
	n, _ := src.ReadSamples(buf)

	fmt.Printf("Format: %s\n", audio.FormatOf(src))
	fmt.Printf("Samples: %v\n", buf[:n])
	// Output:
	// Format: 8000Hz mono
	// Samples: [-1000 -500 0 500 1000]
}
