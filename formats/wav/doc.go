// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions use the github.com/go-audio/wav library and only handle
// 16-bit PCM, mono or stereo, at any sample rate.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
//
// Inputs that cannot seek are buffered in memory first.
//
// # Writing WAV Files
//
// Writer is a sink for little-endian PCM bytes, the form the transcoding
// channel hands to its encoder:
//
//	out, _ := os.Create("output.wav")
//	w, err := wav.NewWriter(out, audio.Format{SampleRate: 8000, Channels: 1})
//	err = w.WritePCM(pcmBytes, 0)
//	err = w.Close() // patches the RIFF sizes
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrOnlyPCM16bitSupported: compressed or non 16-bit data
//   - ErrUnsupportedWavLayout: missing or nonsensical fmt chunk
//   - ErrWriterClosed: WritePCM after Close
package wav
