// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream-level primitives the bridge is built on.
//
// This package contains:
//   - Source interface for 16-bit PCM input
//   - Format, the sample rate and channel count of a stream
//   - Registry for decoder registration by format key
//
// # Source Interface
//
// The Source interface is the foundation of audio input:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []int16) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every decoder under formats/ returns a Source. The codec package turns a
// Source into an index-based decoder engine that feeds the transcoding
// channel.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("input.wav")
//
// Keys are matched case-insensitively. ForPath returns an error matching
// ErrUnknownFormat when nothing is registered for the extension.
//
// # Sample Format
//
// Samples are interleaved signed 16-bit integers. One frame holds one sample
// per channel, so a stereo frame is an L,R pair and occupies 4 bytes when
// serialized little-endian.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // Process n samples from buf
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	}
package audio
