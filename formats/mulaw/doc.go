// SPDX-License-Identifier: EPL-2.0

// Package mulaw encodes 16-bit PCM to ITU-T G.711 µ-law.
//
// The codec is a per-sample table-free transform, so there is no framing and
// no state between calls. Writer wraps it as a sink for the transcoding
// channel's encoder side:
//
//	w := mulaw.NewWriter(file)
//	err := w.WritePCM(pcmBytes, ptsUs)
package mulaw
