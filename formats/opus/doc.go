// SPDX-License-Identifier: EPL-2.0

// Package opus encodes 16-bit PCM to Opus using libopus through
// gopkg.in/hraban/opus.v2. Building it requires cgo and the libopus
// development headers.
//
// Writer collects PCM into fixed frames and writes one packet per frame:
//
//	+----------+-----------+----------------+
//	| len (4B) | pts (8B)  | payload (len)  |
//	+----------+-----------+----------------+
//
// Both header fields are big-endian and pts is in microseconds. ReadPacket
// parses the same framing back.
//
// Opus only runs at 8, 12, 16, 24 or 48 kHz. The transcoding channel never
// changes the sample rate, so the input must already be at one of those.
package opus
