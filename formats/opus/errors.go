// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	ErrUnsupportedSampleRate = errors.New("opus: unsupported sample rate")
	ErrUnsupportedChannels   = errors.New("opus: only mono and stereo are supported")
	ErrInvalidFrameDuration  = errors.New("opus: invalid frame duration")
	ErrUnknownApplication    = errors.New("opus: unknown application")
	ErrWriterClosed          = errors.New("opus: writer is closed")
	ErrShortPacket           = errors.New("opus: truncated packet")
)
