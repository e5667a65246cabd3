// SPDX-License-Identifier: EPL-2.0

package transcode

import "errors"

var (
	// ErrSampleRateMismatch is returned when the decoder and encoder run at
	// different sample rates. Rate conversion is not supported.
	ErrSampleRateMismatch = errors.New("transcode: sample rate mismatch")

	// ErrFormatNotSet is returned by EnqueueDecoderOutput and FeedEncoder
	// before SetActualFormat succeeded.
	ErrFormatNotSet = errors.New("transcode: actual format not set")

	// ErrFormatAlreadySet is returned when SetActualFormat is called again
	// with a different format.
	ErrFormatAlreadySet = errors.New("transcode: actual format already set")

	// ErrEndOfStream is returned when a buffer is enqueued after the end of
	// stream marker.
	ErrEndOfStream = errors.New("transcode: buffer enqueued after end of stream")

	// ErrEncoderBufferTooSmall means an encoder input slot cannot hold a
	// single output frame.
	ErrEncoderBufferTooSmall = errors.New("transcode: encoder buffer smaller than one frame")
)
