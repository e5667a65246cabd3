// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	// ErrTryAgainLater means no buffer became available within the timeout.
	ErrTryAgainLater = errors.New("codec: try again later")

	// ErrOutputFormatChanged is returned once by DequeueOutputBuffer before
	// the first buffer.
	ErrOutputFormatChanged = errors.New("codec: output format changed")

	// ErrInvalidIndex is returned for an index the caller does not hold.
	ErrInvalidIndex   = errors.New("codec: invalid buffer index")
	ErrEndOfStream    = errors.New("codec: end of stream already signalled")
	ErrBufferTooLarge = errors.New("codec: size exceeds buffer capacity")
	ErrInvalidOption  = errors.New("codec: invalid option")
)
