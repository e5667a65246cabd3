// SPDX-License-Identifier: EPL-2.0

package pcmbridge

import "errors"

// ErrDecoderStopped is returned when the decoder side of a concurrent run
// ends without delivering the end of stream.
var ErrDecoderStopped = errors.New("pcmbridge: decoder stopped before end of stream")
