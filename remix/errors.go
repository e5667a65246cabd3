// SPDX-License-Identifier: EPL-2.0

package remix

import "errors"

var (
	// ErrUnsupportedChannelCount is returned by Select for any channel count
	// other than 1 or 2.
	ErrUnsupportedChannelCount = errors.New("unsupported channel count (only mono and stereo)")
)
