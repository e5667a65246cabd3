// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat = errors.New("invalid audio format")
	ErrUnknownFormat = errors.New("unknown audio format")
)

// UnknownFormatError names the format key that had no registered decoder.
// It matches ErrUnknownFormat with errors.Is.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownFormat, e.Format)
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}
