// SPDX-License-Identifier: EPL-2.0

package seekable

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReader_PassesSeekerThrough(t *testing.T) {
	t.Parallel()

	in := bytes.NewReader([]byte("abc"))
	got, err := Reader(in)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	if got != io.ReadSeeker(in) {
		t.Error("Reader() wrapped a reader that could already seek")
	}
}

func TestReader_BuffersPlainReader(t *testing.T) {
	t.Parallel()

	got, err := Reader(io.MultiReader(strings.NewReader("hello")))
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}

	if _, err := got.Seek(1, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(got)
	if string(rest) != "ello" {
		t.Errorf("after seek read %q, want \"ello\"", rest)
	}
}

func TestReader_ReadError(t *testing.T) {
	t.Parallel()

	if _, err := Reader(failingReader{}); err == nil {
		t.Error("Reader() error = nil, want read failure")
	}
}
