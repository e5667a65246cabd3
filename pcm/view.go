// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

// BytesPerSample is the size of one signed 16-bit PCM sample.
const BytesPerSample = 2

// View is a cursor over interleaved little-endian int16 samples stored in a
// byte slice. Position and limit are counted in samples, not bytes.
//
// A View never copies the memory it wraps. Wrapping a decoder or encoder
// buffer borrows that buffer for as long as the View is in use.
type View struct {
	buf   []byte
	pos   int
	limit int
}

// Wrap returns a View over b with position 0 and limit at capacity.
// A trailing odd byte is not addressable.
func Wrap(b []byte) *View {
	v := &View{}
	v.Reset(b)
	return v
}

// NewView allocates a View able to hold samples samples.
// It starts empty (position 0, limit 0).
func NewView(samples int) *View {
	return &View{buf: make([]byte, samples*BytesPerSample)}
}

// Reset points the view at b with position 0 and limit at capacity.
func (v *View) Reset(b []byte) {
	v.buf = b
	v.pos = 0
	v.limit = len(b) / BytesPerSample
}

// Capacity is the number of samples the underlying storage can hold.
func (v *View) Capacity() int { return len(v.buf) / BytesPerSample }

// Position is the index of the next sample to be read or written.
func (v *View) Position() int { return v.pos }

// Limit is the index of the first sample that must not be read or written.
func (v *View) Limit() int { return v.limit }

// Remaining is Limit - Position.
func (v *View) Remaining() int { return v.limit - v.pos }

// HasRemaining reports whether Position < Limit.
func (v *View) HasRemaining() bool { return v.pos < v.limit }

// SetLimit moves the limit, clamping it to [0, Capacity]. The position is
// pulled back when it lies beyond the new limit.
func (v *View) SetLimit(limit int) {
	limit = max(0, min(limit, v.Capacity()))
	v.limit = limit
	if v.pos > limit {
		v.pos = limit
	}
}

// Clear prepares the view for writing: position 0, limit at capacity.
func (v *View) Clear() {
	v.pos = 0
	v.limit = v.Capacity()
}

// Flip prepares the view for reading what was just written.
func (v *View) Flip() {
	v.limit = v.pos
	v.pos = 0
}

// Empty marks the view as holding nothing: position 0, limit 0.
func (v *View) Empty() {
	v.pos = 0
	v.limit = 0
}

// Get reads the sample at Position and advances it.
// The caller must check HasRemaining first.
func (v *View) Get() int16 {
	s := int16(binary.LittleEndian.Uint16(v.buf[v.pos*BytesPerSample:]))
	v.pos++
	return s
}

// Put writes s at Position and advances it.
// The caller must check HasRemaining first.
func (v *View) Put(s int16) {
	binary.LittleEndian.PutUint16(v.buf[v.pos*BytesPerSample:], uint16(s))
	v.pos++
}

// At returns the sample at absolute index i without moving the position.
func (v *View) At(i int) int16 {
	return int16(binary.LittleEndian.Uint16(v.buf[i*BytesPerSample:]))
}

// RemainingBytes returns the bytes between Position and Limit.
func (v *View) RemainingBytes() []byte {
	return v.buf[v.pos*BytesPerSample : v.limit*BytesPerSample]
}

// Written returns the bytes between 0 and Position, i.e. what has been put
// into a view since the last Clear.
func (v *View) Written() []byte {
	return v.buf[:v.pos*BytesPerSample]
}

// SetPosition moves the position, clamping it to [0, Limit].
func (v *View) SetPosition(pos int) {
	v.pos = max(0, min(pos, v.limit))
}

// Skip advances the position by n samples, bounded by the limit.
func (v *View) Skip(n int) {
	v.pos = min(v.pos+n, v.limit)
}

// Grow makes sure the view can hold at least samples samples. Existing
// contents are discarded and the view is left empty when it reallocates.
func (v *View) Grow(samples int) bool {
	if v.Capacity() >= samples {
		return false
	}
	v.buf = make([]byte, samples*BytesPerSample)
	v.Empty()
	return true
}

// CopyFrom copies up to n samples from src into v, advancing both. It returns
// the number of samples copied, which is bounded by both remainders.
func (v *View) CopyFrom(src *View, n int) int {
	n = min(n, src.Remaining(), v.Remaining())
	if n <= 0 {
		return 0
	}
	copy(v.buf[v.pos*BytesPerSample:], src.buf[src.pos*BytesPerSample:(src.pos+n)*BytesPerSample])
	v.pos += n
	src.pos += n
	return n
}
