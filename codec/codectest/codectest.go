// SPDX-License-Identifier: EPL-2.0

// Package codectest provides scripted codec fakes that record how they were
// driven.
package codectest

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ik5/pcmbridge/codec"
	"github.com/ik5/pcmbridge/pcm"
)

// CallLog is an ordered record of calls shared by fakes.
type CallLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *CallLog) Add(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *CallLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Decoder serves buffers registered with Put.
type Decoder struct {
	Log *CallLog

	mu       sync.Mutex
	buffers  map[int][]byte
	released []int
}

func NewDecoder(log *CallLog) *Decoder {
	return &Decoder{Log: log, buffers: make(map[int][]byte)}
}

// Put stores samples as little-endian PCM under index.
func (d *Decoder) Put(index int, samples []int16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffers[index] = pcm.Int16sToBytes(nil, samples)
}

func (d *Decoder) OutputBuffer(index int) ([]byte, error) {
	d.Log.Add("decoder.OutputBuffer(%d)", index)

	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[index]
	if !ok {
		return nil, fmt.Errorf("fake decoder buffer %d: %w", index, codec.ErrInvalidIndex)
	}
	return b, nil
}

func (d *Decoder) ReleaseOutputBuffer(index int) error {
	d.Log.Add("decoder.ReleaseOutputBuffer(%d)", index)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.buffers[index]; !ok {
		return fmt.Errorf("fake decoder release %d: %w", index, codec.ErrInvalidIndex)
	}
	d.released = append(d.released, index)
	return nil
}

// Released lists released indices in call order.
func (d *Decoder) Released() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.released)
}

// Queued is one buffer an Encoder received.
type Queued struct {
	Index   int
	PtsUs   int64
	Flags   codec.Flags
	Samples []int16
}

// Encoder hands out slots of a fixed capacity and records what is queued.
type Encoder struct {
	Log *CallLog

	// Busy makes the next Busy dequeues report ErrTryAgainLater.
	Busy int
	// DequeueErr, when set, is returned by every dequeue.
	DequeueErr error
	// QueueErr, when set, is returned by every queue.
	QueueErr error

	capacity int
	slots    [][]byte
	owned    []bool
	next     int
	queued   []Queued
	timeouts []time.Duration
}

// NewEncoder returns an encoder with n slots of capacity samples each.
func NewEncoder(log *CallLog, n, capacity int) *Encoder {
	e := &Encoder{
		Log:      log,
		capacity: capacity,
		slots:    make([][]byte, n),
		owned:    make([]bool, n),
	}
	for i := range e.slots {
		e.slots[i] = make([]byte, capacity*pcm.BytesPerSample)
	}
	return e
}

func (e *Encoder) DequeueInputBuffer(timeout time.Duration) (int, error) {
	e.Log.Add("encoder.DequeueInputBuffer")
	e.timeouts = append(e.timeouts, timeout)

	if e.DequeueErr != nil {
		return 0, e.DequeueErr
	}
	if e.Busy > 0 {
		e.Busy--
		return 0, codec.ErrTryAgainLater
	}

	for range e.slots {
		idx := e.next
		e.next = (e.next + 1) % len(e.slots)
		if !e.owned[idx] {
			e.owned[idx] = true
			return idx, nil
		}
	}
	return 0, codec.ErrTryAgainLater
}

func (e *Encoder) InputBuffer(index int) ([]byte, error) {
	if index < 0 || index >= len(e.slots) || !e.owned[index] {
		return nil, codec.ErrInvalidIndex
	}
	return e.slots[index], nil
}

func (e *Encoder) QueueInputBuffer(index, size int, ptsUs int64, flags codec.Flags) error {
	e.Log.Add("encoder.QueueInputBuffer(%d, %d, %d, %d)", index, size, ptsUs, flags)

	if e.QueueErr != nil {
		return e.QueueErr
	}
	if index < 0 || index >= len(e.slots) || !e.owned[index] {
		return codec.ErrInvalidIndex
	}
	if size > len(e.slots[index]) {
		return codec.ErrBufferTooLarge
	}

	e.owned[index] = false
	e.queued = append(e.queued, Queued{
		Index:   index,
		PtsUs:   ptsUs,
		Flags:   flags,
		Samples: pcm.BytesToInt16s(nil, e.slots[index][:size]),
	})
	return nil
}

// Queued returns every buffer received so far.
func (e *Encoder) Queued() []Queued { return slices.Clone(e.queued) }

// Samples concatenates the samples of every queued buffer.
func (e *Encoder) Samples() []int16 {
	var out []int16
	for _, q := range e.queued {
		out = append(out, q.Samples...)
	}
	return out
}

// EOS reports whether a buffer flagged end of stream was queued.
func (e *Encoder) EOS() bool {
	return slices.ContainsFunc(e.queued, func(q Queued) bool {
		return q.Flags.Has(codec.FlagEndOfStream)
	})
}

// Timeouts lists the timeout of every dequeue call.
func (e *Encoder) Timeouts() []time.Duration { return slices.Clone(e.timeouts) }

// Capacity is the slot size in samples.
func (e *Encoder) Capacity() int { return e.capacity }

// MemorySink collects everything written to it.
type MemorySink struct {
	mu     sync.Mutex
	Writes []Queued
	Closed bool
	Err    error
}

func (s *MemorySink) WritePCM(b []byte, ptsUs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Writes = append(s.Writes, Queued{PtsUs: ptsUs, Samples: pcm.BytesToInt16s(nil, b)})
	return nil
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// Samples concatenates every write.
func (s *MemorySink) Samples() []int16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int16
	for _, w := range s.Writes {
		out = append(out, w.Samples...)
	}
	return out
}
