// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of the per-packet header written by Writer.
const HeaderSize = 12

// Packet is one framed Opus packet as written by Writer.
type Packet struct {
	PtsUs   int64
	Payload []byte
}

// ReadPacket reads the next framed packet from r. It returns io.EOF only
// when r ends cleanly on a packet boundary.
func ReadPacket(r io.Reader) (Packet, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Packet{}, ErrShortPacket
		}
		return Packet{}, err
	}

	size := binary.BigEndian.Uint32(hdr[0:4])
	if size > maxPacketBytes {
		return Packet{}, fmt.Errorf("%w: length %d", ErrShortPacket, size)
	}

	p := Packet{
		PtsUs:   int64(binary.BigEndian.Uint64(hdr[4:12])),
		Payload: make([]byte, size),
	}
	if _, err := io.ReadFull(r, p.Payload); err != nil {
		return Packet{}, fmt.Errorf("%w: %w", ErrShortPacket, err)
	}
	return p, nil
}
