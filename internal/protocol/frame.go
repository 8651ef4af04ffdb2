package protocol

import (
	"bytes"
	"fmt"
)

// CI-V framing byte values
const (
	Preamble = 0xFE // frame start marker, sent twice
	EOM      = 0xFD // end-of-message terminator
	OK       = 0xFB // universal "command accepted" reply
	NG       = 0xFA // universal "command rejected" reply
)

// Conventional CI-V addresses for the ID-52 family. These are defaults
// only; the session takes both addresses from its configuration.
const (
	AddrRadio      = 0xB4 // transceiver
	AddrController = 0xE0 // controller (PC)
)

// MinFrameSize is the smallest valid frame:
// preamble + preamble + dst + src + cmd + EOM.
const MinFrameSize = 6

// Frame is the single entity crossing the wire.
//
// HasSub distinguishes "no sub-command" from sub-command 0x00; Sub is
// meaningful only when HasSub is true.
type Frame struct {
	Dst     byte
	Src     byte
	Command byte
	Sub     byte
	HasSub  bool
	Data    []byte
}

// NewFrame builds a frame without a sub-command byte.
func NewFrame(dst, src, command byte, data []byte) Frame {
	return Frame{Dst: dst, Src: src, Command: command, Data: data}
}

// NewFrameSub builds a frame with a sub-command byte.
func NewFrameSub(dst, src, command, sub byte, data []byte) Frame {
	return Frame{Dst: dst, Src: src, Command: command, Sub: sub, HasSub: true, Data: data}
}

// Encode serializes the frame to its wire representation:
// FE FE dst src cmd [sub] data... FD.
func (f Frame) Encode() []byte {
	out := make([]byte, 0, MinFrameSize+1+len(f.Data))
	out = append(out, Preamble, Preamble, f.Dst, f.Src, f.Command)
	if f.HasSub {
		out = append(out, f.Sub)
	}
	out = append(out, f.Data...)
	out = append(out, EOM)
	return out
}

// IsOK reports whether this is an OK (command accepted) reply frame.
func (f Frame) IsOK() bool {
	return f.Command == OK
}

// IsNG reports whether this is an NG (command rejected) reply frame.
func (f Frame) IsNG() bool {
	return f.Command == NG
}

// Equal reports whether two frames have identical fields.
func (f Frame) Equal(other Frame) bool {
	return f.Dst == other.Dst &&
		f.Src == other.Src &&
		f.Command == other.Command &&
		f.HasSub == other.HasSub &&
		(!f.HasSub || f.Sub == other.Sub) &&
		bytes.Equal(f.Data, other.Data)
}

// String returns a debug representation of the frame.
func (f Frame) String() string {
	sub := "-"
	if f.HasSub {
		sub = fmt.Sprintf("%#02x", f.Sub)
	}
	return fmt.Sprintf("Frame{dst=%#02x, src=%#02x, cmd=%#02x, sub=%s, data=% 02X}",
		f.Dst, f.Src, f.Command, sub, f.Data)
}

// Decode scans buf for the first complete frame.
//
// start is the offset of the two-byte preamble run within buf, and
// consumed is the frame length measured from start; callers must
// discard start+consumed bytes, not just consumed, or leading garbage
// will shift every subsequent decode.
//
// Preamble bytes beyond the first two are treated as padding and do
// not shift the address bytes; start always points at the first
// preamble byte of the run.
//
// Returns ErrIncomplete when buf holds no preamble run or no
// terminator after one (read more bytes and retry), and
// ErrInvalidFrame when the span from preamble to terminator is shorter
// than a minimal frame.
//
// The payload between the command byte and the terminator is split per
// the protocol's asymmetric rule: one or more payload bytes always
// yield sub-command = payload[0] and data = payload[1:]. A single-byte
// payload therefore becomes a sub-command with no data, never a
// zero-sub-command with one data byte. OK and NG frames carry neither,
// regardless of payload length.
func Decode(buf []byte) (Frame, int, int, error) {
	start := -1
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == Preamble && buf[i+1] == Preamble {
			start = i
			break
		}
	}
	if start < 0 {
		return Frame{}, 0, 0, ErrIncomplete
	}

	// Preamble bytes beyond the first two are padding: the device can
	// emit FE fill ahead of a frame, and garbage ending in a stray FE
	// would otherwise join the genuine preamble run and shift the
	// address bytes.
	body := start + 2
	for body < len(buf) && buf[body] == Preamble {
		body++
	}
	if body >= len(buf) {
		return Frame{}, 0, 0, ErrIncomplete
	}

	end := bytes.IndexByte(buf[body:], EOM)
	if end < 0 {
		return Frame{}, 0, 0, ErrIncomplete
	}
	consumed := body + end + 1 - start

	// The body must hold at least dst, src, command, terminator.
	if end < 3 {
		// Report the bad span's extent so callers can discard it
		// and resynchronize on the next preamble run.
		return Frame{}, start, consumed, ErrInvalidFrame
	}

	f := Frame{
		Dst:     buf[body],
		Src:     buf[body+1],
		Command: buf[body+2],
	}

	payload := buf[body+3 : body+end]
	if f.Command != OK && f.Command != NG && len(payload) > 0 {
		f.Sub = payload[0]
		f.HasSub = true
		if len(payload) > 1 {
			f.Data = append([]byte(nil), payload[1:]...)
		}
	}

	return f, start, consumed, nil
}
