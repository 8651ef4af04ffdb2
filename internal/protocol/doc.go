// Package protocol implements the Icom CI-V binary command protocol.
//
// CI-V is the serial control protocol used by Icom transceivers. All
// traffic crosses the wire as frames with fixed preamble and terminator
// bytes and address routing:
//
//	FE FE <dst> <src> <cmd> [<sub>] [<data>...] FD
//
// # Frame Format
//
// Frames start with two preamble bytes (0xFE 0xFE) followed by the
// destination and source CI-V addresses, a command byte, an optional
// sub-command byte, variable-length data, and the end-of-message byte
// (0xFD). The preamble and terminator values never appear as addresses
// or command bytes, which makes them usable for resynchronization
// after transmission noise.
//
// The wire format is ambiguous by construction: a payload of exactly
// one byte between the command byte and the terminator cannot be told
// apart from a one-byte data field without command-specific knowledge.
// Decoding always resolves this as "sub-command with no data". The
// asymmetry is a protocol quirk real devices rely on, not something to
// fix. See Decode for details.
//
// # Numeric Encodings
//
// Numeric fields are BCD-encoded (see the bcd package):
//   - Operating frequency: 5 bytes, little-endian, 1 Hz resolution
//   - Levels and meters: 2 bytes, big-endian, 0-255 raw scale
//   - Duplex offset: 3 bytes, little-endian, 100 Hz resolution
//   - Tone frequency: [0x00, BCD, BCD], tenths of Hz
//   - DTCS: [polarity nibbles, BCD, BCD], 3-digit code
//
// # Commands and Responses
//
// Command values build request frames via their Frame method. Response
// parsing needs the originating Command as context, because several
// commands share a command byte and several payload shapes are only
// distinguishable by knowing which field was requested. See
// ParseResponse.
//
// # Usage Example
//
//	freq, _ := protocol.FrequencyFromMHz(145.5)
//	frame, err := protocol.SetFrequency{Freq: freq}.Frame()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	wire := frame.Encode()
//	// write wire bytes to the transport, then decode the reply:
//	reply, _, consumed, err := protocol.Decode(rxBuf)
//
// All functions in this package are pure and safe for concurrent use.
package protocol
