package transport

import "time"

// Transport is a byte stream carrying CI-V traffic.
//
// Write has write-all semantics: it returns nil only when every byte
// was accepted. Read follows io.Reader semantics except that a read
// timeout surfaces as (0, nil), matching serial port behavior, so the
// caller owns the overall deadline.
type Transport interface {
	// Write sends all of p.
	Write(p []byte) error

	// Flush blocks until buffered output reaches the wire.
	Flush() error

	// Read fills p with available bytes. A timeout yields (0, nil).
	Read(p []byte) (int, error)

	// SetReadTimeout bounds each subsequent Read call.
	SetReadTimeout(d time.Duration) error

	// Close releases the underlying link.
	Close() error
}
