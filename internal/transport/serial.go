package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/kc3vo/civctl/internal/logging"
)

// SerialPort is a Transport over a local serial device.
type SerialPort struct {
	port serial.Port
	name string
}

// OpenSerial opens the named serial device at the given bit rate,
// configured 8N1 as CI-V requires, and clears any stale bytes from
// both directions.
func OpenSerial(name string, baud int) (*SerialPort, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}

	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to reset input buffer: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to reset output buffer: %w", err)
	}

	logging.Info("Serial port opened",
		zap.String("port", name),
		zap.Int("baud", baud),
	)

	return &SerialPort{port: port, name: name}, nil
}

// Name returns the device path the port was opened with.
func (s *SerialPort) Name() string {
	return s.name
}

// Write sends all of p to the port.
func (s *SerialPort) Write(p []byte) error {
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return fmt.Errorf("serial write failed: %w", err)
		}
		p = p[n:]
	}
	return nil
}

// Flush blocks until buffered output has been transmitted.
func (s *SerialPort) Flush() error {
	if err := s.port.Drain(); err != nil {
		return fmt.Errorf("serial drain failed: %w", err)
	}
	return nil
}

// Read fills p with available bytes. A timeout yields (0, nil).
func (s *SerialPort) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

// SetReadTimeout bounds each subsequent Read call.
func (s *SerialPort) SetReadTimeout(d time.Duration) error {
	return s.port.SetReadTimeout(d)
}

// Close releases the port.
func (s *SerialPort) Close() error {
	logging.Info("Serial port closed", zap.String("port", s.name))
	return s.port.Close()
}
