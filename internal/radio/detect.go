package radio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"github.com/kc3vo/civctl/internal/config"
	"github.com/kc3vo/civctl/internal/logging"
	"github.com/kc3vo/civctl/internal/protocol"
	"github.com/kc3vo/civctl/internal/transport"
)

// CandidateBauds are the bit rates tried during detection, most common
// first.
var CandidateBauds = []int{19200, 9600, 4800}

// detectWindow bounds the wait for a proof-of-rate frame per candidate.
const detectWindow = time.Second

// FindPort scans the system's serial ports for a USB device whose
// product string contains product. Returns ErrPortNotFound when
// nothing matches.
func FindPort(product string) (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		logging.Debug("Inspecting serial port",
			zap.String("name", port.Name),
			zap.String("product", port.Product),
			zap.String("vid", port.VID),
			zap.String("pid", port.PID),
		)
		if strings.Contains(port.Product, product) {
			logging.Info("Found radio serial port",
				zap.String("name", port.Name),
				zap.String("product", port.Product),
			)
			return port.Name, nil
		}
	}

	return "", fmt.Errorf("%w: no USB serial port with product %q", ErrPortNotFound, product)
}

// AutoDetectBaud opens portName at each candidate rate and probes it
// with a transceiver ID query. The first rate that produces any
// well-formed frame addressed to the controller wins; a wrong rate
// yields only noise that never decodes that way. Returns an open
// session at the detected rate, or ErrTimeout after exhausting all
// candidates.
func AutoDetectBaud(portName string, cfg Config) (*Radio, int, error) {
	for _, baud := range CandidateBauds {
		logging.Info("Probing bit rate",
			zap.String("port", portName),
			zap.Int("baud", baud),
		)

		port, err := transport.OpenSerial(portName, baud)
		if err != nil {
			return nil, 0, err
		}

		r := New(port, cfg)
		if err := r.probe(detectWindow); err == nil {
			logging.Info("Bit rate detected", zap.Int("baud", baud))
			return r, baud, nil
		}

		_ = port.Close()
	}

	return nil, 0, fmt.Errorf("no response at any candidate bit rate: %w", ErrTimeout)
}

// probe writes a transceiver ID query and waits for any frame with the
// controller as destination. Content does not matter; a decodable
// frame addressed to us proves the bit rate.
func (r *Radio) probe(window time.Duration) error {
	frame, err := protocol.ReadTransceiverID{}.Frame(r.cfg.RadioAddr, r.cfg.ControllerAddr)
	if err != nil {
		return err
	}
	wire := frame.Encode()
	if err := r.transport.Write(wire); err != nil {
		return err
	}
	if err := r.transport.Flush(); err != nil {
		return err
	}
	r.txBytes += uint64(len(wire))

	deadline := time.Now().Add(window)
	scratch := make([]byte, 256)

	for {
		for len(r.rxBuf) > 0 {
			decoded, start, consumed, err := protocol.Decode(r.rxBuf)
			if errors.Is(err, protocol.ErrIncomplete) {
				break
			}
			r.rxBuf = r.rxBuf[start+consumed:]
			if err != nil {
				continue
			}
			if decoded.Dst == r.cfg.ControllerAddr {
				return nil
			}
			// Echo of our own query; keep waiting.
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}
		slice := remaining
		if slice > readSlice {
			slice = readSlice
		}
		if err := r.transport.SetReadTimeout(slice); err != nil {
			return err
		}
		n, err := r.transport.Read(scratch)
		if err != nil {
			return err
		}
		if n > 0 {
			r.rxBytes += uint64(n)
			r.rxBuf = append(r.rxBuf, scratch[:n]...)
		}
	}
}

// AutoConnect builds a ready session from persisted settings: the
// configured port or a product-string scan, and the configured bit
// rate or automatic detection. It returns the session and the bit
// rate in use.
func AutoConnect(settings *config.Settings) (*Radio, int, error) {
	cfg := ConfigFromSettings(settings)

	// A ws:// or wss:// port is a serial bridge; the bridge owns the
	// physical bit rate, so no detection happens on this side.
	if strings.HasPrefix(settings.Port, "ws://") || strings.HasPrefix(settings.Port, "wss://") {
		ws, err := transport.DialWebSocket(settings.Port)
		if err != nil {
			return nil, 0, err
		}
		return New(ws, cfg), settings.Baud, nil
	}

	portName := settings.Port
	if portName == "" {
		name, err := FindPort(settings.Product)
		if err != nil {
			return nil, 0, err
		}
		portName = name
	}

	if settings.Baud != 0 {
		port, err := transport.OpenSerial(portName, settings.Baud)
		if err != nil {
			return nil, 0, err
		}
		return New(port, cfg), settings.Baud, nil
	}

	r, baud, err := AutoDetectBaud(portName, cfg)
	if err != nil {
		return nil, 0, err
	}
	logging.Info("Connected to radio",
		zap.String("port", portName),
		zap.Int("baud", baud),
	)
	return r, baud, nil
}
