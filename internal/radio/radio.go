package radio

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kc3vo/civctl/internal/config"
	"github.com/kc3vo/civctl/internal/logging"
	"github.com/kc3vo/civctl/internal/protocol"
	"github.com/kc3vo/civctl/internal/transport"
)

// Sentinel errors for session outcomes.
var (
	// ErrTimeout reports that no matching reply arrived within the
	// configured window. The session stays usable afterwards.
	ErrTimeout = errors.New("timed out waiting for response")

	// ErrNg reports that the radio rejected the command. This is a
	// protocol-level outcome, not a transport failure.
	ErrNg = errors.New("radio rejected command")

	// ErrPortNotFound reports that no serial port matched the
	// configured USB product string.
	ErrPortNotFound = errors.New("no matching serial port found")
)

// readSlice caps each individual transport read so the overall
// deadline is checked frequently.
const readSlice = 100 * time.Millisecond

// Config holds the session parameters.
type Config struct {
	// RadioAddr and ControllerAddr are the CI-V bus addresses.
	RadioAddr      byte
	ControllerAddr byte

	// Timeout bounds each command/response exchange.
	Timeout time.Duration

	// EchoBack is true when the link echoes transmitted frames back
	// before the reply, the normal case for the CI-V bus. When
	// false, echo classification is skipped entirely.
	EchoBack bool

	// VFOASub and VFOBSub are the band selector values for the VFO
	// command.
	VFOASub byte
	VFOBSub byte
}

// DefaultConfig returns session parameters for an ID-52 with factory
// settings.
func DefaultConfig() Config {
	return Config{
		RadioAddr:      protocol.AddrRadio,
		ControllerAddr: protocol.AddrController,
		Timeout:        time.Second,
		EchoBack:       true,
		VFOASub:        protocol.VFOSubA,
		VFOBSub:        protocol.VFOSubB,
	}
}

// ConfigFromSettings maps persisted settings onto session parameters.
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		RadioAddr:      s.RadioAddr,
		ControllerAddr: s.ControllerAddr,
		Timeout:        time.Duration(s.TimeoutMs) * time.Millisecond,
		EchoBack:       s.EchoBack,
		VFOASub:        s.VFOASub,
		VFOBSub:        s.VFOBSub,
	}
}

// Radio is a CI-V session over a Transport. Not safe for concurrent
// use.
type Radio struct {
	transport transport.Transport
	cfg       Config

	rxBuf   []byte
	txBytes uint64
	rxBytes uint64
}

// New wraps an open transport in a session.
func New(t transport.Transport, cfg Config) *Radio {
	return &Radio{transport: t, cfg: cfg}
}

// Close releases the underlying transport.
func (r *Radio) Close() error {
	return r.transport.Close()
}

// TxBytes returns the cumulative count of bytes written to the link.
func (r *Radio) TxBytes() uint64 { return r.txBytes }

// RxBytes returns the cumulative count of bytes read from the link,
// including echoed and unsolicited frames.
func (r *Radio) RxBytes() uint64 { return r.rxBytes }

// SendCommand writes cmd to the radio and waits for its reply.
func (r *Radio) SendCommand(cmd protocol.Command) (protocol.Response, error) {
	frame, err := cmd.Frame(r.cfg.RadioAddr, r.cfg.ControllerAddr)
	if err != nil {
		return nil, err
	}

	wire := frame.Encode()
	if err := r.transport.Write(wire); err != nil {
		return nil, err
	}
	if err := r.transport.Flush(); err != nil {
		return nil, err
	}
	r.txBytes += uint64(len(wire))
	logging.LogFrame("tx", frame)

	reply, err := r.readResponse(cmd.CommandByte())
	if err != nil {
		return nil, err
	}
	logging.LogFrame("rx", reply)

	return protocol.ParseResponse(reply, cmd)
}

// readResponse collects bytes from the transport until a frame
// classifies as the reply to the command byte sent, or the deadline
// passes. Echoed and unsolicited frames are skipped; malformed runs
// are logged and skipped without aborting the wait.
func (r *Radio) readResponse(expected byte) (protocol.Frame, error) {
	deadline := time.Now().Add(r.cfg.Timeout)
	scratch := make([]byte, 256)

	for {
		// Drain frames already buffered before reading more.
		for len(r.rxBuf) > 0 {
			frame, start, consumed, err := protocol.Decode(r.rxBuf)
			if errors.Is(err, protocol.ErrIncomplete) {
				break
			}
			// Consumed is measured from the preamble run, so the
			// discard covers any leading garbage too.
			r.rxBuf = r.rxBuf[start+consumed:]
			if err != nil {
				logging.Warn("Skipping malformed frame run",
					zap.Int("length", start+consumed),
					zap.Error(err),
				)
				continue
			}

			if r.cfg.EchoBack && frame.Dst != r.cfg.ControllerAddr {
				logging.Debug("Skipping echoed frame", zap.String("frame", frame.String()))
				continue
			}
			if frame.IsOK() || frame.IsNG() || frame.Command == expected {
				return frame, nil
			}
			logging.Debug("Skipping unsolicited frame", zap.String("frame", frame.String()))
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return protocol.Frame{}, ErrTimeout
		}
		slice := remaining
		if slice > readSlice {
			slice = readSlice
		}
		if err := r.transport.SetReadTimeout(slice); err != nil {
			return protocol.Frame{}, fmt.Errorf("failed to set read timeout: %w", err)
		}

		n, err := r.transport.Read(scratch)
		if err != nil {
			return protocol.Frame{}, fmt.Errorf("transport read failed: %w", err)
		}
		if n > 0 {
			r.rxBytes += uint64(n)
			r.rxBuf = append(r.rxBuf, scratch[:n]...)
			logging.LogRawBytes("rx bytes", scratch[:n])
		}
	}
}

func unexpectedResponse(resp protocol.Response) error {
	if _, isNG := resp.(protocol.NGResponse); isNG {
		return ErrNg
	}
	return fmt.Errorf("unexpected response %T: %w", resp, protocol.ErrInvalidFrame)
}

// expectOK maps the common set-command outcomes onto an error value.
func expectOK(resp protocol.Response, err error) error {
	if err != nil {
		return err
	}
	switch resp.(type) {
	case protocol.OKResponse:
		return nil
	default:
		return unexpectedResponse(resp)
	}
}

// ReadFrequency reads the displayed frequency.
func (r *Radio) ReadFrequency() (protocol.Frequency, error) {
	resp, err := r.SendCommand(protocol.ReadFrequency{})
	if err != nil {
		return 0, err
	}
	freq, ok := resp.(protocol.FrequencyResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return freq.Freq, nil
}

// SetFrequency sets the operating frequency. Firmware that echoes the
// new frequency instead of OK is accepted.
func (r *Radio) SetFrequency(freq protocol.Frequency) error {
	resp, err := r.SendCommand(protocol.SetFrequency{Freq: freq})
	if err != nil {
		return err
	}
	switch resp.(type) {
	case protocol.OKResponse, protocol.FrequencyResponse:
		return nil
	default:
		return unexpectedResponse(resp)
	}
}

// ReadMode reads the operating mode and filter.
func (r *Radio) ReadMode() (protocol.Mode, error) {
	resp, err := r.SendCommand(protocol.ReadMode{})
	if err != nil {
		return 0, err
	}
	mode, ok := resp.(protocol.ModeResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return mode.Mode, nil
}

// SetMode sets the operating mode and filter.
func (r *Radio) SetMode(mode protocol.Mode) error {
	return expectOK(r.SendCommand(protocol.SetMode{Mode: mode}))
}

// SelectVFOA selects the A band.
func (r *Radio) SelectVFOA() error {
	return expectOK(r.SendCommand(protocol.SelectVFO{Sub: r.cfg.VFOASub}))
}

// SelectVFOB selects the B band.
func (r *Radio) SelectVFOB() error {
	return expectOK(r.SendCommand(protocol.SelectVFO{Sub: r.cfg.VFOBSub}))
}

// ReadLevel reads a level setting (protocol.LevelAF, LevelSquelch, ...)
// on the 0-255 scale.
func (r *Radio) ReadLevel(sub byte) (uint16, error) {
	resp, err := r.SendCommand(protocol.ReadLevel{Sub: sub})
	if err != nil {
		return 0, err
	}
	level, ok := resp.(protocol.LevelResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return level.Value, nil
}

// SetLevel writes a level setting on the 0-255 scale.
func (r *Radio) SetLevel(sub byte, value uint16) error {
	return expectOK(r.SendCommand(protocol.SetLevel{Sub: sub, Value: value}))
}

// ReadMeter reads a meter value (protocol.MeterS, MeterPower) on the
// 0-255 scale.
func (r *Radio) ReadMeter(sub byte) (uint16, error) {
	resp, err := r.SendCommand(protocol.ReadMeter{Sub: sub})
	if err != nil {
		return 0, err
	}
	meter, ok := resp.(protocol.MeterResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return meter.Value, nil
}

// ReadToneMode reads the combined tone/squelch function code.
func (r *Radio) ReadToneMode() (protocol.ToneMode, error) {
	resp, err := r.SendCommand(protocol.ReadVarious{Sub: protocol.VariousToneSquelch})
	if err != nil {
		return 0, err
	}
	various, ok := resp.(protocol.VariousResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return protocol.ToneMode(various.Value), nil
}

// SetToneMode writes the combined tone/squelch function code.
func (r *Radio) SetToneMode(mode protocol.ToneMode) error {
	return expectOK(r.SendCommand(protocol.SetVarious{
		Sub:   protocol.VariousToneSquelch,
		Value: byte(mode),
	}))
}

// ReadTxTone reads the repeater tone frequency in tenths of Hz.
func (r *Radio) ReadTxTone() (uint16, error) {
	return r.readTone(protocol.ToneSubTx)
}

// ReadRxTone reads the tone squelch frequency in tenths of Hz.
func (r *Radio) ReadRxTone() (uint16, error) {
	return r.readTone(protocol.ToneSubRx)
}

func (r *Radio) readTone(sub byte) (uint16, error) {
	resp, err := r.SendCommand(protocol.ReadTone{Sub: sub})
	if err != nil {
		return 0, err
	}
	tone, ok := resp.(protocol.ToneFrequencyResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return tone.Tenths, nil
}

// SetTxTone writes the repeater tone frequency in tenths of Hz.
func (r *Radio) SetTxTone(tenths uint16) error {
	return expectOK(r.SendCommand(protocol.SetTone{Sub: protocol.ToneSubTx, Tenths: tenths}))
}

// SetRxTone writes the tone squelch frequency in tenths of Hz.
func (r *Radio) SetRxTone(tenths uint16) error {
	return expectOK(r.SendCommand(protocol.SetTone{Sub: protocol.ToneSubRx, Tenths: tenths}))
}

// ReadDTCS reads the DTCS code and polarities.
func (r *Radio) ReadDTCS() (protocol.DTCSResponse, error) {
	resp, err := r.SendCommand(protocol.ReadTone{Sub: protocol.ToneSubDTCS})
	if err != nil {
		return protocol.DTCSResponse{}, err
	}
	dtcs, ok := resp.(protocol.DTCSResponse)
	if !ok {
		return protocol.DTCSResponse{}, unexpectedResponse(resp)
	}
	return dtcs, nil
}

// SetDTCS writes the DTCS code and polarities.
func (r *Radio) SetDTCS(txPolarity, rxPolarity byte, code uint16) error {
	return expectOK(r.SendCommand(protocol.SetDTCS{
		TxPolarity: txPolarity,
		RxPolarity: rxPolarity,
		Code:       code,
	}))
}

// ReadDuplex reads the duplex direction byte.
func (r *Radio) ReadDuplex() (byte, error) {
	resp, err := r.SendCommand(protocol.ReadDuplex{})
	if err != nil {
		return 0, err
	}
	duplex, ok := resp.(protocol.DuplexResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return duplex.Direction, nil
}

// SetDuplex writes the duplex direction (protocol.DuplexSimplex,
// DuplexMinus, DuplexPlus).
func (r *Radio) SetDuplex(direction byte) error {
	return expectOK(r.SendCommand(protocol.SetDuplex{Direction: direction}))
}

// ReadOffset reads the duplex offset frequency.
func (r *Radio) ReadOffset() (protocol.Frequency, error) {
	resp, err := r.SendCommand(protocol.ReadOffset{})
	if err != nil {
		return 0, err
	}
	offset, ok := resp.(protocol.OffsetResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return offset.Freq, nil
}

// SetOffset writes the duplex offset frequency in Hz (100 Hz
// resolution).
func (r *Radio) SetOffset(hz uint64) error {
	return expectOK(r.SendCommand(protocol.SetOffset{Hz: hz}))
}

// PowerOn powers the radio on.
func (r *Radio) PowerOn() error {
	return expectOK(r.SendCommand(protocol.PowerOn{}))
}

// PowerOff powers the radio off.
func (r *Radio) PowerOff() error {
	return expectOK(r.SendCommand(protocol.PowerOff{}))
}

// ReadTransceiverID reads the radio's CI-V ID byte.
func (r *Radio) ReadTransceiverID() (byte, error) {
	resp, err := r.SendCommand(protocol.ReadTransceiverID{})
	if err != nil {
		return 0, err
	}
	id, ok := resp.(protocol.TransceiverIDResponse)
	if !ok {
		return 0, unexpectedResponse(resp)
	}
	return id.ID, nil
}

// ReadGPSPosition reads the radio's GPS fix.
func (r *Radio) ReadGPSPosition() (protocol.GPSPosition, error) {
	resp, err := r.SendCommand(protocol.ReadGPSPosition{})
	if err != nil {
		return protocol.GPSPosition{}, err
	}
	gps, ok := resp.(protocol.GPSResponse)
	if !ok {
		return protocol.GPSPosition{}, unexpectedResponse(resp)
	}
	return gps.Raw.Position(), nil
}
