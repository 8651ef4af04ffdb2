package protocol

import (
	"fmt"

	"github.com/kc3vo/civctl/internal/bcd"
)

// A Response is a typed reply from the radio. The concrete type
// depends on the command that solicited it; OKResponse and NGResponse
// can answer any command.
type Response interface {
	isResponse()
}

// OKResponse reports that the radio accepted the command (0xFB).
type OKResponse struct{}

// NGResponse reports that the radio rejected the command (0xFA). This
// is a normal protocol outcome for an invalid parameter, not a framing
// defect.
type NGResponse struct{}

// FrequencyResponse carries the operating frequency.
type FrequencyResponse struct {
	Freq Frequency
}

// ModeResponse carries the operating mode and filter.
type ModeResponse struct {
	Mode Mode
}

// LevelResponse carries a level setting value (0-255).
type LevelResponse struct {
	Sub   byte
	Value uint16
}

// MeterResponse carries a meter reading (0-255).
type MeterResponse struct {
	Sub   byte
	Value uint16
}

// TransceiverIDResponse carries the radio's CI-V ID byte.
type TransceiverIDResponse struct {
	ID byte
}

// VariousResponse carries a various-function setting. Value is the
// single raw data byte, deliberately not BCD-decoded.
type VariousResponse struct {
	Sub   byte
	Value byte
}

// DuplexResponse carries the duplex direction. The value lives in the
// sub-command byte of the reply; there are no data bytes.
type DuplexResponse struct {
	Direction byte
}

// OffsetResponse carries the duplex offset frequency.
type OffsetResponse struct {
	Freq Frequency
}

// ToneFrequencyResponse carries a CTCSS tone frequency in tenths of Hz
// (1413 = 141.3 Hz) for the Tx or Rx side.
type ToneFrequencyResponse struct {
	Sub    byte
	Tenths uint16
}

// DTCSResponse carries the DTCS code and per-direction polarity
// (0 = normal, 1 = reverse).
type DTCSResponse struct {
	TxPolarity byte
	RxPolarity byte
	Code       uint16
}

// GPSResponse carries a decoded GPS fix.
type GPSResponse struct {
	Raw RawGPSPosition
}

func (OKResponse) isResponse()            {}
func (NGResponse) isResponse()            {}
func (FrequencyResponse) isResponse()     {}
func (ModeResponse) isResponse()          {}
func (LevelResponse) isResponse()         {}
func (MeterResponse) isResponse()         {}
func (TransceiverIDResponse) isResponse() {}
func (VariousResponse) isResponse()       {}
func (DuplexResponse) isResponse()        {}
func (OffsetResponse) isResponse()        {}
func (ToneFrequencyResponse) isResponse() {}
func (DTCSResponse) isResponse()          {}
func (GPSResponse) isResponse()           {}

// ParseResponse parses a reply frame into a typed Response, using the
// originating command to disambiguate replies that share a command
// byte or payload shape.
//
// OK and NG are intercepted first: they answer any command. Set
// commands otherwise resolve to OKResponse, except SetFrequency,
// whose reply may instead echo the new frequency.
func ParseResponse(frame Frame, cmd Command) (Response, error) {
	if frame.IsOK() {
		return OKResponse{}, nil
	}
	if frame.IsNG() {
		return NGResponse{}, nil
	}

	switch c := cmd.(type) {
	case ReadFrequency:
		return parseFrequencyResponse(frame)
	case SetFrequency:
		if frame.Command == CmdSetFreq || frame.Command == CmdReadFreq {
			return parseFrequencyResponse(frame)
		}
		return nil, fmt.Errorf("unexpected reply %#02x to set frequency: %w", frame.Command, ErrInvalidFrame)
	case ReadMode:
		return parseModeResponse(frame)
	case ReadLevel:
		value, err := parseLevelPayload(frame, c.Sub)
		if err != nil {
			return nil, err
		}
		return LevelResponse{Sub: c.Sub, Value: value}, nil
	case ReadMeter:
		value, err := parseLevelPayload(frame, c.Sub)
		if err != nil {
			return nil, err
		}
		return MeterResponse{Sub: c.Sub, Value: value}, nil
	case ReadTransceiverID:
		if !frame.HasSub {
			return nil, fmt.Errorf("transceiver ID reply without ID byte: %w", ErrInvalidFrame)
		}
		return TransceiverIDResponse{ID: frame.Sub}, nil
	case ReadVarious:
		return parseVariousResponse(frame, c.Sub)
	case ReadDuplex:
		if !frame.HasSub {
			return nil, fmt.Errorf("duplex reply without direction byte: %w", ErrInvalidFrame)
		}
		return DuplexResponse{Direction: frame.Sub}, nil
	case ReadOffset:
		return parseOffsetResponse(frame)
	case ReadTone:
		return parseToneResponse(frame, c.Sub)
	case ReadGPSPosition:
		return parseGPSResponse(frame)
	case SetMode, SelectVFO, SetLevel, PowerOn, PowerOff, SetVarious,
		SetDuplex, SetOffset, SetTone, SetDTCS:
		return OKResponse{}, nil
	default:
		return nil, fmt.Errorf("no decoder for command %T: %w", cmd, ErrInvalidFrame)
	}
}

// frequency and offset replies count the sub-command byte as the first
// BCD byte of the payload.
func framePayload(frame Frame) []byte {
	if !frame.HasSub {
		return frame.Data
	}
	payload := make([]byte, 0, 1+len(frame.Data))
	payload = append(payload, frame.Sub)
	return append(payload, frame.Data...)
}

func parseFrequencyResponse(frame Frame) (Response, error) {
	payload := framePayload(frame)
	if len(payload) != 5 {
		return nil, fmt.Errorf("frequency reply payload is %d bytes, want 5: %w", len(payload), ErrInvalidFrame)
	}
	freq, err := FrequencyFromBytes(payload)
	if err != nil {
		return nil, err
	}
	return FrequencyResponse{Freq: freq}, nil
}

// Mode replies put the mode byte in the sub-command slot and the
// filter byte as the first data byte.
func parseModeResponse(frame Frame) (Response, error) {
	if !frame.HasSub || len(frame.Data) < 1 {
		return nil, fmt.Errorf("mode reply too short: %w", ErrInvalidFrame)
	}
	mode, err := ModeFromBytes(frame.Sub, frame.Data[0])
	if err != nil {
		return nil, err
	}
	return ModeResponse{Mode: mode}, nil
}

// Level and meter replies share the 2-byte big-endian BCD shape.
func parseLevelPayload(frame Frame, expectedSub byte) (uint16, error) {
	if !frame.HasSub || frame.Sub != expectedSub {
		return 0, fmt.Errorf("level reply sub-command mismatch: %w", ErrInvalidFrame)
	}
	if len(frame.Data) != 2 {
		return 0, fmt.Errorf("level reply data is %d bytes, want 2: %w", len(frame.Data), ErrInvalidFrame)
	}
	value, err := bcd.DecodeBE(frame.Data)
	if err != nil {
		return 0, err
	}
	return uint16(value), nil
}

func parseVariousResponse(frame Frame, expectedSub byte) (Response, error) {
	if !frame.HasSub || frame.Sub != expectedSub {
		return nil, fmt.Errorf("various reply sub-command mismatch: %w", ErrInvalidFrame)
	}
	if len(frame.Data) < 1 {
		return nil, fmt.Errorf("various reply without value byte: %w", ErrInvalidFrame)
	}
	return VariousResponse{Sub: expectedSub, Value: frame.Data[0]}, nil
}

func parseOffsetResponse(frame Frame) (Response, error) {
	payload := framePayload(frame)
	if len(payload) != 3 {
		return nil, fmt.Errorf("offset reply payload is %d bytes, want 3: %w", len(payload), ErrInvalidFrame)
	}
	// LE BCD decode gives units of 100 Hz.
	raw, err := bcd.DecodeLE(payload)
	if err != nil {
		return nil, err
	}
	freq, err := FrequencyFromHz(raw * 100)
	if err != nil {
		return nil, err
	}
	return OffsetResponse{Freq: freq}, nil
}

// Tone and DTCS replies share a 3-data-byte shape; the sub-command
// picks the decoding.
func parseToneResponse(frame Frame, expectedSub byte) (Response, error) {
	if !frame.HasSub || frame.Sub != expectedSub {
		return nil, fmt.Errorf("tone reply sub-command mismatch: %w", ErrInvalidFrame)
	}
	if len(frame.Data) != 3 {
		return nil, fmt.Errorf("tone reply data is %d bytes, want 3: %w", len(frame.Data), ErrInvalidFrame)
	}

	switch expectedSub {
	case ToneSubTx, ToneSubRx:
		ht, err := bcd.DecodeByte(frame.Data[1])
		if err != nil {
			return nil, err
		}
		ut, err := bcd.DecodeByte(frame.Data[2])
		if err != nil {
			return nil, err
		}
		return ToneFrequencyResponse{Sub: expectedSub, Tenths: uint16(ht)*100 + uint16(ut)}, nil
	case ToneSubDTCS:
		first, err := bcd.DecodeByte(frame.Data[1])
		if err != nil {
			return nil, err
		}
		rest, err := bcd.DecodeByte(frame.Data[2])
		if err != nil {
			return nil, err
		}
		return DTCSResponse{
			TxPolarity: frame.Data[0] >> 4 & 0x0F,
			RxPolarity: frame.Data[0] & 0x0F,
			Code:       uint16(first)*100 + uint16(rest),
		}, nil
	default:
		return nil, fmt.Errorf("unknown tone sub-command %#02x: %w", expectedSub, ErrInvalidFrame)
	}
}

func parseGPSResponse(frame Frame) (Response, error) {
	if !frame.HasSub || frame.Sub != 0x00 {
		return nil, fmt.Errorf("GPS reply sub-command mismatch: %w", ErrInvalidFrame)
	}
	if len(frame.Data) != 27 {
		return nil, fmt.Errorf("GPS reply data is %d bytes, want 27: %w", len(frame.Data), ErrInvalidFrame)
	}
	return GPSResponse{Raw: decodeGPSData(frame.Data)}, nil
}
