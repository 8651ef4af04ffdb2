package protocol

import "github.com/kc3vo/civctl/internal/bcd"

// CI-V command bytes
const (
	CmdReadFreq   = 0x03 // read the displayed frequency
	CmdReadMode   = 0x04 // read the operating mode and filter
	CmdSetFreq    = 0x05 // set the operating frequency
	CmdSetMode    = 0x06 // set the operating mode and filter
	CmdVFO        = 0x07 // VFO/band selection
	CmdReadOffset = 0x0C // read duplex offset frequency
	CmdSetOffset  = 0x0D // set duplex offset frequency
	CmdDuplex     = 0x0F // read/set duplex direction
	CmdLevel      = 0x14 // read/write level settings
	CmdMeter      = 0x15 // read S-meter / power meter
	CmdVarious    = 0x16 // read/write various function settings
	CmdPower      = 0x18 // power on/off
	CmdReadID     = 0x19 // read transceiver ID
	CmdTone       = 0x1B // tone/DTCS frequency and code settings
	CmdGPS        = 0x23 // read GPS position data
)

// Sub-commands for the level command (0x14)
const (
	LevelAF      = 0x01 // AF output level (volume)
	LevelRFGain  = 0x02 // RF gain
	LevelSquelch = 0x03 // squelch
	LevelRFPower = 0x0A // RF output power
)

// Sub-commands for the meter command (0x15)
const (
	MeterS     = 0x02 // S-meter
	MeterPower = 0x11 // power meter
)

// Sub-command for the various-function command (0x16)
const (
	VariousToneSquelch = 0x5D // combined tone/squelch function, values 0x00-0x09
)

// Sub-commands for the tone command (0x1B)
const (
	ToneSubTx   = 0x00 // repeater (Tx) tone frequency
	ToneSubRx   = 0x01 // TSQL (Rx) tone frequency
	ToneSubDTCS = 0x02 // DTCS code and polarity
)

// Sub-commands for the VFO command (0x07). The ID-52 family uses
// 0xD0/0xD1 for A/B band selection; HF rigs use 0x00/0x01. The session
// takes the values from its configuration.
const (
	VFOSubA = 0xD0
	VFOSubB = 0xD1
)

// Sub-commands for the power command (0x18)
const (
	PowerSubOff = 0x00
	PowerSubOn  = 0x01
)

// Duplex direction values (carried in the sub-command byte)
const (
	DuplexSimplex = 0x10
	DuplexMinus   = 0x11
	DuplexPlus    = 0x12
)

// A Command is a typed request to the radio. Frame builds the wire
// frame for the given destination (radio) and source (controller)
// addresses. CommandByte and SubCommandByte let the session know what
// reply to expect without re-deriving it from the frame.
type Command interface {
	Frame(dst, src byte) (Frame, error)
	CommandByte() byte
	SubCommandByte() (byte, bool)
}

// ReadFrequency reads the currently displayed frequency.
type ReadFrequency struct{}

func (ReadFrequency) Frame(dst, src byte) (Frame, error) {
	return NewFrame(dst, src, CmdReadFreq, nil), nil
}
func (ReadFrequency) CommandByte() byte            { return CmdReadFreq }
func (ReadFrequency) SubCommandByte() (byte, bool) { return 0, false }

// SetFrequency sets the operating frequency.
type SetFrequency struct {
	Freq Frequency
}

func (c SetFrequency) Frame(dst, src byte) (Frame, error) {
	data, err := c.Freq.Bytes()
	if err != nil {
		return Frame{}, err
	}
	return NewFrame(dst, src, CmdSetFreq, data), nil
}
func (SetFrequency) CommandByte() byte            { return CmdSetFreq }
func (SetFrequency) SubCommandByte() (byte, bool) { return 0, false }

// ReadMode reads the current operating mode and filter.
type ReadMode struct{}

func (ReadMode) Frame(dst, src byte) (Frame, error) {
	return NewFrame(dst, src, CmdReadMode, nil), nil
}
func (ReadMode) CommandByte() byte            { return CmdReadMode }
func (ReadMode) SubCommandByte() (byte, bool) { return 0, false }

// SetMode sets the operating mode and filter.
type SetMode struct {
	Mode Mode
}

func (c SetMode) Frame(dst, src byte) (Frame, error) {
	m, f := c.Mode.Bytes()
	return NewFrame(dst, src, CmdSetMode, []byte{m, f}), nil
}
func (SetMode) CommandByte() byte            { return CmdSetMode }
func (SetMode) SubCommandByte() (byte, bool) { return 0, false }

// SelectVFO selects a VFO/band. Sub is the device-family-specific
// selector value (e.g. VFOSubA/VFOSubB on the ID-52 family).
type SelectVFO struct {
	Sub byte
}

func (c SelectVFO) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdVFO, c.Sub, nil), nil
}
func (c SelectVFO) CommandByte() byte            { return CmdVFO }
func (c SelectVFO) SubCommandByte() (byte, bool) { return c.Sub, true }

// ReadLevel reads a level setting (LevelAF, LevelSquelch, ...).
type ReadLevel struct {
	Sub byte
}

func (c ReadLevel) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdLevel, c.Sub, nil), nil
}
func (c ReadLevel) CommandByte() byte            { return CmdLevel }
func (c ReadLevel) SubCommandByte() (byte, bool) { return c.Sub, true }

// SetLevel writes a level setting. Value is the raw 0-255 scale,
// encoded as 2-byte big-endian BCD.
type SetLevel struct {
	Sub   byte
	Value uint16
}

func (c SetLevel) Frame(dst, src byte) (Frame, error) {
	data, err := bcd.EncodeBE(uint64(c.Value), 2)
	if err != nil {
		return Frame{}, err
	}
	return NewFrameSub(dst, src, CmdLevel, c.Sub, data), nil
}
func (c SetLevel) CommandByte() byte            { return CmdLevel }
func (c SetLevel) SubCommandByte() (byte, bool) { return c.Sub, true }

// ReadMeter reads a meter value (MeterS, MeterPower).
type ReadMeter struct {
	Sub byte
}

func (c ReadMeter) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdMeter, c.Sub, nil), nil
}
func (c ReadMeter) CommandByte() byte            { return CmdMeter }
func (c ReadMeter) SubCommandByte() (byte, bool) { return c.Sub, true }

// PowerOn powers the radio on.
type PowerOn struct{}

func (PowerOn) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdPower, PowerSubOn, nil), nil
}
func (PowerOn) CommandByte() byte            { return CmdPower }
func (PowerOn) SubCommandByte() (byte, bool) { return PowerSubOn, true }

// PowerOff powers the radio off.
type PowerOff struct{}

func (PowerOff) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdPower, PowerSubOff, nil), nil
}
func (PowerOff) CommandByte() byte            { return CmdPower }
func (PowerOff) SubCommandByte() (byte, bool) { return PowerSubOff, true }

// ReadTransceiverID reads the transceiver's CI-V ID byte.
type ReadTransceiverID struct{}

func (ReadTransceiverID) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdReadID, 0x00, nil), nil
}
func (ReadTransceiverID) CommandByte() byte            { return CmdReadID }
func (ReadTransceiverID) SubCommandByte() (byte, bool) { return 0x00, true }

// ReadVarious reads a various-function setting (e.g. VariousToneSquelch).
type ReadVarious struct {
	Sub byte
}

func (c ReadVarious) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdVarious, c.Sub, nil), nil
}
func (c ReadVarious) CommandByte() byte            { return CmdVarious }
func (c ReadVarious) SubCommandByte() (byte, bool) { return c.Sub, true }

// SetVarious writes a various-function setting. Value is a single raw
// byte, not BCD.
type SetVarious struct {
	Sub   byte
	Value byte
}

func (c SetVarious) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdVarious, c.Sub, []byte{c.Value}), nil
}
func (c SetVarious) CommandByte() byte            { return CmdVarious }
func (c SetVarious) SubCommandByte() (byte, bool) { return c.Sub, true }

// ReadDuplex reads the duplex direction.
type ReadDuplex struct{}

func (ReadDuplex) Frame(dst, src byte) (Frame, error) {
	return NewFrame(dst, src, CmdDuplex, nil), nil
}
func (ReadDuplex) CommandByte() byte            { return CmdDuplex }
func (ReadDuplex) SubCommandByte() (byte, bool) { return 0, false }

// SetDuplex sets the duplex direction (DuplexSimplex, DuplexMinus,
// DuplexPlus). The direction rides in the sub-command byte.
type SetDuplex struct {
	Direction byte
}

func (c SetDuplex) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdDuplex, c.Direction, nil), nil
}
func (c SetDuplex) CommandByte() byte            { return CmdDuplex }
func (c SetDuplex) SubCommandByte() (byte, bool) { return c.Direction, true }

// ReadOffset reads the duplex offset frequency.
type ReadOffset struct{}

func (ReadOffset) Frame(dst, src byte) (Frame, error) {
	return NewFrame(dst, src, CmdReadOffset, nil), nil
}
func (ReadOffset) CommandByte() byte            { return CmdReadOffset }
func (ReadOffset) SubCommandByte() (byte, bool) { return 0, false }

// SetOffset sets the duplex offset frequency. Hz is encoded as 3-byte
// little-endian BCD at 100 Hz resolution.
type SetOffset struct {
	Hz uint64
}

func (c SetOffset) Frame(dst, src byte) (Frame, error) {
	data, err := bcd.EncodeLE(c.Hz/100, 3)
	if err != nil {
		return Frame{}, err
	}
	return NewFrame(dst, src, CmdSetOffset, data), nil
}
func (SetOffset) CommandByte() byte            { return CmdSetOffset }
func (SetOffset) SubCommandByte() (byte, bool) { return 0, false }

// ReadTone reads a tone/DTCS setting (ToneSubTx, ToneSubRx, ToneSubDTCS).
type ReadTone struct {
	Sub byte
}

func (c ReadTone) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdTone, c.Sub, nil), nil
}
func (c ReadTone) CommandByte() byte            { return CmdTone }
func (c ReadTone) SubCommandByte() (byte, bool) { return c.Sub, true }

// SetTone writes a tone frequency for ToneSubTx or ToneSubRx. Tenths
// is the frequency in tenths of Hz (1413 = 141.3 Hz), encoded as
// [0x00, BCD(hundreds·tens), BCD(units·tenths)].
type SetTone struct {
	Sub    byte
	Tenths uint16
}

func (c SetTone) Frame(dst, src byte) (Frame, error) {
	ht, err := bcd.EncodeByte(uint8(c.Tenths / 100 % 100))
	if err != nil {
		return Frame{}, err
	}
	ut, err := bcd.EncodeByte(uint8(c.Tenths % 100))
	if err != nil {
		return Frame{}, err
	}
	return NewFrameSub(dst, src, CmdTone, c.Sub, []byte{0x00, ht, ut}), nil
}
func (c SetTone) CommandByte() byte            { return CmdTone }
func (c SetTone) SubCommandByte() (byte, bool) { return c.Sub, true }

// SetDTCS writes the DTCS code and per-direction polarity. Code is a
// 3-digit value; polarity 0 = normal, 1 = reverse. Encoded as
// [(txPol<<4)|rxPol, BCD(code/100), BCD(code%100)].
type SetDTCS struct {
	TxPolarity byte
	RxPolarity byte
	Code       uint16
}

func (c SetDTCS) Frame(dst, src byte) (Frame, error) {
	polarity := c.TxPolarity<<4 | c.RxPolarity&0x0F
	first, err := bcd.EncodeByte(uint8(c.Code / 100 % 100))
	if err != nil {
		return Frame{}, err
	}
	rest, err := bcd.EncodeByte(uint8(c.Code % 100))
	if err != nil {
		return Frame{}, err
	}
	return NewFrameSub(dst, src, CmdTone, ToneSubDTCS, []byte{polarity, first, rest}), nil
}
func (SetDTCS) CommandByte() byte            { return CmdTone }
func (SetDTCS) SubCommandByte() (byte, bool) { return ToneSubDTCS, true }

// ReadGPSPosition reads the radio's GPS fix (command 0x23, sub 0x00).
type ReadGPSPosition struct{}

func (ReadGPSPosition) Frame(dst, src byte) (Frame, error) {
	return NewFrameSub(dst, src, CmdGPS, 0x00, nil), nil
}
func (ReadGPSPosition) CommandByte() byte            { return CmdGPS }
func (ReadGPSPosition) SubCommandByte() (byte, bool) { return 0x00, true }
