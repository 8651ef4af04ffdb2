package poller

import "github.com/kc3vo/civctl/internal/protocol"

// Vfo identifies one of the transceiver's two VFOs.
type Vfo int

const (
	VfoA Vfo = iota
	VfoB
)

func (v Vfo) String() string {
	if v == VfoB {
		return "B"
	}
	return "A"
}

// Command is a request sent from a frontend to the worker. Commands
// are executed at most one per poll iteration, in the order sent.
type Command interface {
	isCommand()
}

// SetFrequency tunes the active VFO.
type SetFrequency struct {
	Frequency protocol.Frequency
}

// SetMode sets the operating mode of the active VFO.
type SetMode struct {
	Mode protocol.Mode
}

// SetAFLevel sets the AF output level, raw 0-255 scale.
type SetAFLevel struct {
	Value uint16
}

// SetSquelch sets the squelch level, raw 0-255 scale.
type SetSquelch struct {
	Value uint16
}

// SetRFPower sets the RF output power, raw 0-255 scale.
type SetRFPower struct {
	Value uint16
}

// SelectVfo switches the active VFO. Subsequent polls and set
// commands target the newly selected VFO.
type SelectVfo struct {
	Vfo Vfo
}

// SetToneMode sets the tone squelch mode of the active VFO.
type SetToneMode struct {
	Mode protocol.ToneMode
}

// SetTxTone sets the repeater (transmit) tone in tenths of Hz.
type SetTxTone struct {
	Tenths uint16
}

// SetRxTone sets the tone squelch (receive) tone in tenths of Hz.
type SetRxTone struct {
	Tenths uint16
}

// SetDTCS sets the DTCS code and per-direction polarity
// (0 = normal, 1 = reverse).
type SetDTCS struct {
	TxPolarity byte
	RxPolarity byte
	Code       uint16
}

// SetDuplex sets the repeater shift direction
// (protocol.DuplexSimplex, DuplexMinus, DuplexPlus).
type SetDuplex struct {
	Direction byte
}

// SetOffset sets the repeater offset in Hz.
type SetOffset struct {
	Hz uint64
}

// PowerOn wakes the transceiver.
type PowerOn struct{}

// PowerOff shuts the transceiver down.
type PowerOff struct{}

// Quit stops the worker. The worker emits Disconnected and returns.
type Quit struct{}

func (SetFrequency) isCommand() {}
func (SetMode) isCommand()      {}
func (SetAFLevel) isCommand()   {}
func (SetSquelch) isCommand()   {}
func (SetRFPower) isCommand()   {}
func (SelectVfo) isCommand()    {}
func (SetToneMode) isCommand()  {}
func (SetTxTone) isCommand()    {}
func (SetRxTone) isCommand()    {}
func (SetDTCS) isCommand()      {}
func (SetDuplex) isCommand()    {}
func (SetOffset) isCommand()    {}
func (PowerOn) isCommand()      {}
func (PowerOff) isCommand()     {}
func (Quit) isCommand()         {}

// Event is a notification sent from the worker to the frontend.
type Event interface {
	isEvent()
}

// Connected is emitted once, before the first poll iteration.
type Connected struct{}

// Disconnected is emitted when the worker shuts down in response to
// Quit. It is the last event the worker sends.
type Disconnected struct{}

// StateUpdate carries one aggregate snapshot of the radio's state,
// emitted once per poll iteration.
type StateUpdate struct {
	State RadioState
}

// ErrorEvent reports a failed command execution. Polling continues.
type ErrorEvent struct {
	Err error
}

func (Connected) isEvent()    {}
func (Disconnected) isEvent() {}
func (StateUpdate) isEvent()  {}
func (ErrorEvent) isEvent()   {}

// VfoState holds the most recently read settings of one VFO. A nil
// field means the value has not been read yet, or the last read of it
// failed.
type VfoState struct {
	Frequency *protocol.Frequency
	Mode      *protocol.Mode
	RFPower   *uint16
	ToneMode  *protocol.ToneMode
	TxTone    *uint16
	RxTone    *uint16
	DTCS      *protocol.DTCSResponse
	Duplex    *byte
	Offset    *protocol.Frequency
}

// RadioState is the aggregate snapshot carried by StateUpdate. Only
// the active VFO is polled; the other VFO's state is the cache from
// when it was last active.
type RadioState struct {
	ActiveVfo    Vfo
	VfoA         VfoState
	VfoB         VfoState
	SMeter       *uint16
	AFLevel      *uint16
	Squelch      *uint16
	TxBitsPerSec uint64
	RxBitsPerSec uint64
}
