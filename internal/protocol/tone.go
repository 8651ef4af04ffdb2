package protocol

import "fmt"

// ToneType classifies the sub-audible signaling used on one side of a
// channel: carrier squelch (none), CTCSS/TPL tone, or DTCS/DPL code.
type ToneType int

const (
	ToneCSQ ToneType = iota // carrier squelch, no signaling
	ToneTPL                 // CTCSS tone
	ToneDPL                 // DTCS code
)

func (t ToneType) String() string {
	switch t {
	case ToneTPL:
		return "TPL"
	case ToneDPL:
		return "DPL"
	default:
		return "CSQ"
	}
}

// ToneMode is the combined tone/squelch function code reported by the
// various-function command (0x16 sub 0x5D). Values 0x00-0x09 select
// a (Tx signaling, Rx signaling) pair.
type ToneMode byte

// MaxToneMode is the highest defined tone/squelch function code.
const MaxToneMode ToneMode = 0x09

// TxType returns the signaling type applied on transmit.
func (m ToneMode) TxType() ToneType {
	switch m {
	case 0x01, 0x09:
		return ToneTPL
	case 0x06, 0x07, 0x08:
		return ToneDPL
	default:
		return ToneCSQ
	}
}

// RxType returns the signaling type applied on receive.
func (m ToneMode) RxType() ToneType {
	switch m {
	case 0x02, 0x04, 0x08, 0x09:
		return ToneTPL
	case 0x03, 0x05, 0x07:
		return ToneDPL
	default:
		return ToneCSQ
	}
}

// IsValid reports whether the code is within the defined 0x00-0x09 set.
func (m ToneMode) IsValid() bool {
	return m <= MaxToneMode
}

func (m ToneMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("ToneMode(%#02x)", byte(m))
	}
	return fmt.Sprintf("%s/%s", m.TxType(), m.RxType())
}

// CombineToneTypes picks the device code for a (Tx, Rx) signaling
// pair.
//
// The device has no code point for TPL on one side with DPL on the
// other. Those combinations collapse to the TPL/TPL code (0x09),
// matching observed device behavior; this is a documented limitation,
// not a derivation from the protocol reference.
func CombineToneTypes(tx, rx ToneType) ToneMode {
	switch {
	case tx == ToneCSQ && rx == ToneCSQ:
		return 0x00
	case tx == ToneTPL && rx == ToneCSQ:
		return 0x01
	case tx == ToneCSQ && rx == ToneTPL:
		return 0x02
	case tx == ToneCSQ && rx == ToneDPL:
		return 0x03
	case tx == ToneDPL && rx == ToneCSQ:
		return 0x06
	case tx == ToneDPL && rx == ToneDPL:
		return 0x07
	case tx == ToneDPL && rx == ToneTPL:
		return 0x08
	default:
		// TPL/TPL, plus the TPL/DPL mixes with no direct code point.
		return 0x09
	}
}
