package protocol

import (
	"fmt"
	"strings"
)

// Mode is the operating mode of the radio.
//
// The ID-52 family supports FM, FM-N (narrow), AM, AM-N, and DV
// (D-STAR digital voice). CI-V encodes the mode as a
// (mode byte, filter byte) pair.
type Mode int

const (
	ModeFM Mode = iota // FM (wide)
	ModeFMN            // FM narrow
	ModeAM             // AM (wide)
	ModeAMN            // AM narrow
	ModeDV             // D-STAR digital voice
)

// CI-V mode byte values
const (
	modeByteFM = 0x05
	modeByteAM = 0x02
	modeByteDV = 0x17
)

// CI-V filter byte values
const (
	filterWide   = 0x01
	filterNarrow = 0x02
)

// ModeFromBytes decodes a CI-V (mode, filter) byte pair. DV accepts
// any filter byte; every other combination outside the defined set is
// an UnknownModeError.
func ModeFromBytes(mode, filter byte) (Mode, error) {
	switch {
	case mode == modeByteFM && filter == filterWide:
		return ModeFM, nil
	case mode == modeByteFM && filter == filterNarrow:
		return ModeFMN, nil
	case mode == modeByteAM && filter == filterWide:
		return ModeAM, nil
	case mode == modeByteAM && filter == filterNarrow:
		return ModeAMN, nil
	case mode == modeByteDV:
		return ModeDV, nil
	default:
		return 0, &UnknownModeError{Mode: mode, Filter: filter}
	}
}

// Bytes encodes the mode to its CI-V (mode byte, filter byte) pair.
func (m Mode) Bytes() (byte, byte) {
	switch m {
	case ModeFMN:
		return modeByteFM, filterNarrow
	case ModeAM:
		return modeByteAM, filterWide
	case ModeAMN:
		return modeByteAM, filterNarrow
	case ModeDV:
		return modeByteDV, filterWide
	default:
		return modeByteFM, filterWide
	}
}

// ToggleWidth switches between the wide and narrow variants. DV has no
// narrow counterpart and round-trips to itself.
func (m Mode) ToggleWidth() Mode {
	switch m {
	case ModeFM:
		return ModeFMN
	case ModeFMN:
		return ModeFM
	case ModeAM:
		return ModeAMN
	case ModeAMN:
		return ModeAM
	default:
		return m
	}
}

// IsNarrow reports whether this is a narrow (12.5 kHz) mode.
func (m Mode) IsNarrow() bool {
	return m == ModeFMN || m == ModeAMN
}

func (m Mode) String() string {
	switch m {
	case ModeFM:
		return "FM"
	case ModeFMN:
		return "FM-N"
	case ModeAM:
		return "AM"
	case ModeAMN:
		return "AM-N"
	case ModeDV:
		return "DV"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromString parses a mode name as typed on a command line.
// Matching is case-insensitive and accepts both "FM-N" and "FMN"
// spellings for the narrow modes.
func ModeFromString(s string) (Mode, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "-", "")) {
	case "FM":
		return ModeFM, nil
	case "FMN":
		return ModeFMN, nil
	case "AM":
		return ModeAM, nil
	case "AMN":
		return ModeAMN, nil
	case "DV":
		return ModeDV, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (expected FM, FM-N, AM, AM-N, or DV)", s)
	}
}
