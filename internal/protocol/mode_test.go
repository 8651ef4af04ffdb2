package protocol

import (
	"errors"
	"testing"
)

func TestModeBytes(t *testing.T) {
	tests := []struct {
		mode Mode
		m, f byte
	}{
		{ModeFM, 0x05, 0x01},
		{ModeFMN, 0x05, 0x02},
		{ModeAM, 0x02, 0x01},
		{ModeAMN, 0x02, 0x02},
		{ModeDV, 0x17, 0x01},
	}

	for _, tt := range tests {
		m, f := tt.mode.Bytes()
		if m != tt.m || f != tt.f {
			t.Errorf("%v.Bytes() = (%#02x, %#02x), want (%#02x, %#02x)", tt.mode, m, f, tt.m, tt.f)
		}
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeFM, ModeFMN, ModeAM, ModeAMN, ModeDV} {
		m, f := mode.Bytes()
		got, err := ModeFromBytes(m, f)
		if err != nil {
			t.Fatalf("ModeFromBytes(%#02x, %#02x) error: %v", m, f, err)
		}
		if got != mode {
			t.Errorf("round-trip %v -> (%#02x, %#02x) -> %v", mode, m, f, got)
		}
	}
}

func TestModeDVWildcardFilter(t *testing.T) {
	// DV accepts any filter byte.
	for _, filter := range []byte{0x00, 0x01, 0x02, 0xFF} {
		got, err := ModeFromBytes(0x17, filter)
		if err != nil {
			t.Fatalf("ModeFromBytes(0x17, %#02x) error: %v", filter, err)
		}
		if got != ModeDV {
			t.Errorf("ModeFromBytes(0x17, %#02x) = %v, want DV", filter, got)
		}
	}
}

func TestModeUnknown(t *testing.T) {
	tests := []struct {
		m, f byte
	}{
		{0xFF, 0x01},
		{0x05, 0x03},
		{0x02, 0x00},
		{0x00, 0x01},
	}

	for _, tt := range tests {
		_, err := ModeFromBytes(tt.m, tt.f)
		var modeErr *UnknownModeError
		if !errors.As(err, &modeErr) {
			t.Errorf("ModeFromBytes(%#02x, %#02x) err = %v, want *UnknownModeError", tt.m, tt.f, err)
		}
	}
}

func TestModeToggleWidth(t *testing.T) {
	tests := []struct {
		in, want Mode
	}{
		{ModeFM, ModeFMN},
		{ModeFMN, ModeFM},
		{ModeAM, ModeAMN},
		{ModeAMN, ModeAM},
		{ModeDV, ModeDV}, // DV has no narrow counterpart
	}

	for _, tt := range tests {
		if got := tt.in.ToggleWidth(); got != tt.want {
			t.Errorf("%v.ToggleWidth() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeFM, "FM"},
		{ModeFMN, "FM-N"},
		{ModeAM, "AM"},
		{ModeAMN, "AM-N"},
		{ModeDV, "DV"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModeFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"FM", ModeFM, false},
		{"fm", ModeFM, false},
		{"FM-N", ModeFMN, false},
		{"fmn", ModeFMN, false},
		{"AM", ModeAM, false},
		{"am-n", ModeAMN, false},
		{"dv", ModeDV, false},
		{"SSB", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ModeFromString(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ModeFromString(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ModeFromString(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ModeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
