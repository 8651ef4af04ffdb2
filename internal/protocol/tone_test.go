package protocol

import "testing"

func TestToneModeTypes(t *testing.T) {
	tests := []struct {
		mode ToneMode
		tx   ToneType
		rx   ToneType
	}{
		{0x00, ToneCSQ, ToneCSQ},
		{0x01, ToneTPL, ToneCSQ},
		{0x02, ToneCSQ, ToneTPL},
		{0x03, ToneCSQ, ToneDPL},
		{0x04, ToneCSQ, ToneTPL},
		{0x05, ToneCSQ, ToneDPL},
		{0x06, ToneDPL, ToneCSQ},
		{0x07, ToneDPL, ToneDPL},
		{0x08, ToneDPL, ToneTPL},
		{0x09, ToneTPL, ToneTPL},
	}
	for _, tc := range tests {
		if got := tc.mode.TxType(); got != tc.tx {
			t.Errorf("ToneMode(%#02x).TxType() = %v, want %v", byte(tc.mode), got, tc.tx)
		}
		if got := tc.mode.RxType(); got != tc.rx {
			t.Errorf("ToneMode(%#02x).RxType() = %v, want %v", byte(tc.mode), got, tc.rx)
		}
	}
}

func TestToneModeIsValid(t *testing.T) {
	for m := ToneMode(0); m <= MaxToneMode; m++ {
		if !m.IsValid() {
			t.Errorf("ToneMode(%#02x).IsValid() = false, want true", byte(m))
		}
	}
	if ToneMode(0x0A).IsValid() {
		t.Error("ToneMode(0x0a).IsValid() = true, want false")
	}
}

func TestCombineToneTypes(t *testing.T) {
	tests := []struct {
		name string
		tx   ToneType
		rx   ToneType
		want ToneMode
	}{
		{"carrier squelch both ways", ToneCSQ, ToneCSQ, 0x00},
		{"tone on transmit only", ToneTPL, ToneCSQ, 0x01},
		{"tone squelch on receive only", ToneCSQ, ToneTPL, 0x02},
		{"digital squelch on receive only", ToneCSQ, ToneDPL, 0x03},
		{"digital code on transmit only", ToneDPL, ToneCSQ, 0x06},
		{"digital both ways", ToneDPL, ToneDPL, 0x07},
		{"digital transmit, tone receive", ToneDPL, ToneTPL, 0x08},
		{"tone both ways", ToneTPL, ToneTPL, 0x09},
		// No code point exists for a TPL transmit with a DPL
		// receive; that pair falls back to tone both ways.
		{"tone transmit, digital receive falls back", ToneTPL, ToneDPL, 0x09},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CombineToneTypes(tc.tx, tc.rx)
			if got != tc.want {
				t.Errorf("CombineToneTypes(%v, %v) = %#02x, want %#02x", tc.tx, tc.rx, byte(got), byte(tc.want))
			}
		})
	}
}

func TestCombineToneTypesRoundTrip(t *testing.T) {
	// Every code whose (Tx, Rx) pair has a direct code point must
	// survive a decode/re-encode cycle. 0x04 and 0x05 share their
	// pairs with 0x02 and 0x03 and re-encode to those instead.
	for _, m := range []ToneMode{0x00, 0x01, 0x02, 0x03, 0x06, 0x07, 0x08, 0x09} {
		if got := CombineToneTypes(m.TxType(), m.RxType()); got != m {
			t.Errorf("CombineToneTypes round trip of %#02x = %#02x", byte(m), byte(got))
		}
	}
}

func TestToneModeString(t *testing.T) {
	tests := []struct {
		mode ToneMode
		want string
	}{
		{0x00, "CSQ/CSQ"},
		{0x01, "TPL/CSQ"},
		{0x07, "DPL/DPL"},
		{0x09, "TPL/TPL"},
		{0x2A, "ToneMode(0x2a)"},
	}
	for _, tc := range tests {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("ToneMode(%#02x).String() = %q, want %q", byte(tc.mode), got, tc.want)
		}
	}
}
