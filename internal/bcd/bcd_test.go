package bcd

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeByte(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0x00, 0},
		{0x09, 9},
		{0x10, 10},
		{0x45, 45},
		{0x99, 99},
	}

	for _, tt := range tests {
		got, err := DecodeByte(tt.in)
		if err != nil {
			t.Errorf("DecodeByte(%#02x) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeByte(%#02x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeByteInvalid(t *testing.T) {
	for _, in := range []uint8{0x0A, 0xA0, 0xAF, 0xF0, 0xFF} {
		_, err := DecodeByte(in)
		if err == nil {
			t.Errorf("DecodeByte(%#02x) should fail", in)
			continue
		}
		var bcdErr *InvalidError
		if !errors.As(err, &bcdErr) {
			t.Errorf("DecodeByte(%#02x) error type = %T, want *InvalidError", in, err)
		} else if bcdErr.Value != in {
			t.Errorf("InvalidError.Value = %#02x, want %#02x", bcdErr.Value, in)
		}
	}
}

func TestDecodeByteAllValidValues(t *testing.T) {
	// Every byte with both nibbles <= 9 must decode and round-trip.
	for b := 0; b <= 0xFF; b++ {
		in := uint8(b)
		high := in >> 4
		low := in & 0x0F

		v, err := DecodeByte(in)
		if high > 9 || low > 9 {
			if err == nil {
				t.Errorf("DecodeByte(%#02x) should fail", in)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeByte(%#02x) error: %v", in, err)
			continue
		}
		back, err := EncodeByte(v)
		if err != nil {
			t.Errorf("EncodeByte(%d) error: %v", v, err)
			continue
		}
		if back != in {
			t.Errorf("round-trip %#02x -> %d -> %#02x", in, v, back)
		}
	}
}

func TestEncodeByte(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 0x00},
		{9, 0x09},
		{10, 0x10},
		{45, 0x45},
		{99, 0x99},
	}

	for _, tt := range tests {
		got, err := EncodeByte(tt.in)
		if err != nil {
			t.Errorf("EncodeByte(%d) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EncodeByte(%d) = %#02x, want %#02x", tt.in, got, tt.want)
		}
	}

	if _, err := EncodeByte(100); err == nil {
		t.Error("EncodeByte(100) should fail")
	}
}

func TestDecodeLE(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint64
	}{
		{"vhf frequency", []byte{0x00, 0x00, 0x00, 0x45, 0x01}, 145_000_000},
		{"uhf frequency", []byte{0x00, 0x00, 0x25, 0x30, 0x04}, 430_250_000},
		{"zero", []byte{0x00, 0x00}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLE(tt.in)
			if err != nil {
				t.Fatalf("DecodeLE(%x) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DecodeLE(%x) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeLE(t *testing.T) {
	got, err := EncodeLE(145_000_000, 5)
	if err != nil {
		t.Fatalf("EncodeLE error: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x45, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeLE(145000000, 5) = %x, want %x", got, want)
	}
}

func TestDecodeBE(t *testing.T) {
	got, err := DecodeBE([]byte{0x01, 0x28})
	if err != nil {
		t.Fatalf("DecodeBE error: %v", err)
	}
	if got != 128 {
		t.Errorf("DecodeBE([0x01, 0x28]) = %d, want 128", got)
	}

	got, err = DecodeBE([]byte{0x02, 0x55})
	if err != nil {
		t.Fatalf("DecodeBE error: %v", err)
	}
	if got != 255 {
		t.Errorf("DecodeBE([0x02, 0x55]) = %d, want 255", got)
	}
}

func TestEncodeBE(t *testing.T) {
	got, err := EncodeBE(128, 2)
	if err != nil {
		t.Fatalf("EncodeBE error: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x28}) {
		t.Errorf("EncodeBE(128, 2) = %x, want 0128", got)
	}
}

func TestRoundTripLE(t *testing.T) {
	for _, v := range []uint64{0, 1, 100, 12345, 145_000_000, 9_999_999_999} {
		enc, err := EncodeLE(v, 5)
		if err != nil {
			t.Fatalf("EncodeLE(%d) error: %v", v, err)
		}
		dec, err := DecodeLE(enc)
		if err != nil {
			t.Fatalf("DecodeLE(%x) error: %v", enc, err)
		}
		if dec != v {
			t.Errorf("round-trip %d -> %x -> %d", v, enc, dec)
		}
	}
}

func TestRoundTripBE(t *testing.T) {
	for _, v := range []uint64{0, 1, 50, 128, 255} {
		enc, err := EncodeBE(v, 2)
		if err != nil {
			t.Fatalf("EncodeBE(%d) error: %v", v, err)
		}
		dec, err := DecodeBE(enc)
		if err != nil {
			t.Fatalf("DecodeBE(%x) error: %v", enc, err)
		}
		if dec != v {
			t.Errorf("round-trip %d -> %x -> %d", v, enc, dec)
		}
	}
}
