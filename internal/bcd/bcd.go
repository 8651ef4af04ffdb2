// Package bcd implements the binary-coded-decimal codec used by the
// CI-V wire protocol.
//
// One BCD byte holds two decimal digits, high nibble first. Multi-byte
// values come in two digit orders: little-endian (least-significant
// digit pair first, used for frequencies and offsets) and big-endian
// (most-significant pair first, used for levels and meters). The output
// width is always explicit; encoding never autosizes.
package bcd

import "fmt"

// InvalidError reports a byte with a non-decimal nibble during decode,
// or a value above 99 during single-byte encode.
type InvalidError struct {
	Value uint8
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid BCD data: %#02x", e.Value)
}

// DecodeByte decodes a single BCD byte into its decimal value (0-99).
func DecodeByte(b uint8) (uint8, error) {
	high := b >> 4
	low := b & 0x0F
	if high > 9 || low > 9 {
		return 0, &InvalidError{Value: b}
	}
	return high*10 + low, nil
}

// EncodeByte encodes a decimal value (0-99) into a single BCD byte.
func EncodeByte(v uint8) (uint8, error) {
	if v > 99 {
		return 0, &InvalidError{Value: v}
	}
	return (v/10)<<4 | (v % 10), nil
}

// DecodeLE decodes a little-endian BCD byte slice into a uint64.
// The least-significant digit pair comes first: [0x00, 0x50, 0x14]
// decodes to 145000 (pairs read right-to-left: 14 50 00).
func DecodeLE(data []byte) (uint64, error) {
	var result uint64
	for i := len(data) - 1; i >= 0; i-- {
		pair, err := DecodeByte(data[i])
		if err != nil {
			return 0, err
		}
		result = result*100 + uint64(pair)
	}
	return result, nil
}

// EncodeLE encodes a value into little-endian BCD, filling exactly n bytes.
func EncodeLE(value uint64, n int) ([]byte, error) {
	result := make([]byte, n)
	remaining := value
	for i := 0; i < n; i++ {
		b, err := EncodeByte(uint8(remaining % 100))
		if err != nil {
			return nil, err
		}
		result[i] = b
		remaining /= 100
	}
	return result, nil
}

// DecodeBE decodes a big-endian BCD byte slice into a uint64.
// The most-significant digit pair comes first: [0x01, 0x28] decodes to 128.
func DecodeBE(data []byte) (uint64, error) {
	var result uint64
	for _, b := range data {
		pair, err := DecodeByte(b)
		if err != nil {
			return 0, err
		}
		result = result*100 + uint64(pair)
	}
	return result, nil
}

// EncodeBE encodes a value into big-endian BCD, filling exactly n bytes.
func EncodeBE(value uint64, n int) ([]byte, error) {
	result := make([]byte, n)
	remaining := value
	for i := n - 1; i >= 0; i-- {
		b, err := EncodeByte(uint8(remaining % 100))
		if err != nil {
			return nil, err
		}
		result[i] = b
		remaining /= 100
	}
	return result, nil
}
