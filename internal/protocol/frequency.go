package protocol

import (
	"fmt"
	"math"

	"github.com/kc3vo/civctl/internal/bcd"
)

// MaxFrequencyHz is the largest encodable frequency: 10 BCD digits.
const MaxFrequencyHz = 9_999_999_999

// Frequency is a radio frequency in Hz.
//
// CI-V encodes frequencies as 5 BCD bytes in little-endian digit
// order, giving 10 decimal digits with 1 Hz resolution.
type Frequency uint64

// FrequencyFromHz builds a Frequency from a value in Hz.
func FrequencyFromHz(hz uint64) (Frequency, error) {
	if hz > MaxFrequencyHz {
		return 0, &FrequencyRangeError{Hz: hz}
	}
	return Frequency(hz), nil
}

// FrequencyFromKHz builds a Frequency from a value in kHz, rounded to
// the nearest Hz. Rounding matters: 0.6 MHz has no exact float64
// product in Hz, and truncation would land 1 Hz low.
func FrequencyFromKHz(khz float64) (Frequency, error) {
	return FrequencyFromHz(uint64(math.Round(khz * 1_000)))
}

// FrequencyFromMHz builds a Frequency from a value in MHz, rounded to
// the nearest Hz.
func FrequencyFromMHz(mhz float64) (Frequency, error) {
	return FrequencyFromHz(uint64(math.Round(mhz * 1_000_000)))
}

// Hz returns the frequency in Hz.
func (f Frequency) Hz() uint64 { return uint64(f) }

// KHz returns the frequency in kHz.
func (f Frequency) KHz() float64 { return float64(f) / 1_000 }

// MHz returns the frequency in MHz.
func (f Frequency) MHz() float64 { return float64(f) / 1_000_000 }

// Bytes encodes the frequency to 5 CI-V BCD bytes (little-endian,
// 1 Hz resolution).
func (f Frequency) Bytes() ([]byte, error) {
	if f > MaxFrequencyHz {
		return nil, &FrequencyRangeError{Hz: uint64(f)}
	}
	return bcd.EncodeLE(uint64(f), 5)
}

// FrequencyFromBytes decodes 5 CI-V BCD bytes into a Frequency.
func FrequencyFromBytes(data []byte) (Frequency, error) {
	if len(data) != 5 {
		return 0, ErrInvalidFrame
	}
	hz, err := bcd.DecodeLE(data)
	if err != nil {
		return 0, err
	}
	return FrequencyFromHz(hz)
}

// String formats the frequency as "145.500.000 MHz".
func (f Frequency) String() string {
	mhz := uint64(f) / 1_000_000
	khz := (uint64(f) % 1_000_000) / 1_000
	hz := uint64(f) % 1_000
	return fmt.Sprintf("%d.%03d.%03d MHz", mhz, khz, hz)
}
