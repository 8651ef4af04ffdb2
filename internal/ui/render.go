package ui

import (
	"fmt"
	"strings"

	"github.com/kc3vo/civctl/internal/poller"
	"github.com/kc3vo/civctl/internal/protocol"
)

// meterCells is the width of a rendered meter bar.
const meterCells = 14

// FormatFrequency renders a value in Hz with dotted MHz/kHz/Hz
// groups, e.g. 438100000 becomes "438.100.000".
func FormatFrequency(hz uint64) string {
	mhz := hz / 1_000_000
	khz := hz % 1_000_000 / 1_000
	h := hz % 1_000
	return fmt.Sprintf("%3d.%03d.%03d", mhz, khz, h)
}

// meterFill maps a raw value onto a cell count, rounding to nearest.
func meterFill(value, max uint16, cells int) int {
	if max == 0 {
		return 0
	}
	filled := int((uint32(value)*uint32(cells) + uint32(max)/2) / uint32(max))
	if filled > cells {
		filled = cells
	}
	return filled
}

// Meter renders a labelled bar for a raw value on a 0..max scale. A
// nil value renders an empty bar with dashes in place of the
// percentage.
func Meter(label string, value *uint16, max uint16) string {
	filled := 0
	suffix := " ---%"
	if value != nil {
		filled = meterFill(*value, max, meterCells)
		suffix = fmt.Sprintf(" %3d%%", uint32(*value)*100/uint32(max))
	}

	var bar strings.Builder
	bar.WriteString(BarFilledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(BarEmptyStyle.Render(strings.Repeat("░", meterCells-filled)))

	return fmt.Sprintf("%s[%s]%s", LabelStyle.Render(label+":"), bar.String(), suffix)
}

// duplexLabel renders the repeater shift direction.
func duplexLabel(direction byte) string {
	switch direction {
	case protocol.DuplexMinus:
		return "DUP-"
	case protocol.DuplexPlus:
		return "DUP+"
	default:
		return "SIMP"
	}
}

// toneSummary renders the tone squelch settings relevant to the
// current tone mode. Carrier squelch renders nothing.
func toneSummary(s poller.VfoState) string {
	if s.ToneMode == nil {
		return ""
	}
	var parts []string
	switch s.ToneMode.TxType() {
	case protocol.ToneTPL:
		if s.TxTone != nil {
			parts = append(parts, fmt.Sprintf("T:%.1f", float64(*s.TxTone)/10))
		}
	case protocol.ToneDPL:
		if s.DTCS != nil {
			parts = append(parts, fmt.Sprintf("D:%03d", s.DTCS.Code))
		}
	}
	switch s.ToneMode.RxType() {
	case protocol.ToneTPL:
		if s.RxTone != nil {
			parts = append(parts, fmt.Sprintf("R:%.1f", float64(*s.RxTone)/10))
		}
	case protocol.ToneDPL:
		if s.DTCS != nil && s.ToneMode.TxType() != protocol.ToneDPL {
			parts = append(parts, fmt.Sprintf("D:%03d", s.DTCS.Code))
		}
	}
	return strings.Join(parts, " ")
}

// VfoRow renders one VFO's summary line. The active VFO's label is
// highlighted.
func VfoRow(name string, s poller.VfoState, active bool) string {
	label := " " + name + " "
	if active {
		label = ActiveVfoStyle.Render(label)
	} else {
		label = LabelStyle.Render(label)
	}

	freq := "---.---.---"
	if s.Frequency != nil {
		freq = FormatFrequency(s.Frequency.Hz())
	}

	mode := "----"
	if s.Mode != nil {
		mode = fmt.Sprintf("%-4s", s.Mode.String())
	}

	parts := []string{label, ValueStyle.Render(freq), mode}

	if s.Duplex != nil {
		d := duplexLabel(*s.Duplex)
		if *s.Duplex != protocol.DuplexSimplex && s.Offset != nil {
			d += fmt.Sprintf(" %.1f", s.Offset.MHz())
		}
		parts = append(parts, d)
	}

	if tone := toneSummary(s); tone != "" {
		parts = append(parts, tone)
	}

	if s.RFPower != nil {
		parts = append(parts, fmt.Sprintf("PWR:%d", *s.RFPower))
	}

	return strings.Join(parts, "  ")
}

// Throughput renders the link utilisation line. baud is the serial
// bit rate; tx and rx are measured bits per second.
func Throughput(baud int, tx, rx uint64) string {
	var totalPct, txPct, rxPct uint64
	if baud > 0 {
		b := uint64(baud)
		totalPct = (tx + rx) * 100 / b
		txPct = tx * 100 / b
		rxPct = rx * 100 / b
	}
	return fmt.Sprintf("%s %d (%3d%%)  %s  %s",
		LabelStyle.Render("Baud"), baud, totalPct,
		TxRateStyle.Render(fmt.Sprintf("Tx: %5d bits (%2d%%)", tx, txPct)),
		RxRateStyle.Render(fmt.Sprintf("Rx: %5d bits (%2d%%)", rx, rxPct)),
	)
}

// StatusReport renders a full snapshot: meters row, both VFO rows,
// and the throughput line.
func StatusReport(state poller.RadioState, baud int) string {
	meters := strings.Join([]string{
		Meter("S", state.SMeter, 255),
		Meter("Vol", state.AFLevel, 255),
		Meter("SQL", state.Squelch, 255),
	}, "  ")

	lines := []string{
		meters,
		VfoRow("A", state.VfoA, state.ActiveVfo == poller.VfoA),
		VfoRow("B", state.VfoB, state.ActiveVfo == poller.VfoB),
		Throughput(baud, state.TxBitsPerSec, state.RxBitsPerSec),
	}
	return strings.Join(lines, "\n")
}
