package radio

import (
	"errors"
	"testing"
	"time"

	"github.com/kc3vo/civctl/internal/protocol"
)

func TestProbeAcceptsAnyFrameForController(t *testing.T) {
	// The proof-of-rate frame is any well-formed frame addressed to
	// the controller, content irrelevant. Here it is an unrelated
	// frequency notification.
	notification := protocol.NewFrameSub(protocol.AddrController, protocol.AddrRadio,
		protocol.CmdReadFreq, 0x00, []byte{0x00, 0x50, 0x45, 0x01})

	tr := &scriptTransport{chunks: [][]byte{notification.Encode()}}
	r := New(tr, testConfig())

	if err := r.probe(100 * time.Millisecond); err != nil {
		t.Fatalf("probe() error = %v", err)
	}

	// The probe wrote the transceiver ID query.
	wantWire := []byte{0xFE, 0xFE, 0xB4, 0xE0, 0x19, 0x00, 0xFD}
	if string(tr.written) != string(wantWire) {
		t.Errorf("written = % X, want % X", tr.written, wantWire)
	}
}

func TestProbeSkipsEcho(t *testing.T) {
	// Only our own echo comes back: not proof, the wait times out.
	echo := protocol.NewFrameSub(protocol.AddrRadio, protocol.AddrController,
		protocol.CmdReadID, 0x00, nil)

	tr := &scriptTransport{chunks: [][]byte{echo.Encode()}}
	r := New(tr, testConfig())

	if err := r.probe(50 * time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("probe() error = %v, want ErrTimeout", err)
	}
}

func TestProbeTimesOutOnNoise(t *testing.T) {
	// Bytes read at a wrong bit rate never decode as a frame for
	// the controller.
	tr := &scriptTransport{chunks: [][]byte{{0x13, 0x37, 0xA0, 0x55, 0xFF}}}
	r := New(tr, testConfig())

	if err := r.probe(50 * time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("probe() error = %v, want ErrTimeout", err)
	}
}

func TestCandidateBaudOrder(t *testing.T) {
	want := []int{19200, 9600, 4800}
	if len(CandidateBauds) != len(want) {
		t.Fatalf("CandidateBauds = %v, want %v", CandidateBauds, want)
	}
	for i, baud := range want {
		if CandidateBauds[i] != baud {
			t.Errorf("CandidateBauds[%d] = %d, want %d", i, CandidateBauds[i], baud)
		}
	}
}
