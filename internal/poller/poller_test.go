package poller

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kc3vo/civctl/internal/protocol"
)

// fakeSession is an in-memory stand-in for the radio session. Field
// access is locked because the worker reads it from its own goroutine
// while tests mutate it.
type fakeSession struct {
	mu sync.Mutex

	freq     protocol.Frequency
	mode     protocol.Mode
	levels   map[byte]uint16
	meters   map[byte]uint16
	toneMode protocol.ToneMode
	duplex   byte
	offset   protocol.Frequency
	txTone   uint16
	rxTone   uint16
	dtcs     protocol.DTCSResponse
	txBytes  uint64
	rxBytes  uint64

	failFrequency bool
	setErr        error
	selected      []byte
	setFreqs      []protocol.Frequency
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		freq: 145_500_000,
		mode: protocol.ModeFM,
		levels: map[byte]uint16{
			protocol.LevelAF:      80,
			protocol.LevelSquelch: 30,
			protocol.LevelRFPower: 255,
		},
		meters: map[byte]uint16{
			protocol.MeterS: 120,
		},
		toneMode: 0x00,
		duplex:   protocol.DuplexMinus,
		offset:   600_000,
		txTone:   885,
		rxTone:   885,
		dtcs:     protocol.DTCSResponse{Code: 23},
	}
}

func (f *fakeSession) ReadFrequency() (protocol.Frequency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFrequency {
		return 0, errors.New("read failed")
	}
	return f.freq, nil
}

func (f *fakeSession) SetFrequency(v protocol.Frequency) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.freq = v
	f.setFreqs = append(f.setFreqs, v)
	return nil
}

func (f *fakeSession) ReadMode() (protocol.Mode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode, nil
}

func (f *fakeSession) SetMode(m protocol.Mode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
	return f.setErr
}

func (f *fakeSession) SelectVFOA() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, 'A')
	return f.setErr
}

func (f *fakeSession) SelectVFOB() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, 'B')
	return f.setErr
}

func (f *fakeSession) ReadLevel(sub byte) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.levels[sub]
	if !ok {
		return 0, errors.New("read failed")
	}
	return v, nil
}

func (f *fakeSession) SetLevel(sub byte, value uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.levels[sub] = value
	return nil
}

func (f *fakeSession) ReadMeter(sub byte) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.meters[sub]
	if !ok {
		return 0, errors.New("read failed")
	}
	return v, nil
}

func (f *fakeSession) ReadToneMode() (protocol.ToneMode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toneMode, nil
}

func (f *fakeSession) SetToneMode(m protocol.ToneMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toneMode = m
	return f.setErr
}

func (f *fakeSession) ReadTxTone() (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txTone, nil
}

func (f *fakeSession) ReadRxTone() (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rxTone, nil
}

func (f *fakeSession) SetTxTone(tenths uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txTone = tenths
	return f.setErr
}

func (f *fakeSession) SetRxTone(tenths uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rxTone = tenths
	return f.setErr
}

func (f *fakeSession) ReadDTCS() (protocol.DTCSResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dtcs, nil
}

func (f *fakeSession) SetDTCS(txPolarity, rxPolarity byte, code uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dtcs = protocol.DTCSResponse{TxPolarity: txPolarity, RxPolarity: rxPolarity, Code: code}
	return f.setErr
}

func (f *fakeSession) ReadDuplex() (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duplex, nil
}

func (f *fakeSession) SetDuplex(direction byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duplex = direction
	return f.setErr
}

func (f *fakeSession) ReadOffset() (protocol.Frequency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offset, nil
}

func (f *fakeSession) SetOffset(hz uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset = protocol.Frequency(hz)
	return f.setErr
}

func (f *fakeSession) PowerOn() error  { return f.setErr }
func (f *fakeSession) PowerOff() error { return f.setErr }

func (f *fakeSession) TxBytes() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txBytes
}

func (f *fakeSession) RxBytes() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rxBytes
}

func (f *fakeSession) setFrequencyValue(v protocol.Frequency) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freq = v
}

// startWorker runs the poller with a short interval and returns its
// channels plus a stop function that sends Quit and waits for the
// goroutine to finish.
func startWorker(t *testing.T, fake *fakeSession) (chan<- Command, <-chan Event, func()) {
	t.Helper()

	cmds := make(chan Command, 8)
	events := make(chan Event, 256)
	done := make(chan struct{})

	p := New(fake, time.Millisecond)
	go func() {
		defer close(done)
		p.Run(cmds, events)
	}()

	stop := func() {
		cmds <- Quit{}
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop after Quit")
		}
	}
	return cmds, events, stop
}

// nextEvent receives one event or fails the test after a grace period.
func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// waitForUpdate drains events until a StateUpdate satisfies want.
func waitForUpdate(t *testing.T, events <-chan Event, want func(RadioState) bool) RadioState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if up, ok := ev.(StateUpdate); ok && want(up.State) {
				return up.State
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching state update")
		}
	}
}

func TestRunEmitsConnectedBeforePolling(t *testing.T) {
	fake := newFakeSession()
	_, events, stop := startWorker(t, fake)
	defer stop()

	if _, ok := nextEvent(t, events).(Connected); !ok {
		t.Fatal("first event was not Connected")
	}
	if _, ok := nextEvent(t, events).(StateUpdate); !ok {
		t.Fatal("second event was not StateUpdate")
	}
}

func TestStateSnapshotCarriesPolledValues(t *testing.T) {
	fake := newFakeSession()
	_, events, stop := startWorker(t, fake)
	defer stop()

	state := waitForUpdate(t, events, func(s RadioState) bool {
		return s.VfoA.Frequency != nil
	})

	if got := *state.VfoA.Frequency; got != 145_500_000 {
		t.Errorf("frequency = %d, want 145500000", got)
	}
	if state.VfoA.Mode == nil || *state.VfoA.Mode != protocol.ModeFM {
		t.Errorf("mode = %v, want FM", state.VfoA.Mode)
	}
	if state.VfoA.Duplex == nil || *state.VfoA.Duplex != protocol.DuplexMinus {
		t.Errorf("duplex = %v, want minus", state.VfoA.Duplex)
	}
	if state.VfoA.Offset == nil || *state.VfoA.Offset != 600_000 {
		t.Errorf("offset = %v, want 600000", state.VfoA.Offset)
	}
	if state.VfoA.DTCS == nil || state.VfoA.DTCS.Code != 23 {
		t.Errorf("dtcs = %v, want code 023", state.VfoA.DTCS)
	}
	if state.SMeter == nil || *state.SMeter != 120 {
		t.Errorf("s-meter = %v, want 120", state.SMeter)
	}
	if state.AFLevel == nil || *state.AFLevel != 80 {
		t.Errorf("af level = %v, want 80", state.AFLevel)
	}
	if state.Squelch == nil || *state.Squelch != 30 {
		t.Errorf("squelch = %v, want 30", state.Squelch)
	}
	if state.ActiveVfo != VfoA {
		t.Errorf("active vfo = %v, want A", state.ActiveVfo)
	}
}

func TestFailedFieldReadLeavesNil(t *testing.T) {
	fake := newFakeSession()
	fake.failFrequency = true
	_, events, stop := startWorker(t, fake)
	defer stop()

	state := waitForUpdate(t, events, func(s RadioState) bool {
		return s.VfoA.Mode != nil
	})
	if state.VfoA.Frequency != nil {
		t.Errorf("frequency = %v, want nil after failed read", state.VfoA.Frequency)
	}
	t.Logf("snapshot with failed frequency read: mode=%v", *state.VfoA.Mode)
}

func TestSelectVfoRetargetsPollingAndCaches(t *testing.T) {
	fake := newFakeSession()
	cmds, events, stop := startWorker(t, fake)
	defer stop()

	waitForUpdate(t, events, func(s RadioState) bool {
		return s.VfoA.Frequency != nil && *s.VfoA.Frequency == 145_500_000
	})

	fake.setFrequencyValue(430_250_000)
	cmds <- SelectVfo{Vfo: VfoB}

	state := waitForUpdate(t, events, func(s RadioState) bool {
		return s.ActiveVfo == VfoB && s.VfoB.Frequency != nil
	})
	if got := *state.VfoB.Frequency; got != 430_250_000 {
		t.Errorf("VFO B frequency = %d, want 430250000", got)
	}
	if state.VfoA.Frequency == nil || *state.VfoA.Frequency != 145_500_000 {
		t.Errorf("VFO A cache = %v, want 145500000", state.VfoA.Frequency)
	}

	fake.mu.Lock()
	selected := append([]byte(nil), fake.selected...)
	fake.mu.Unlock()
	if len(selected) == 0 || selected[len(selected)-1] != 'B' {
		t.Errorf("selected = %q, want trailing B", selected)
	}
}

func TestCommandsReachSession(t *testing.T) {
	fake := newFakeSession()
	cmds, events, stop := startWorker(t, fake)
	defer stop()

	cmds <- SetFrequency{Frequency: 438_100_000}
	waitForUpdate(t, events, func(s RadioState) bool {
		return s.VfoA.Frequency != nil && *s.VfoA.Frequency == 438_100_000
	})

	fake.mu.Lock()
	setFreqs := append([]protocol.Frequency(nil), fake.setFreqs...)
	fake.mu.Unlock()
	if len(setFreqs) != 1 || setFreqs[0] != 438_100_000 {
		t.Errorf("set frequencies = %v, want [438100000]", setFreqs)
	}
}

func TestCommandErrorEmitsErrorEvent(t *testing.T) {
	fake := newFakeSession()
	wantErr := errors.New("radio said NG")
	fake.setErr = wantErr
	cmds, events, stop := startWorker(t, fake)
	defer stop()

	cmds <- SetMode{Mode: protocol.ModeAM}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if errEv, ok := ev.(ErrorEvent); ok {
				if !errors.Is(errEv.Err, wantErr) {
					t.Errorf("error = %v, want %v", errEv.Err, wantErr)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for error event")
		}
	}
}

func TestQuitEmitsDisconnected(t *testing.T) {
	fake := newFakeSession()
	cmds, events, _ := startWorker(t, fake)

	cmds <- Quit{}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if _, ok := ev.(Disconnected); ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for Disconnected")
		}
	}
}

func TestThroughputFromCounterDeltas(t *testing.T) {
	fake := newFakeSession()
	p := New(fake, time.Millisecond)

	p.lastRateAt = time.Now().Add(-2 * time.Second)
	p.lastTx = 0
	p.lastRx = 0
	fake.txBytes = 400
	fake.rxBytes = 1000

	p.updateThroughput()

	// 400 bytes over ~2s at 10 bits per byte is ~2000 bps. The wall
	// clock advances a little between the Add above and Now inside the
	// update, so allow a small band.
	if p.txBps < 1900 || p.txBps > 2000 {
		t.Errorf("tx bps = %d, want ~2000", p.txBps)
	}
	if p.rxBps < 4800 || p.rxBps > 5000 {
		t.Errorf("rx bps = %d, want ~5000", p.rxBps)
	}
	t.Logf("computed throughput tx=%d rx=%d", p.txBps, p.rxBps)
}

func TestThroughputKeptUnderOneSecond(t *testing.T) {
	fake := newFakeSession()
	p := New(fake, time.Millisecond)
	p.lastRateAt = time.Now()
	p.txBps = 1234
	p.rxBps = 5678
	fake.txBytes = 10_000

	p.updateThroughput()

	if p.txBps != 1234 || p.rxBps != 5678 {
		t.Errorf("throughput recomputed early: tx=%d rx=%d", p.txBps, p.rxBps)
	}
}
