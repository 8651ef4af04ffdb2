package poller

import (
	"fmt"
	"math"
	"time"

	"github.com/kc3vo/civctl/internal/logging"
	"github.com/kc3vo/civctl/internal/protocol"
)

// Serial framing is 8N1, so every byte on the wire costs ten bit
// times. Throughput counters report bits per second at that framing.
const bitsPerByte = 10

// Session is the subset of the radio session the worker drives. It is
// satisfied by *radio.Radio.
type Session interface {
	ReadFrequency() (protocol.Frequency, error)
	SetFrequency(protocol.Frequency) error
	ReadMode() (protocol.Mode, error)
	SetMode(protocol.Mode) error
	SelectVFOA() error
	SelectVFOB() error
	ReadLevel(sub byte) (uint16, error)
	SetLevel(sub byte, value uint16) error
	ReadMeter(sub byte) (uint16, error)
	ReadToneMode() (protocol.ToneMode, error)
	SetToneMode(protocol.ToneMode) error
	ReadTxTone() (uint16, error)
	ReadRxTone() (uint16, error)
	SetTxTone(tenths uint16) error
	SetRxTone(tenths uint16) error
	ReadDTCS() (protocol.DTCSResponse, error)
	SetDTCS(txPolarity, rxPolarity byte, code uint16) error
	ReadDuplex() (byte, error)
	SetDuplex(direction byte) error
	ReadOffset() (protocol.Frequency, error)
	SetOffset(hz uint64) error
	PowerOn() error
	PowerOff() error
	TxBytes() uint64
	RxBytes() uint64
}

// Poller drives a radio session from its own goroutine.
type Poller struct {
	session  Session
	interval time.Duration

	activeVfo Vfo
	vfoA      VfoState
	vfoB      VfoState

	lastRateAt time.Time
	lastTx     uint64
	lastRx     uint64
	txBps      uint64
	rxBps      uint64
}

// New returns a worker for the given session. interval is the sleep
// between poll iterations.
func New(session Session, interval time.Duration) *Poller {
	return &Poller{
		session:  session,
		interval: interval,
	}
}

// Run executes the poll loop until a Quit command arrives or the
// command channel is closed. It emits Connected before the first
// iteration and Disconnected after Quit. Run does not close either
// channel; the frontend owns both.
//
// Event sends block: the frontend must keep events drained (or
// buffered generously) or the worker stalls mid-cycle with the
// session idle. No snapshot is ever dropped in exchange.
func (p *Poller) Run(cmds <-chan Command, events chan<- Event) {
	log := logging.GetLogger()
	log.Debug("Radio worker started")

	events <- Connected{}
	p.lastRateAt = time.Now()
	p.lastTx = p.session.TxBytes()
	p.lastRx = p.session.RxBytes()

	for {
		select {
		case cmd, ok := <-cmds:
			if !ok {
				log.Debug("Command channel closed, stopping worker")
				return
			}
			if _, quit := cmd.(Quit); quit {
				log.Debug("Radio worker shutting down")
				events <- Disconnected{}
				return
			}
			if err := p.execute(cmd); err != nil {
				events <- ErrorEvent{Err: err}
			}
		default:
		}

		state := p.pollState()
		events <- StateUpdate{State: state}

		time.Sleep(p.interval)
	}
}

// execute runs one command against the session. SelectVfo also
// retargets subsequent polls.
func (p *Poller) execute(cmd Command) error {
	switch c := cmd.(type) {
	case SetFrequency:
		return p.session.SetFrequency(c.Frequency)
	case SetMode:
		return p.session.SetMode(c.Mode)
	case SetAFLevel:
		return p.session.SetLevel(protocol.LevelAF, c.Value)
	case SetSquelch:
		return p.session.SetLevel(protocol.LevelSquelch, c.Value)
	case SetRFPower:
		return p.session.SetLevel(protocol.LevelRFPower, c.Value)
	case SelectVfo:
		p.activeVfo = c.Vfo
		if c.Vfo == VfoB {
			return p.session.SelectVFOB()
		}
		return p.session.SelectVFOA()
	case SetToneMode:
		return p.session.SetToneMode(c.Mode)
	case SetTxTone:
		return p.session.SetTxTone(c.Tenths)
	case SetRxTone:
		return p.session.SetRxTone(c.Tenths)
	case SetDTCS:
		return p.session.SetDTCS(c.TxPolarity, c.RxPolarity, c.Code)
	case SetDuplex:
		return p.session.SetDuplex(c.Direction)
	case SetOffset:
		return p.session.SetOffset(c.Hz)
	case PowerOn:
		return p.session.PowerOn()
	case PowerOff:
		return p.session.PowerOff()
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

// pollState reads the active VFO's settings and the link meters, then
// assembles a snapshot. Each field is read independently; a failed
// read leaves the field nil without aborting the cycle.
func (p *Poller) pollState() RadioState {
	active := p.pollVfo()
	if p.activeVfo == VfoB {
		p.vfoB = active
	} else {
		p.vfoA = active
	}

	state := RadioState{
		ActiveVfo: p.activeVfo,
		VfoA:      p.vfoA,
		VfoB:      p.vfoB,
		SMeter:    p.readMeter(protocol.MeterS),
		AFLevel:   p.readLevel(protocol.LevelAF),
		Squelch:   p.readLevel(protocol.LevelSquelch),
	}

	p.updateThroughput()
	state.TxBitsPerSec = p.txBps
	state.RxBitsPerSec = p.rxBps
	return state
}

func (p *Poller) pollVfo() VfoState {
	var s VfoState
	if v, err := p.session.ReadFrequency(); err == nil {
		s.Frequency = &v
	}
	if v, err := p.session.ReadMode(); err == nil {
		s.Mode = &v
	}
	s.RFPower = p.readLevel(protocol.LevelRFPower)
	if v, err := p.session.ReadToneMode(); err == nil {
		s.ToneMode = &v
	}
	if v, err := p.session.ReadDuplex(); err == nil {
		s.Duplex = &v
	}
	if v, err := p.session.ReadOffset(); err == nil {
		s.Offset = &v
	}
	if v, err := p.session.ReadTxTone(); err == nil {
		s.TxTone = &v
	}
	if v, err := p.session.ReadRxTone(); err == nil {
		s.RxTone = &v
	}
	if v, err := p.session.ReadDTCS(); err == nil {
		s.DTCS = &v
	}
	return s
}

func (p *Poller) readLevel(sub byte) *uint16 {
	v, err := p.session.ReadLevel(sub)
	if err != nil {
		return nil
	}
	return &v
}

func (p *Poller) readMeter(sub byte) *uint16 {
	v, err := p.session.ReadMeter(sub)
	if err != nil {
		return nil
	}
	return &v
}

// updateThroughput recomputes the bit-rate counters from byte-counter
// deltas once at least a second of wall time has elapsed. Shorter
// windows keep the previous values to avoid jitter.
func (p *Poller) updateThroughput() {
	now := time.Now()
	elapsed := now.Sub(p.lastRateAt).Seconds()
	if elapsed < 1.0 {
		return
	}

	tx := p.session.TxBytes()
	rx := p.session.RxBytes()
	p.txBps = uint64(math.Round(float64(tx-p.lastTx) * bitsPerByte / elapsed))
	p.rxBps = uint64(math.Round(float64(rx-p.lastRx) * bitsPerByte / elapsed))
	p.lastTx = tx
	p.lastRx = rx
	p.lastRateAt = now
}
