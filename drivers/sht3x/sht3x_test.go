package sht3x

import (
	"errors"
	"testing"
	"time"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeSensor)(nil)

// Scripted SHT3x-like fake. It answers the read following the last command
// written and records the transaction sequence.
type fakeSensor struct {
	addr uint16

	rawT, rawH uint16
	status     uint16

	lastCmd uint16
	writes  int
	reads   int

	corruptTempCRC bool
	corruptHumCRC  bool
	err            error
}

func (f *fakeSensor) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if addr != f.addr {
		return errNoAck
	}
	switch {
	case len(w) == 2 && len(r) == 0:
		f.writes++
		f.lastCmd = uint16(w[0])<<8 | uint16(w[1])
		if f.lastCmd == 0x3041 { // clear status
			f.status &^= uint16(StatusAlertPending | StatusResetDetected)
		}
		return nil
	case len(w) == 0 && len(r) == 6:
		f.reads++
		f.putWord(r[0:3], f.rawT)
		f.putWord(r[3:6], f.rawH)
		if f.corruptTempCRC {
			r[2] ^= 0xFF
		}
		if f.corruptHumCRC {
			r[5] ^= 0xFF
		}
		return nil
	case len(w) == 0 && len(r) == 3:
		f.reads++
		f.putWord(r[0:3], f.status)
		return nil
	}
	return errors.New("fake: unexpected transaction")
}

func (f *fakeSensor) putWord(dst []byte, w uint16) {
	dst[0], dst[1] = byte(w>>8), byte(w)
	dst[2] = crc8(dst[:2])
}

var errNoAck = errors.New("fake: no ack")

// recordingDelay captures conversion waits instead of sleeping.
type recordingDelay struct {
	slept []time.Duration
}

func (d *recordingDelay) Sleep(t time.Duration) { d.slept = append(d.slept, t) }

func TestMeasure(t *testing.T) {
	// 0x6666 -> 25.00 degC exactly, 0x8000 -> 50.00 %RH.
	bus := &fakeSensor{addr: AddressLow, rawT: 0x6666, rawH: 0x8000}
	delay := &recordingDelay{}
	dev := New(bus, Config{Delay: delay})

	m, err := dev.Measure(RepeatabilityHigh, StretchDisabled)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if m.RawTemperature != 0x6666 || m.RawHumidity != 0x8000 {
		t.Fatalf("raw = 0x%04X/0x%04X", m.RawTemperature, m.RawHumidity)
	}
	if got := m.CentiCelsius(); got != 2500 {
		t.Errorf("CentiCelsius = %d, want 2500", got)
	}
	if got := m.CentiRelHumidity(); got != 5000 {
		t.Errorf("CentiRelHumidity = %d, want 5000", got)
	}

	if bus.lastCmd != 0x2400 {
		t.Errorf("command = 0x%04X, want 0x2400", bus.lastCmd)
	}
	if bus.writes != 1 || bus.reads != 1 {
		t.Errorf("transactions = %d writes, %d reads, want 1/1", bus.writes, bus.reads)
	}
	if len(delay.slept) != 1 || delay.slept[0] != 15*time.Millisecond {
		t.Errorf("conversion wait = %v, want one 15ms sleep", delay.slept)
	}
}

func TestMeasureClockStretchSkipsDelay(t *testing.T) {
	bus := &fakeSensor{addr: AddressLow}
	delay := &recordingDelay{}
	dev := New(bus, Config{Delay: delay})

	if _, err := dev.Measure(RepeatabilityMedium, StretchEnabled); err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if bus.lastCmd != 0x2C0D {
		t.Errorf("command = 0x%04X, want 0x2C0D", bus.lastCmd)
	}
	if len(delay.slept) != 0 {
		t.Errorf("unexpected host-side wait: %v", delay.slept)
	}
}

func TestMeasureChecksumFailure(t *testing.T) {
	bus := &fakeSensor{addr: AddressLow, corruptHumCRC: true}
	dev := New(bus, Config{Delay: &recordingDelay{}})

	_, err := dev.Measure(RepeatabilityLow, StretchDisabled)
	var ce ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ChecksumError", err)
	}
	if ce.Field != FieldHumidity {
		t.Errorf("failed field = %q, want humidity", ce.Field)
	}
}

func TestMeasureBusErrorPassesThrough(t *testing.T) {
	busErr := errors.New("arbitration lost")
	bus := &fakeSensor{addr: AddressLow, err: busErr}
	dev := New(bus, Config{Delay: &recordingDelay{}})

	if _, err := dev.Measure(RepeatabilityHigh, StretchDisabled); !errors.Is(err, busErr) {
		t.Errorf("err = %v, want the transport error unchanged", err)
	}
}

func TestStatus(t *testing.T) {
	bus := &fakeSensor{
		addr:   AddressHigh,
		status: uint16(StatusHeaterOn | StatusResetDetected),
	}
	dev := New(bus, Config{Address: AddressHigh})

	reg, err := dev.Status()
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if bus.lastCmd != 0xF32D {
		t.Errorf("command = 0x%04X, want 0xF32D", bus.lastCmd)
	}
	if !reg.Has(StatusHeaterOn) || !reg.Has(StatusResetDetected) {
		t.Errorf("flags missing in 0x%04X", reg.Word())
	}
	if reg.Has(StatusAlertPending) {
		t.Error("alert flag set unexpectedly")
	}
}

func TestClearStatusAndSoftReset(t *testing.T) {
	bus := &fakeSensor{addr: AddressLow, status: uint16(StatusResetDetected)}
	dev := New(bus, Config{})

	if err := dev.ClearStatus(); err != nil {
		t.Fatalf("clear status error: %v", err)
	}
	if bus.lastCmd != 0x3041 || bus.reads != 0 {
		t.Errorf("clear status: cmd 0x%04X, %d reads", bus.lastCmd, bus.reads)
	}
	if reg, _ := dev.Status(); reg.Has(StatusResetDetected) {
		t.Error("reset flag survived clear status")
	}

	if err := dev.SoftReset(); err != nil {
		t.Fatalf("soft reset error: %v", err)
	}
	if bus.lastCmd != 0x30A2 {
		t.Errorf("soft reset: cmd 0x%04X, want 0x30A2", bus.lastCmd)
	}
}

func TestDefaultAddress(t *testing.T) {
	// A zero-value config talks to 0x44; the fake rejects other addresses.
	bus := &fakeSensor{addr: AddressLow}
	dev := New(bus, Config{Delay: &recordingDelay{}})
	if _, err := dev.Measure(RepeatabilityLow, StretchEnabled); err != nil {
		t.Fatalf("measure at default address: %v", err)
	}
}
