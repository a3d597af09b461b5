// Package sht3x provides a driver for the Sensirion SHT3x-DIS digital
// temperature/humidity sensor family (SHT30/SHT31/SHT35) in single-shot
// acquisition mode.
//
// The driver owns its I2C handle for the duration of each call and performs
// no internal retries: a bus error or a failed checksum is returned to the
// caller as-is. Conversion results are exposed both as floats and as
// integer-only centi-units (hundredths of °C / %RH) for targets without
// floating-point hardware.
//
// NOTE: I2C.Tx MUST hold the bus for the whole transaction. The sensor is a
// shared, non-reentrant resource; callers driving one Device from several
// goroutines must serialize access themselves.
package sht3x

import (
	"time"

	"tinygo.org/x/drivers"
)

// Delayer blocks the calling goroutine for at least the given duration.
// It is injected so hosts with their own scheduling (or tests) can replace
// the default time.Sleep implementation.
type Delayer interface {
	Sleep(d time.Duration)
}

type sleeper struct{}

func (sleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Config controls device addressing and timing. All fields are optional.
type Config struct {
	// Address defaults to AddressLow (0x44) if zero.
	Address uint16
	// Delay provides the conversion-time wait for non-stretching
	// measurements. Defaults to time.Sleep.
	Delay Delayer
}

// Device wraps an I2C connection to an SHT3x sensor.
type Device struct {
	i2c   drivers.I2C
	addr  uint16
	delay Delayer

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [6]byte
}

// New creates a new SHT3x connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not
// touch the sensor.
func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressLow
	}
	delay := cfg.Delay
	if delay == nil {
		delay = sleeper{}
	}
	return &Device{i2c: i2c, addr: addr, delay: delay}
}

// command transmits the 2-byte big-endian code for c. Commands carry no
// payload and no checksum; CRCs appear on responses only.
func (d *Device) command(c command) error {
	d.w[0] = byte(c.code >> 8)
	d.w[1] = byte(c.code)
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}

// Measure performs one single-shot acquisition and returns the validated
// measurement.
//
// With clock stretching disabled the driver sleeps for the repeatability's
// worst-case conversion time before reading. With stretching enabled the
// sensor holds SCL until data is ready, so the read itself blocks and no
// host-side delay is inserted.
func (d *Device) Measure(rpt Repeatability, cs ClockStretch) (Measurement, error) {
	if err := d.command(singleShot(rpt, cs)); err != nil {
		return Measurement{}, err
	}
	if cs == StretchDisabled {
		d.delay.Sleep(rpt.conversionTime())
	}
	buf := d.r[:cmdRespMeasure]
	if err := d.i2c.Tx(d.addr, nil, buf); err != nil {
		return Measurement{}, err
	}
	rawT, rawH, err := decodeMeasurement(buf)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{RawTemperature: rawT, RawHumidity: rawH}, nil
}

// Status reads the sensor's 16-bit status register.
func (d *Device) Status() (StatusRegister, error) {
	if err := d.command(cmdReadStatus); err != nil {
		return 0, err
	}
	buf := d.r[:cmdReadStatus.respLen]
	if err := d.i2c.Tx(d.addr, nil, buf); err != nil {
		return 0, err
	}
	word, err := decodeStatus(buf)
	if err != nil {
		return 0, err
	}
	return StatusRegister(word), nil
}

// ClearStatus clears all clearable status register flags (alert and reset
// bits). The command has no response.
func (d *Device) ClearStatus() error {
	return d.command(cmdClearStatus)
}

// SoftReset re-initialises the sensor's internal state machine. The command
// has no response. The sensor needs its soft-reset settling time (~1.5 ms)
// before it accepts the next command; waiting it out is the caller's job.
func (d *Device) SoftReset() error {
	return d.command(cmdSoftReset)
}
