// Package i2chost opens a host-side I2C bus (e.g. /dev/i2c-1 on a
// Raspberry Pi) through periph.io and adapts it to the tinygo driver Tx
// shape, so the same sensor drivers run on MCUs and on Linux hosts.
package i2chost

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"tinygo.org/x/drivers"
)

// Bus wraps a periph bus handle.
type Bus struct {
	bus i2c.BusCloser
}

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

// Open initialises the host peripherals and opens the named bus. An empty
// name selects the first available bus. The returned Bus must be Closed.
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	return &Bus{bus: b}, nil
}

// Tx performs a write followed by a repeated-start read without releasing
// the bus. periph's Tx contract matches the tinygo one, so this is a plain
// delegation.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

// String returns the underlying bus name.
func (b *Bus) String() string { return b.bus.String() }

// Close releases the bus handle.
func (b *Bus) Close() error { return b.bus.Close() }
