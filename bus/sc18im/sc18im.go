// Package sc18im drives I2C devices through an NXP SC18IM704 UART-to-I2C
// bridge, exposing the tinygo driver Tx shape over a serial port. Useful on
// hosts with no native I2C controller (USB-serial adapters, dev boards).
//
// Bridge protocol (SC18IM704 datasheet chapter 7): ASCII framing commands
// 'S' (start), 'P' (stop), 'R'/'W' (internal register access). A write
// transfer is S <addr+W> <len> <data...> P; a read is S <addr+R> <len> P
// followed by the bridge streaming the read bytes back over UART. The
// outcome of the last transfer is held in the I2CStat register.
package sc18im

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"tinygo.org/x/drivers"
)

// Protocol bytes.
const (
	chStart   = 'S'
	chStop    = 'P'
	chRegRead = 'R'
)

// Internal registers.
const regI2CStat = 0x0A

// I2CStat values.
const (
	statOK       = 0xF0
	statNackAddr = 0xF1
	statNackData = 0xF2
	statTimeout  = 0xF8
)

// Errors surfaced from the bridge's transfer status.
var (
	ErrNack    = errors.New("sc18im: device nack")
	ErrTimeout = errors.New("sc18im: i2c timeout")
)

// DefaultBaudRate is the bridge's power-on UART rate.
const DefaultBaudRate = 9600

// Bus is the exclusive owner of its serial port. It satisfies drivers.I2C.
type Bus struct {
	port io.ReadWriteCloser
	buf  []byte
}

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

// Open opens the named serial port and wraps it. A zero baud rate selects
// DefaultBaudRate.
func Open(portName string, baud int) (*Bus, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	p, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	// Bound reads so a wedged bridge surfaces as an error instead of
	// blocking forever.
	_ = p.SetReadTimeout(time.Second)
	return New(p), nil
}

// New wraps an already-open port. Tests pass an in-memory pipe.
func New(port io.ReadWriteCloser) *Bus {
	return &Bus{port: port, buf: make([]byte, 0, 16)}
}

// Close releases the serial port.
func (b *Bus) Close() error { return b.port.Close() }

// Tx performs a write and/or read transfer. When both halves are present
// they are joined with a repeated start, matching the tinygo Tx contract.
// The bridge's transfer status is checked after every transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 && len(r) == 0 {
		return nil
	}
	if len(w) > 0xFF || len(r) > 0xFF {
		return errors.New("sc18im: transfer too long")
	}
	f := b.buf[:0]
	if len(w) > 0 {
		f = append(f, chStart, byte(addr<<1), byte(len(w)))
		f = append(f, w...)
	}
	if len(r) > 0 {
		f = append(f, chStart, byte(addr<<1)|1, byte(len(r)))
	}
	f = append(f, chStop)
	b.buf = f[:0]
	if _, err := b.port.Write(f); err != nil {
		return err
	}
	if len(r) > 0 {
		if err := b.readFull(r); err != nil {
			return err
		}
	}
	return b.transferStatus()
}

// readFull fills buf from the port. The serial library reports an expired
// read timeout as a zero-byte read with a nil error; that surfaces here as
// ErrTimeout instead of spinning forever on a silent bridge.
func (b *Bus) readFull(buf []byte) error {
	for n := 0; n < len(buf); {
		m, err := b.port.Read(buf[n:])
		if err != nil {
			return err
		}
		if m == 0 {
			return ErrTimeout
		}
		n += m
	}
	return nil
}

// transferStatus reads I2CStat and maps it onto a typed error.
func (b *Bus) transferStatus() error {
	if _, err := b.port.Write([]byte{chRegRead, regI2CStat, chStop}); err != nil {
		return err
	}
	var st [1]byte
	if err := b.readFull(st[:]); err != nil {
		return err
	}
	switch st[0] {
	case statOK:
		return nil
	case statNackAddr, statNackData:
		return ErrNack
	case statTimeout:
		return ErrTimeout
	default:
		return fmt.Errorf("sc18im: transfer status 0x%02X", st[0])
	}
}
