// Package sht3x command table. Codes are bit-exact per the SHT3x-DIS
// datasheet; the single-shot codes come from Table 8, the control codes
// from Tables 13, 16 and 18.
package sht3x

import "time"

// 7-bit I2C addresses, selected by the ADDR pin.
const (
	AddressLow  = 0x44 // ADDR pin pulled low (default)
	AddressHigh = 0x45 // ADDR pin pulled high
)

// Repeatability selects the precision/duration tradeoff of a measurement.
// Higher repeatability means lower noise and a longer conversion time.
type Repeatability uint8

const (
	RepeatabilityLow Repeatability = iota
	RepeatabilityMedium
	RepeatabilityHigh
)

// ClockStretch selects whether the sensor may hold SCL low while converting
// instead of requiring a fixed host-side delay.
type ClockStretch uint8

const (
	StretchDisabled ClockStretch = iota
	StretchEnabled
)

// conversionTime returns the worst-case single-shot conversion duration
// (datasheet Table 4). Only relevant when clock stretching is disabled.
func (r Repeatability) conversionTime() time.Duration {
	switch r {
	case RepeatabilityLow:
		return 4 * time.Millisecond
	case RepeatabilityMedium:
		return 6 * time.Millisecond
	default:
		return 15 * time.Millisecond
	}
}

// command pairs a 16-bit code with its fixed expected response length.
type command struct {
	code    uint16
	respLen int
}

// Response lengths per command class. Every data word on the wire is two
// bytes followed by one CRC byte.
const (
	cmdRespNone    = 0
	cmdRespStatus  = 3
	cmdRespMeasure = 6
)

var (
	cmdReadStatus  = command{0xF32D, cmdRespStatus}
	cmdClearStatus = command{0x3041, cmdRespNone}
	cmdSoftReset   = command{0x30A2, cmdRespNone}
)

// Single-shot acquisition codes, {clock stretch} x {repeatability}.
var singleShotCodes = [2][3]uint16{
	StretchDisabled: {
		RepeatabilityLow:    0x2416,
		RepeatabilityMedium: 0x240B,
		RepeatabilityHigh:   0x2400,
	},
	StretchEnabled: {
		RepeatabilityLow:    0x2C10,
		RepeatabilityMedium: 0x2C0D,
		RepeatabilityHigh:   0x2C06,
	},
}

// singleShot returns the measurement command for the given mode. It is a
// pure lookup over a closed input set and cannot fail.
func singleShot(rpt Repeatability, cs ClockStretch) command {
	return command{singleShotCodes[cs][rpt], cmdRespMeasure}
}
