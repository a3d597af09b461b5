package sht3x

// StatusRegister is a read-only view over the sensor's 16-bit status word
// (datasheet Table 17). Reserved bits are preserved in Word() but carry no
// named flag.
type StatusRegister uint16

const (
	// StatusAlertPending: at least one alert is pending.
	StatusAlertPending StatusRegister = 1 << 15
	// StatusHeaterOn: the internal heater is enabled.
	StatusHeaterOn StatusRegister = 1 << 13
	// StatusRHTrackingAlert: humidity tracking alert.
	StatusRHTrackingAlert StatusRegister = 1 << 11
	// StatusTTrackingAlert: temperature tracking alert.
	StatusTTrackingAlert StatusRegister = 1 << 10
	// StatusResetDetected: a reset (hard, soft or supply fail) occurred
	// since the last clear-status command.
	StatusResetDetected StatusRegister = 1 << 4
	// StatusCommandFailed: the last command was not processed.
	StatusCommandFailed StatusRegister = 1 << 1
	// StatusChecksumFailed: the checksum of the last write transfer failed.
	StatusChecksumFailed StatusRegister = 1 << 0
)

// Has reports whether all bits of flag are set.
func (s StatusRegister) Has(flag StatusRegister) bool { return s&flag == flag }

// Word returns the raw 16-bit register value.
func (s StatusRegister) Word() uint16 { return uint16(s) }
