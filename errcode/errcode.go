// Package errcode defines stable, wire-facing error identifiers used where
// a Go error value cannot travel (the exporter's MQTT error topic).
package errcode

// Code is a stable error identifier. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	ChecksumMismatch  Code = "checksum_mismatch"
	MalformedResponse Code = "malformed_response"
	Nack              Code = "nack"
	Timeout           Code = "timeout"
	Transport         Code = "transport"

	Error Code = "error" // generic fallback
)

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
