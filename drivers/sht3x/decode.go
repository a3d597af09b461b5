package sht3x

import "fmt"

// Field identifies which data word of a response failed verification.
type Field string

const (
	FieldTemperature Field = "temperature"
	FieldHumidity    Field = "humidity"
	FieldStatus      Field = "status"
)

// ChecksumError reports a received data word whose CRC did not verify.
type ChecksumError struct {
	Field Field
}

func (e ChecksumError) Error() string {
	return "sht3x: checksum mismatch on " + string(e.Field)
}

// LengthError reports a response whose size does not match the command's
// fixed expectation. It is distinct from a checksum failure: a short or
// long response is never truncated, padded or CRC-checked.
type LengthError struct {
	Expected int
	Actual   int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("sht3x: malformed response: expected %d bytes, got %d", e.Expected, e.Actual)
}

// word validates one (data word, CRC) group and returns the big-endian
// 16-bit value. group must be exactly 3 bytes.
func word(group []byte, f Field) (uint16, error) {
	if !crcOK(group[:2], group[2]) {
		return 0, ChecksumError{Field: f}
	}
	return uint16(group[0])<<8 | uint16(group[1]), nil
}

// decodeMeasurement parses a 6-byte single-shot response:
// [temp_hi temp_lo temp_crc hum_hi hum_lo hum_crc]. Both CRCs are verified
// independently; the first mismatch wins.
func decodeMeasurement(buf []byte) (rawT, rawH uint16, err error) {
	if len(buf) != cmdRespMeasure {
		return 0, 0, LengthError{Expected: cmdRespMeasure, Actual: len(buf)}
	}
	if rawT, err = word(buf[0:3], FieldTemperature); err != nil {
		return 0, 0, err
	}
	if rawH, err = word(buf[3:6], FieldHumidity); err != nil {
		return 0, 0, err
	}
	return rawT, rawH, nil
}

// decodeStatus parses a 3-byte status response: [hi lo crc].
func decodeStatus(buf []byte) (uint16, error) {
	if len(buf) != cmdRespStatus {
		return 0, LengthError{Expected: cmdRespStatus, Actual: len(buf)}
	}
	return word(buf[0:3], FieldStatus)
}
