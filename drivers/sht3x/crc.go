package sht3x

// CRC-8 parameters used by the SHT3x for read-out data (datasheet 4.12):
// polynomial 0x31 (x^8 + x^5 + x^4 + 1), init 0xFF, MSB first, no
// reflection, no final XOR. crc8(0xBE, 0xEF) == 0x92.
const (
	crcPoly = 0x31
	crcInit = 0xFF
)

// crc8 computes the checksum over data.
func crc8(data []byte) byte {
	crc := byte(crcInit)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// crcOK recomputes the checksum of data and compares it with the received
// byte. Exact equality only; a mismatch is never tolerated.
func crcOK(data []byte, got byte) bool {
	return crc8(data) == got
}
