package sht3x

// Measurement holds one validated single-shot result. The raw counts are
// kept alongside the derived values so callers can apply their own
// calibration if needed. Conversion never clamps: readings slightly outside
// the sensor's specified range (e.g. >100 %RH within tolerance) pass
// through unmodified.
type Measurement struct {
	RawTemperature uint16
	RawHumidity    uint16
}

// Datasheet 4.13 conversion formulas:
//
//	T[°C]  = -45 + 175 * raw / 65535
//	RH[%]  = 100 * raw / 65535

// Celsius returns the temperature in °C. Prefer CentiCelsius for
// integer-only targets.
func (m Measurement) Celsius() float32 {
	return float32(-45 + 175*float64(m.RawTemperature)/65535)
}

// RelHumidity returns the relative humidity in %. Prefer CentiRelHumidity
// for integer-only targets.
func (m Measurement) RelHumidity() float32 {
	return float32(100 * float64(m.RawHumidity) / 65535)
}

// CentiCelsius returns hundredths of °C using integer-only arithmetic,
// rounded half up. Agrees with Celsius within one count.
func (m Measurement) CentiCelsius() int32 {
	return -4500 + divRoundHalfUp(17500*int64(m.RawTemperature), 65535)
}

// CentiRelHumidity returns hundredths of %RH using integer-only arithmetic,
// rounded half up. Agrees with RelHumidity within one count.
func (m Measurement) CentiRelHumidity() int32 {
	return divRoundHalfUp(10000*int64(m.RawHumidity), 65535)
}

// divRoundHalfUp computes round(n/d) with exact halves rounded up.
// Requires n >= 0 and d > 0.
func divRoundHalfUp(n, d int64) int32 {
	return int32((2*n + d) / (2 * d))
}
