// Package ykh531e implements the YK-H/531E air conditioner remote protocol
// and registers it as an IR climate platform.
//
// A frame is 13 bytes sent least significant bit first after a header, the
// last byte being the sum of the others.
package ykh531e

const (
	CarrierFrequency = 38000

	// Timings in microseconds.
	HeaderMark  = 9100
	HeaderSpace = 4500
	BitMark     = 600
	ZeroSpace   = 600
	OneSpace    = 1700
)

const frameLength = 13

const preamble = 0b11000011

const (
	fanSpeedLow  = 0b011
	fanSpeedMid  = 0b010
	fanSpeedHigh = 0b001
	fanSpeedAuto = 0b101
)

const (
	swingOn  = 0b000
	swingOff = 0b111
)

const (
	modeAuto = 0b000
	modeCool = 0b001
	modeDry  = 0b010
	modeHeat = 0b100 // Not supported by every unit.
	modeFan  = 0b110
)

const (
	TemperatureMin  = 16.0
	TemperatureMax  = 32.0
	TemperatureStep = 1.0

	fahrenheitMin = 60.0
	fahrenheitMax = 90.0

	temperatureOffset = 8
)

// Bit positions inside the frame.
const (
	swingMask       = 0b00000111 // byte 1
	celsiusMask     = 0b11111000 // byte 1
	fanMask         = 0b11100000 // byte 4
	fahrenheitFlag  = 0b00000010 // byte 6
	sleepFlag       = 0b00000100 // byte 6
	modeMask        = 0b11100000 // byte 6
	powerFlag       = 0b00100000 // byte 9
	fahrenheitField = 0b11111110 // byte 10
)
