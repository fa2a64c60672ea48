package ykh531e

import (
	"errors"
	"fmt"
	"log"

	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/ir"
)

var (
	ErrHeader   = errors.New("header mismatch")
	ErrBit      = errors.New("bit mismatch")
	ErrFooter   = errors.New("footer mismatch")
	ErrChecksum = errors.New("checksum mismatch")
)

type Frame [frameLength]byte

func (f Frame) String() string {
	return fmt.Sprintf("% X", f[:])
}

func checksum(f Frame) byte {
	var sum byte
	for _, b := range f[:frameLength-1] {
		sum += b
	}
	return sum
}

// usesTemperature reports whether the unit honours the set point in mode m.
func usesTemperature(m climate.Mode) bool {
	return m != climate.ModeFanOnly && m != climate.ModeDry
}

func encodeCelsius(t float64) byte {
	if t > TemperatureMax {
		t = TemperatureMax
	}
	if t < TemperatureMin {
		t = TemperatureMin
	}
	return byte(t - temperatureOffset)
}

func decodeCelsius(b byte) float64 {
	return float64(b) + temperatureOffset
}

func encodeFahrenheit(celsius float64) byte {
	f := celsius*9/5 + 32
	if f > fahrenheitMax {
		f = fahrenheitMax
	}
	if f < fahrenheitMin {
		f = fahrenheitMin
	}
	return byte(f) + temperatureOffset
}

func decodeFahrenheit(b byte) float64 {
	f := int(b) - temperatureOffset
	return float64(f-32) * 5 / 9
}

// EncodeFrame builds the frame for state. With fahrenheit set, the set point
// is sent in the Fahrenheit field and the Celsius field is left empty.
func EncodeFrame(state climate.State, fahrenheit bool) Frame {
	var f Frame

	f[0] = preamble

	if state.SwingMode == climate.SwingVertical {
		f[1] |= swingOn
	} else {
		f[1] |= swingOff
	}

	if usesTemperature(state.Mode) {
		if fahrenheit {
			f[10] |= (encodeFahrenheit(state.TargetTemperature) << 1) & fahrenheitField
		} else {
			f[1] |= encodeCelsius(state.TargetTemperature) << 3
		}
	}

	switch state.FanMode {
	case climate.FanLow:
		f[4] |= fanSpeedLow << 5
	case climate.FanMedium:
		f[4] |= fanSpeedMid << 5
	case climate.FanHigh:
		f[4] |= fanSpeedHigh << 5
	case climate.FanAuto:
		f[4] |= fanSpeedAuto << 5
	}

	if state.Preset == climate.PresetSleep {
		f[6] |= sleepFlag
	}
	if fahrenheit {
		f[6] |= fahrenheitFlag
	}

	switch state.Mode {
	case climate.ModeAuto:
		f[6] |= modeAuto << 5
	case climate.ModeCool:
		f[6] |= modeCool << 5
	case climate.ModeDry:
		f[6] |= modeDry << 5
	case climate.ModeHeat:
		f[6] |= modeHeat << 5
	case climate.ModeFanOnly:
		f[6] |= modeFan << 5
	}

	if state.Mode != climate.ModeOff {
		f[9] |= powerFlag
	}

	f[12] = checksum(f)

	return f
}

// DecodeFrame applies a received frame on top of current. Fields absent from
// the frame, such as the set point in fan and dry modes, keep their current
// value.
func DecodeFrame(f Frame, current climate.State) (climate.State, error) {
	if f[12] != checksum(f) {
		return current, fmt.Errorf("%w: got %02X, want %02X", ErrChecksum, f[12], checksum(f))
	}

	state := current

	if f[9]&powerFlag == 0 {
		state.Mode = climate.ModeOff
		return state, nil
	}

	if f[1]&swingMask == swingOn {
		state.SwingMode = climate.SwingVertical
	} else {
		state.SwingMode = climate.SwingOff
	}

	switch (f[4] & fanMask) >> 5 {
	case fanSpeedLow:
		state.FanMode = climate.FanLow
	case fanSpeedMid:
		state.FanMode = climate.FanMedium
	case fanSpeedHigh:
		state.FanMode = climate.FanHigh
	case fanSpeedAuto:
		state.FanMode = climate.FanAuto
	}

	if f[6]&sleepFlag != 0 {
		state.Preset = climate.PresetSleep
	} else {
		state.Preset = climate.PresetNone
	}

	switch (f[6] & modeMask) >> 5 {
	case modeAuto:
		state.Mode = climate.ModeAuto
	case modeCool:
		state.Mode = climate.ModeCool
	case modeDry:
		state.Mode = climate.ModeDry
	case modeHeat:
		state.Mode = climate.ModeHeat
	case modeFan:
		state.Mode = climate.ModeFanOnly
	}

	if usesTemperature(state.Mode) {
		if f[6]&fahrenheitFlag != 0 {
			state.TargetTemperature = decodeFahrenheit((f[10] & fahrenheitField) >> 1)
		} else {
			state.TargetTemperature = decodeCelsius((f[1] & celsiusMask) >> 3)
		}
	}

	return state, nil
}

// Modulate turns a frame into mark/space timings.
func Modulate(f Frame) ir.Pulses {
	p := ir.Pulses{
		CarrierFrequency: CarrierFrequency,
		Durations:        make([]int32, 0, 2+frameLength*8*2+1),
	}

	p.Item(HeaderMark, HeaderSpace)

	for _, b := range f {
		for j := 0; j < 8; j++ {
			if b&(1<<j) != 0 {
				p.Item(BitMark, OneSpace)
			} else {
				p.Item(BitMark, ZeroSpace)
			}
		}
	}

	p.Mark(BitMark)

	return p
}

// Demodulate reads a frame from received timings.
func Demodulate(r *ir.Reader) (Frame, error) {
	var f Frame

	if !r.ExpectItem(HeaderMark, HeaderSpace) {
		if r.Peek(0) < 0 && r.Peek(1) > 0 {
			log.Printf("Received inverted signal, the receiver input needs to be inverted")
		}
		return f, ErrHeader
	}

	for i := 0; i < frameLength; i++ {
		for j := 0; j < 8; j++ {
			if r.ExpectItem(BitMark, OneSpace) {
				f[i] |= 1 << j
			} else if !r.ExpectItem(BitMark, ZeroSpace) {
				return f, fmt.Errorf("%w: byte %v bit %v", ErrBit, i, j)
			}
		}
	}

	if !r.ExpectMark(BitMark) {
		return f, ErrFooter
	}

	return f, nil
}
