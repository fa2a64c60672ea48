// Package climate models an air conditioner as a climate entity: its modes,
// its capabilities and partial state updates.
package climate

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var ErrUnsupported = errors.New("unsupported by device")

func (t Traits) SupportsMode(m Mode) bool {
	return slices.Contains(t.Modes, m)
}

func (t Traits) SupportsFanMode(f FanMode) bool {
	return slices.Contains(t.FanModes, f)
}

func (t Traits) SupportsSwingMode(s SwingMode) bool {
	return slices.Contains(t.SwingModes, s)
}

func (t Traits) SupportsPreset(p Preset) bool {
	return slices.Contains(t.Presets, p)
}

// ClampTemperature limits t to the supported range and rounds it to the
// temperature step.
func (t Traits) ClampTemperature(temp float64) float64 {
	if t.TemperatureStep > 0 {
		temp = math.Round(temp/t.TemperatureStep) * t.TemperatureStep
	}
	if temp < t.MinTemperature {
		return t.MinTemperature
	}
	if t.MaxTemperature > t.MinTemperature && temp > t.MaxTemperature {
		return t.MaxTemperature
	}
	return temp
}

// Apply returns the state resulting from c. Values outside traits are
// rejected, the target temperature is clamped.
func (s State) Apply(c Call, traits Traits) (State, error) {
	next := s

	if c.Mode != nil {
		if !traits.SupportsMode(*c.Mode) {
			return s, fmt.Errorf("mode %v: %w", *c.Mode, ErrUnsupported)
		}
		next.Mode = *c.Mode
	}

	if c.FanMode != nil {
		if !traits.SupportsFanMode(*c.FanMode) {
			return s, fmt.Errorf("fan mode %v: %w", *c.FanMode, ErrUnsupported)
		}
		next.FanMode = *c.FanMode
	}

	if c.SwingMode != nil {
		if !traits.SupportsSwingMode(*c.SwingMode) {
			return s, fmt.Errorf("swing mode %v: %w", *c.SwingMode, ErrUnsupported)
		}
		next.SwingMode = *c.SwingMode
	}

	if c.Preset != nil {
		if !traits.SupportsPreset(*c.Preset) {
			return s, fmt.Errorf("preset %v: %w", *c.Preset, ErrUnsupported)
		}
		next.Preset = *c.Preset
	}

	if c.TargetTemperature != nil {
		if math.IsNaN(*c.TargetTemperature) {
			return s, fmt.Errorf("target temperature: %w", ErrUnsupported)
		}
		next.TargetTemperature = traits.ClampTemperature(*c.TargetTemperature)
	}

	return next, nil
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeOff, ModeAuto, ModeCool, ModeHeat, ModeDry, ModeFanOnly:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

func ParseFanMode(s string) (FanMode, error) {
	switch f := FanMode(s); f {
	case FanAuto, FanLow, FanMedium, FanHigh:
		return f, nil
	}
	return "", fmt.Errorf("unknown fan mode %q", s)
}

func ParseSwingMode(s string) (SwingMode, error) {
	switch m := SwingMode(s); m {
	case SwingOff, SwingVertical:
		return m, nil
	}
	return "", fmt.Errorf("unknown swing mode %q", s)
}

func ParsePreset(s string) (Preset, error) {
	switch p := Preset(s); p {
	case PresetNone, PresetSleep:
		return p, nil
	}
	return "", fmt.Errorf("unknown preset %q", s)
}
