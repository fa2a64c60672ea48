package bridge

import (
	"strconv"
	"strings"

	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/homeassistant"
)

var commandDefinitions = [...]*commandDefinition{
	{
		name:  "mode",
		topic: func(t homeassistant.Topics) string { return t.ModeCommand },
		call: func(payload string) (climate.Call, error) {
			m, err := climate.ParseMode(payload)
			return climate.Call{Mode: &m}, err
		},
	},
	{
		name:  "fan mode",
		topic: func(t homeassistant.Topics) string { return t.FanModeCommand },
		call: func(payload string) (climate.Call, error) {
			f, err := climate.ParseFanMode(payload)
			return climate.Call{FanMode: &f}, err
		},
	},
	{
		name:  "swing mode",
		topic: func(t homeassistant.Topics) string { return t.SwingModeCommand },
		call: func(payload string) (climate.Call, error) {
			s, err := climate.ParseSwingMode(payload)
			return climate.Call{SwingMode: &s}, err
		},
	},
	{
		name:  "preset",
		topic: func(t homeassistant.Topics) string { return t.PresetCommand },
		call: func(payload string) (climate.Call, error) {
			p, err := climate.ParsePreset(payload)
			return climate.Call{Preset: &p}, err
		},
	},
	{
		name:  "target temperature",
		topic: func(t homeassistant.Topics) string { return t.TargetTemperatureCommand },
		call: func(payload string) (climate.Call, error) {
			temp, err := parseTemperature(payload)
			return climate.Call{TargetTemperature: &temp}, err
		},
	},
}

var stateDefinitions = [...]*stateDefinition{
	{
		name:  "mode",
		topic: func(t homeassistant.Topics) string { return t.Mode },
		get:   func(s climate.State) (string, bool) { return string(s.Mode), true },
	},
	{
		name:  "fan mode",
		topic: func(t homeassistant.Topics) string { return t.FanMode },
		get:   func(s climate.State) (string, bool) { return string(s.FanMode), true },
	},
	{
		name:  "swing mode",
		topic: func(t homeassistant.Topics) string { return t.SwingMode },
		get:   func(s climate.State) (string, bool) { return string(s.SwingMode), true },
	},
	{
		name:  "preset",
		topic: func(t homeassistant.Topics) string { return t.Preset },
		get:   func(s climate.State) (string, bool) { return string(s.Preset), true },
	},
	{
		name:  "target temperature",
		topic: func(t homeassistant.Topics) string { return t.TargetTemperature },
		get:   func(s climate.State) (string, bool) { return formatTemperature(s.TargetTemperature), true },
	},
	{
		name:  "current temperature",
		topic: func(t homeassistant.Topics) string { return t.CurrentTemperature },
		get: func(s climate.State) (string, bool) {
			if s.CurrentTemperature == nil {
				return "", false
			}
			return formatTemperature(*s.CurrentTemperature), true
		},
	},
}

func parseTemperature(payload string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(payload), 64)
}

func formatTemperature(t float64) string {
	return strconv.FormatFloat(t, 'f', 1, 64)
}
