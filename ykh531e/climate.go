package ykh531e

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/climateir"
	"github.com/victorjacobs/go-ykh531e/ir"
)

// Codec is the climateir.Protocol for YK-H/531E remotes.
type Codec struct {
	fahrenheit atomic.Bool
	debug      atomic.Bool
}

func (c *Codec) SetFahrenheit(fahrenheit bool) {
	c.fahrenheit.Store(fahrenheit)
}

func (c *Codec) Fahrenheit() bool {
	return c.fahrenheit.Load()
}

// SetDebug enables logging of every transmitted and received frame.
func (c *Codec) SetDebug(debug bool) {
	c.debug.Store(debug)
}

// Traits reports the hardware capabilities. Only vertical swing exists, and
// heat is offered only when configured since many units lack it.
func (c *Codec) Traits(cfg climateir.Config) climate.Traits {
	modes := []climate.Mode{climate.ModeOff, climate.ModeAuto, climate.ModeCool, climate.ModeDry, climate.ModeFanOnly}
	if cfg.SupportsHeat {
		modes = append(modes, climate.ModeHeat)
	}

	return climate.Traits{
		SupportsCurrentTemperature: cfg.Sensor != "",
		Modes:                      modes,
		FanModes:                   []climate.FanMode{climate.FanAuto, climate.FanLow, climate.FanMedium, climate.FanHigh},
		SwingModes:                 []climate.SwingMode{climate.SwingOff, climate.SwingVertical},
		Presets:                    []climate.Preset{climate.PresetNone, climate.PresetSleep},
		MinTemperature:             TemperatureMin,
		MaxTemperature:             TemperatureMax,
		TemperatureStep:            TemperatureStep,
	}
}

func (c *Codec) Encode(state climate.State) (ir.Pulses, error) {
	fahrenheit := c.Fahrenheit()

	if state.Mode == climate.ModeHeat {
		log.Printf("Heat mode may not work on all units")
	}

	f := EncodeFrame(state, fahrenheit)

	if c.debug.Load() {
		if !usesTemperature(state.Mode) {
			log.Printf("Mode %v doesn't use temperature, skipping temperature encoding", state.Mode)
		} else if fahrenheit {
			log.Printf("Target %.1f°C sent as %d (Fahrenheit)", state.TargetTemperature, encodeFahrenheit(state.TargetTemperature))
		}
		log.Printf("Transmitting: %v", f)
	}

	return Modulate(f), nil
}

func (c *Codec) Decode(r *ir.Reader, current climate.State) (climate.State, error) {
	f, err := Demodulate(r)
	if err != nil {
		return current, err
	}

	if c.debug.Load() {
		log.Printf("Received: %v", f)
	}

	state, err := DecodeFrame(f, current)
	if err != nil {
		return current, fmt.Errorf("decoding %v: %w", f, err)
	}

	return state, nil
}

// Climate is a runtime YK-H/531E device.
type Climate struct {
	*climateir.Base

	codec *Codec
}

func NewClimate(cfg climateir.Config, transmitter ir.Transmitter) *Climate {
	codec := &Codec{}

	return &Climate{
		Base:  climateir.New(cfg, codec, transmitter),
		codec: codec,
	}
}

// SetFahrenheit selects the unit the set point is transmitted in.
func (c *Climate) SetFahrenheit(fahrenheit bool) {
	c.codec.SetFahrenheit(fahrenheit)
}

func (c *Climate) Fahrenheit() bool {
	return c.codec.Fahrenheit()
}

func (c *Climate) SetDebug(debug bool) {
	c.codec.SetDebug(debug)
}
