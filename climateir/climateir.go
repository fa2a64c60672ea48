// Package climateir is the shared base for air conditioners driven by an IR
// remote protocol. Platforms supply a Protocol, the base owns state,
// transmission and decoding of received frames.
package climateir

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/ir"
)

const defaultTargetTemperature = 24

type Protocol interface {
	Traits(cfg Config) climate.Traits
	Encode(state climate.State) (ir.Pulses, error)
	// Decode parses a received signal. Fields the frame does not carry are
	// taken from current.
	Decode(r *ir.Reader, current climate.State) (climate.State, error)
}

type Base struct {
	cfg         Config
	protocol    Protocol
	transmitter ir.Transmitter
	traits      climate.Traits

	// control serializes state transitions so that frames go out in the
	// same order their states are committed.
	control sync.Mutex

	mutex     sync.Mutex
	state     climate.State
	listeners []func(climate.State)
}

func New(cfg Config, protocol Protocol, transmitter ir.Transmitter) *Base {
	traits := protocol.Traits(cfg)

	return &Base{
		cfg:         cfg,
		protocol:    protocol,
		transmitter: transmitter,
		traits:      traits,
		state: climate.State{
			Mode:              climate.ModeOff,
			FanMode:           climate.FanAuto,
			SwingMode:         climate.SwingOff,
			Preset:            climate.PresetNone,
			TargetTemperature: traits.ClampTemperature(defaultTargetTemperature),
		},
	}
}

func (b *Base) Config() Config {
	return b.cfg
}

func (b *Base) Traits() climate.Traits {
	return b.traits
}

func (b *Base) State() climate.State {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.state
}

// AddListener registers f to be called after every state change.
func (b *Base) AddListener(f func(climate.State)) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.listeners = append(b.listeners, f)
}

// Control applies call, transmits the resulting state and publishes it.
func (b *Base) Control(ctx context.Context, call climate.Call) error {
	b.control.Lock()
	defer b.control.Unlock()

	next, err := b.State().Apply(call, b.traits)
	if err != nil {
		return err
	}

	pulses, err := b.protocol.Encode(next)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := b.transmitter.Transmit(ctx, pulses); err != nil {
		return fmt.Errorf("transmitting state: %w", err)
	}

	b.publish(func(s *climate.State) {
		current := s.CurrentTemperature
		*s = next
		s.CurrentTemperature = current
	})

	return nil
}

// OnReceive decodes a signal from the handheld remote. It reports whether
// the signal was a valid frame for this protocol.
func (b *Base) OnReceive(p ir.Pulses) bool {
	if !b.cfg.Receiver {
		return false
	}

	b.control.Lock()
	defer b.control.Unlock()

	current := b.State()
	next, err := b.protocol.Decode(ir.NewReader(p.Durations), current)
	if err != nil {
		return false
	}

	b.publish(func(s *climate.State) {
		next.CurrentTemperature = s.CurrentTemperature
		*s = next
	})

	return true
}

// SetCurrentTemperature records a reading from the room sensor.
func (b *Base) SetCurrentTemperature(t float64) {
	if math.IsNaN(t) {
		log.Printf("Ignoring invalid temperature reading for %v", b.cfg.DisplayName())
		return
	}

	b.publish(func(s *climate.State) {
		s.CurrentTemperature = &t
	})
}

func (b *Base) publish(update func(*climate.State)) {
	b.mutex.Lock()
	update(&b.state)
	state := b.state
	listeners := make([]func(climate.State), len(b.listeners))
	copy(listeners, b.listeners)
	b.mutex.Unlock()

	for _, f := range listeners {
		f(state)
	}
}
