// Package ir holds raw infrared signal data and the link to the IR
// transceiver. Durations are in microseconds: marks are positive, spaces
// negative.
package ir

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformed = errors.New("malformed pulse line")

type Pulses struct {
	CarrierFrequency uint32
	Durations        []int32
}

func (p *Pulses) Mark(length uint32) {
	p.Durations = append(p.Durations, int32(length))
}

func (p *Pulses) Space(length uint32) {
	p.Durations = append(p.Durations, -int32(length))
}

// Item appends a mark followed by a space. A zero space is dropped.
func (p *Pulses) Item(mark, space uint32) {
	p.Mark(mark)
	if space > 0 {
		p.Space(space)
	}
}

// String renders the wire line: carrier frequency followed by durations.
func (p Pulses) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(p.CarrierFrequency), 10))
	for _, d := range p.Durations {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(int64(d), 10))
	}
	return sb.String()
}

// ParsePulses parses a line written by String.
func ParsePulses(line string) (Pulses, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Pulses{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	carrier, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Pulses{}, fmt.Errorf("%w: carrier %q", ErrMalformed, fields[0])
	}

	p := Pulses{
		CarrierFrequency: uint32(carrier),
		Durations:        make([]int32, 0, len(fields)-1),
	}

	for _, f := range fields[1:] {
		d, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return Pulses{}, fmt.Errorf("%w: duration %q", ErrMalformed, f)
		}
		p.Durations = append(p.Durations, int32(d))
	}

	return p, nil
}

type Transmitter interface {
	Transmit(ctx context.Context, p Pulses) error
}

type Receiver interface {
	// Receive blocks, calling handler for every received signal, until ctx
	// is done or the link fails.
	Receive(ctx context.Context, handler func(Pulses)) error
}
