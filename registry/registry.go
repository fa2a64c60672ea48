// Package registry maps device platform identifiers to their schema, code
// generation step and runtime factory.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/climateir"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/ir"
	"github.com/victorjacobs/go-ykh531e/schema"
	"github.com/victorjacobs/go-ykh531e/ykh531e"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Device is the runtime object a platform produces.
type Device interface {
	Config() climateir.Config
	Traits() climate.Traits
	State() climate.State
	AddListener(f func(climate.State))
	Control(ctx context.Context, call climate.Call) error
	OnReceive(p ir.Pulses) bool
	SetCurrentTemperature(t float64)
	SetDebug(debug bool)
}

type Platform struct {
	Name   string
	Model  string
	Schema *schema.Schema
	ToCode func(buf *codegen.Buffer, v schema.Values) (*codegen.Object, error)
	New    func(v schema.Values, transmitter ir.Transmitter) Device
}

var platforms = map[string]Platform{
	ykh531e.PlatformName: {
		Name:   ykh531e.PlatformName,
		Model:  ykh531e.Model,
		Schema: ykh531e.ConfigSchema(),
		ToCode: ykh531e.ToCode,
		New: func(v schema.Values, transmitter ir.Transmitter) Device {
			return ykh531e.Build(v, transmitter)
		},
	},
}

func Lookup(name string) (Platform, error) {
	p, ok := platforms[name]
	if !ok {
		return Platform{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPlatform, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

func Names() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate validates raw against the platform schema and emits the device
// object. Nothing is emitted when validation fails. The returned record
// carries the id of the emitted object, including generated ones.
func Generate(buf *codegen.Buffer, name string, raw schema.Values) (schema.Values, *codegen.Object, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, nil, err
	}

	v, err := p.Schema.Validate(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", name, err)
	}

	obj, err := p.ToCode(buf, v)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", name, err)
	}
	v[climateir.ConfID] = obj.ID

	return v, obj, nil
}

// Setup runs Generate and builds the runtime device from the same record.
func Setup(buf *codegen.Buffer, name string, raw schema.Values, transmitter ir.Transmitter) (Device, error) {
	v, _, err := Generate(buf, name, raw)
	if err != nil {
		return nil, err
	}

	p, _ := Lookup(name)
	return p.New(v, transmitter), nil
}
