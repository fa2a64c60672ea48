package ykh531e

import (
	"github.com/victorjacobs/go-ykh531e/climateir"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/ir"
	"github.com/victorjacobs/go-ykh531e/schema"
)

const (
	PlatformName = "ykh531e"
	Class        = "ykh531e::YKH531EClimate"
	Model        = "YK-H/531E"

	ConfUseFahrenheit = "use_fahrenheit"
)

type Config struct {
	climateir.Config

	UseFahrenheit bool
}

// ConfigSchema extends the IR climate base schema with the unit option.
func ConfigSchema() *schema.Schema {
	return climateir.SchemaWithReceiver().Extend(
		schema.Field{Key: schema.Optional(ConfUseFahrenheit, false), Validator: schema.Boolean},
	)
}

func ParseConfig(v schema.Values) Config {
	return Config{
		Config:        climateir.ParseConfig(v),
		UseFahrenheit: v.Bool(ConfUseFahrenheit),
	}
}

// ToCode emits the device object for a validated record.
func ToCode(buf *codegen.Buffer, v schema.Values) (*codegen.Object, error) {
	cfg := ParseConfig(v)

	obj, err := climateir.NewClimateIR(buf, cfg.Config, Class)
	if err != nil {
		return nil, err
	}

	buf.Add(obj.Call("set_fahrenheit", cfg.UseFahrenheit))

	return obj, nil
}

// Build creates the runtime device for a validated record.
func Build(v schema.Values, transmitter ir.Transmitter) *Climate {
	cfg := ParseConfig(v)

	c := NewClimate(cfg.Config, transmitter)
	c.SetFahrenheit(cfg.UseFahrenheit)

	return c
}
