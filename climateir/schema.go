package climateir

import (
	"regexp"
	"strings"

	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/schema"
)

const (
	ConfName         = "name"
	ConfID           = "id"
	ConfSupportsCool = "supports_cool"
	ConfSupportsHeat = "supports_heat"
	ConfSensor       = "sensor"
	ConfReceiver     = "receiver"
)

// Config is the validated base configuration shared by all IR climate
// platforms.
type Config struct {
	Name         string
	ID           string
	SupportsCool bool
	SupportsHeat bool
	Sensor       string
	Receiver     bool
}

// SchemaWithReceiver is the base schema for IR climate devices that can also
// decode frames sent by the handheld remote.
func SchemaWithReceiver() *schema.Schema {
	return schema.New(
		schema.Field{Key: schema.Optional(ConfName), Validator: schema.NonEmptyString},
		schema.Field{Key: schema.Optional(ConfID), Validator: schema.ID},
		schema.Field{Key: schema.Optional(ConfSupportsCool, true), Validator: schema.Boolean},
		schema.Field{Key: schema.Optional(ConfSupportsHeat, true), Validator: schema.Boolean},
		schema.Field{Key: schema.Optional(ConfSensor), Validator: schema.NonEmptyString},
		schema.Field{Key: schema.Optional(ConfReceiver, true), Validator: schema.Boolean},
	)
}

// ParseConfig reads the base keys from a validated record. A missing id is
// derived from the name; without either, the id stays empty and is assigned
// by NewClimateIR.
func ParseConfig(v schema.Values) Config {
	cfg := Config{
		Name:         v.String(ConfName),
		ID:           v.String(ConfID),
		SupportsCool: v.Bool(ConfSupportsCool),
		SupportsHeat: v.Bool(ConfSupportsHeat),
		Sensor:       v.String(ConfSensor),
		Receiver:     v.Bool(ConfReceiver),
	}

	if cfg.ID == "" && cfg.Name != "" {
		cfg.ID = idFromName(cfg.Name)
	}

	return cfg
}

// DisplayName is the configured name, or the id for unnamed devices.
func (c Config) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

var nonIdentifier = regexp.MustCompile(`[^a-z0-9_]+`)

func idFromName(name string) string {
	id := nonIdentifier.ReplaceAllString(strings.ToLower(name), "_")
	id = strings.Trim(id, "_")
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "climate_" + id
	}
	return id
}

func generatedIDBase(class string) string {
	namespace, _, found := strings.Cut(class, "::")
	if !found || namespace == "" {
		return "climate"
	}
	return strings.ToLower(namespace) + "_climate"
}

// NewClimateIR declares the device object and emits the base setters. A
// config without id gets one generated from the class namespace, e.g.
// ykh531e_climate_1 for ykh531e::YKH531EClimate.
func NewClimateIR(buf *codegen.Buffer, cfg Config, class string) (*codegen.Object, error) {
	var obj *codegen.Object
	if cfg.ID == "" {
		obj = buf.NewUnique(generatedIDBase(class), class)
	} else {
		var err error
		if obj, err = buf.New(cfg.ID, class); err != nil {
			return nil, err
		}
	}

	if cfg.Name != "" {
		buf.Add(obj.Call("set_name", cfg.Name))
	}
	buf.Add(obj.Call("set_supports_cool", cfg.SupportsCool))
	buf.Add(obj.Call("set_supports_heat", cfg.SupportsHeat))
	if cfg.Sensor != "" {
		buf.Add(obj.Call("set_sensor", cfg.Sensor))
	}
	if cfg.Receiver {
		buf.Add(obj.Call("set_receiver", true))
	}

	return obj, nil
}
