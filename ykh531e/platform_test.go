package ykh531e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/ir"
	"github.com/victorjacobs/go-ykh531e/schema"
)

func TestConfigSchema_UseFahrenheit(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		present bool
		want    bool
		wantErr bool
	}{
		{name: "omitted", want: false},
		{name: "true", value: true, present: true, want: true},
		{name: "false", value: false, present: true, want: false},
		{name: "yes", value: "yes", present: true, wantErr: true},
		{name: "maybe", value: "maybe", present: true, wantErr: true},
		{name: "number", value: 1, present: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := schema.Values{}
			if tt.present {
				raw[ConfUseFahrenheit] = tt.value
			}

			v, err := ConfigSchema().Validate(raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v[ConfUseFahrenheit])
		})
	}
}

func TestConfigSchema_KeepsBaseKeys(t *testing.T) {
	assert.Equal(t, []string{"name", "id", "supports_cool", "supports_heat", "sensor", "receiver", "use_fahrenheit"}, ConfigSchema().Keys())
}

func generate(t *testing.T, raw schema.Values) (*codegen.Buffer, *codegen.Object, error) {
	t.Helper()

	buf := codegen.NewBuffer()
	v, err := ConfigSchema().Validate(raw)
	if err != nil {
		return buf, nil, err
	}

	obj, err := ToCode(buf, v)
	return buf, obj, err
}

func TestToCode_DefaultsToCelsius(t *testing.T) {
	buf, obj, err := generate(t, schema.Values{})
	require.NoError(t, err)

	assert.Equal(t, Class, obj.Class)
	assert.Equal(t, `auto *ykh531e_climate_1 = new ykh531e::YKH531EClimate();
ykh531e_climate_1->set_supports_cool(true);
ykh531e_climate_1->set_supports_heat(true);
ykh531e_climate_1->set_receiver(true);
ykh531e_climate_1->set_fahrenheit(false);
`, buf.String())
}

func TestToCode_Fahrenheit(t *testing.T) {
	buf, obj, err := generate(t, schema.Values{"name": "AC", "id": "bedroom", "use_fahrenheit": true})
	require.NoError(t, err)

	assert.Equal(t, "bedroom", obj.ID)
	assert.Equal(t, `auto *bedroom = new ykh531e::YKH531EClimate();
bedroom->set_name("AC");
bedroom->set_supports_cool(true);
bedroom->set_supports_heat(true);
bedroom->set_receiver(true);
bedroom->set_fahrenheit(true);
`, buf.String())
}

func TestToCode_InvalidEmitsNothing(t *testing.T) {
	buf, obj, err := generate(t, schema.Values{"use_fahrenheit": "maybe"})

	assert.ErrorIs(t, err, schema.ErrInvalid)
	assert.Nil(t, obj)
	assert.Empty(t, buf.Statements())
}

func TestToCode_ExactlyOneFahrenheitCall(t *testing.T) {
	buf, obj, err := generate(t, schema.Values{"name": "AC", "sensor": "room/temperature"})
	require.NoError(t, err)

	var n int
	for _, s := range buf.Statements() {
		if s.Object == obj.ID && s.Method == "set_fahrenheit" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

type recordingTransmitter struct {
	sent []ir.Pulses
}

func (t *recordingTransmitter) Transmit(_ context.Context, p ir.Pulses) error {
	t.sent = append(t.sent, p)
	return nil
}

func validated(t *testing.T, raw schema.Values) schema.Values {
	t.Helper()

	v, err := ConfigSchema().Validate(raw)
	require.NoError(t, err)
	return v
}

func TestBuild_TransmitsInConfiguredUnit(t *testing.T) {
	tx := &recordingTransmitter{}
	c := Build(validated(t, schema.Values{"name": "AC", "use_fahrenheit": true}), tx)
	assert.True(t, c.Fahrenheit())

	mode := climate.ModeCool
	temp := 24.0
	require.NoError(t, c.Control(context.Background(), climate.Call{Mode: &mode, TargetTemperature: &temp}))
	require.Len(t, tx.sent, 1)

	f, err := Demodulate(ir.NewReader(tx.sent[0].Durations))
	require.NoError(t, err)
	assert.NotZero(t, f[6]&fahrenheitFlag)
	assert.Equal(t, byte(0xA6), f[10])
}

func TestBuild_HeatOnlyWhenSupported(t *testing.T) {
	c := Build(validated(t, schema.Values{"name": "AC", "supports_heat": false}), &recordingTransmitter{})

	assert.False(t, c.Traits().SupportsMode(climate.ModeHeat))
	assert.True(t, c.Traits().SupportsMode(climate.ModeFanOnly))
	assert.False(t, c.Traits().SupportsCurrentTemperature)

	mode := climate.ModeHeat
	err := c.Control(context.Background(), climate.Call{Mode: &mode})
	assert.ErrorIs(t, err, climate.ErrUnsupported)
}

func TestClimate_ReceivesRemoteFrames(t *testing.T) {
	c := Build(validated(t, schema.Values{"name": "AC"}), &recordingTransmitter{})
	c.SetDebug(true)

	var published []climate.State
	c.AddListener(func(s climate.State) { published = append(published, s) })

	assert.True(t, c.OnReceive(Modulate(EncodeFrame(coolState, false))))
	require.Len(t, published, 1)
	assert.Equal(t, coolState, published[0])

	assert.False(t, c.OnReceive(ir.Pulses{Durations: []int32{600, -600}}))
	assert.Len(t, published, 1)
}
