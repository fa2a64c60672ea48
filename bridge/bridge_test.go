package bridge

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/config"
	"github.com/victorjacobs/go-ykh531e/internal/mqtttest"
	"github.com/victorjacobs/go-ykh531e/ir"
	"github.com/victorjacobs/go-ykh531e/registry"
	"github.com/victorjacobs/go-ykh531e/schema"
)

type recordingTransmitter struct {
	sent []ir.Pulses
}

func (t *recordingTransmitter) Transmit(_ context.Context, p ir.Pulses) error {
	t.sent = append(t.sent, p)
	return nil
}

func newBridge(t *testing.T, raw schema.Values) (*Bridge, *mqtttest.Client, *recordingTransmitter) {
	t.Helper()

	tx := &recordingTransmitter{}
	buf := codegen.NewBuffer()
	device, err := registry.Setup(buf, "ykh531e", raw, tx)
	require.NoError(t, err)

	client := mqtttest.NewClient()
	b := New(&config.Configuration{}, device, "YK-H/531E", buf)
	device.AddListener(func(s climate.State) { b.PublishState(client, s) })

	return b, client, tx
}

func TestBridge_Commands(t *testing.T) {
	b, client, tx := newBridge(t, schema.Values{"name": "AC"})
	b.SubscribeToClimateCommands(client)

	require.True(t, client.Deliver("ykh531e/ac/mode/cmd", "cool"))
	require.True(t, client.Deliver("ykh531e/ac/target_temperature/cmd", "21.6"))
	require.True(t, client.Deliver("ykh531e/ac/fan_mode/cmd", "high"))
	require.True(t, client.Deliver("ykh531e/ac/swing_mode/cmd", "vertical"))
	require.True(t, client.Deliver("ykh531e/ac/preset/cmd", "sleep"))

	assert.Len(t, tx.sent, 5)

	state := b.State()
	assert.Equal(t, climate.ModeCool, state.Mode)
	assert.Equal(t, 22.0, state.TargetTemperature)
	assert.Equal(t, climate.FanHigh, state.FanMode)
	assert.Equal(t, climate.SwingVertical, state.SwingMode)
	assert.Equal(t, climate.PresetSleep, state.Preset)

	mode, _ := client.Last("ykh531e/ac/mode/state")
	assert.Equal(t, "cool", mode)
	temp, _ := client.Last("ykh531e/ac/target_temperature/state")
	assert.Equal(t, "22.0", temp)
}

func TestBridge_InvalidCommandIsIgnored(t *testing.T) {
	b, client, tx := newBridge(t, schema.Values{"name": "AC", "supports_heat": false})
	b.SubscribeToClimateCommands(client)

	client.Deliver("ykh531e/ac/mode/cmd", "turbo")
	client.Deliver("ykh531e/ac/mode/cmd", "heat")
	client.Deliver("ykh531e/ac/target_temperature/cmd", "warm")

	assert.Empty(t, tx.sent)
	assert.Equal(t, climate.ModeOff, b.State().Mode)
	assert.Empty(t, client.Published())
}

func TestBridge_PublishesOnlyChanges(t *testing.T) {
	b, client, _ := newBridge(t, schema.Values{"name": "AC"})

	b.PublishState(client, b.State())
	first := len(client.Published())
	assert.Equal(t, 5, first)

	b.PublishState(client, b.State())
	assert.Len(t, client.Published(), first)

	b.Republish(client)
	assert.Len(t, client.Published(), 2*first)
}

func TestBridge_Sensor(t *testing.T) {
	b, client, _ := newBridge(t, schema.Values{"name": "AC", "sensor": "room/temperature"})
	b.SubscribeToClimateCommands(client)

	require.True(t, client.Deliver("room/temperature", "23.4"))
	require.NotNil(t, b.State().CurrentTemperature)
	assert.Equal(t, 23.4, *b.State().CurrentTemperature)

	current, ok := client.Last("ykh531e/ac/current_temperature/state")
	require.True(t, ok)
	assert.Equal(t, "23.4", current)

	client.Deliver("room/temperature", "unavailable")
	assert.Equal(t, 23.4, *b.State().CurrentTemperature)
}

func TestBridge_NoSensorSubscription(t *testing.T) {
	b, client, _ := newBridge(t, schema.Values{"name": "AC"})
	b.SubscribeToClimateCommands(client)

	assert.True(t, client.Subscribed("ykh531e/ac/preset/cmd"))
	assert.False(t, client.Subscribed(""))
}

func TestBridge_RegisterClimate(t *testing.T) {
	b, client, _ := newBridge(t, schema.Values{"name": "AC"})

	require.NoError(t, b.RegisterClimate(client))
	_, ok := client.Last("homeassistant/climate/ac/config")
	assert.True(t, ok)
}

func TestBridge_RegisterClimateUnnamed(t *testing.T) {
	b, client, _ := newBridge(t, schema.Values{})

	require.NoError(t, b.RegisterClimate(client))
	payload, ok := client.Last("homeassistant/climate/ykh531e_climate_1/config")
	require.True(t, ok)
	assert.Contains(t, payload, `"name":"ykh531e_climate_1"`)
}

func TestBridge_DebugLogsCommands(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{name: "debug", debug: true},
		{name: "quiet", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			log.SetOutput(&out)
			t.Cleanup(func() { log.SetOutput(os.Stderr) })

			b, client, _ := newBridge(t, schema.Values{"name": "AC"})
			b.cfg.Debug = tt.debug
			b.SubscribeToClimateCommands(client)

			require.True(t, client.Deliver("ykh531e/ac/mode/cmd", "cool"))
			assert.Equal(t, climate.ModeCool, b.State().Mode)

			if tt.debug {
				assert.Contains(t, out.String(), `Received mode command "cool"`)
			} else {
				assert.NotContains(t, out.String(), "Received")
			}
		})
	}
}

func TestBridge_Generated(t *testing.T) {
	b, _, _ := newBridge(t, schema.Values{"name": "AC", "use_fahrenheit": true})

	generated := b.Generated()
	require.NotEmpty(t, generated)
	assert.Equal(t, "ac->set_fahrenheit(true);", generated[len(generated)-1].String())
}
