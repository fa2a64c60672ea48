package homeassistant

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/config"
)

// Topics are the MQTT topics of one climate entity.
type Topics struct {
	Mode                     string
	ModeCommand              string
	FanMode                  string
	FanModeCommand           string
	SwingMode                string
	SwingModeCommand         string
	Preset                   string
	PresetCommand            string
	TargetTemperature        string
	TargetTemperatureCommand string
	CurrentTemperature       string
}

func ClimateTopics(id string) Topics {
	base := fmt.Sprintf("%v/%v", config.TopicPrefix, id)

	return Topics{
		Mode:                     base + "/mode/state",
		ModeCommand:              base + "/mode/cmd",
		FanMode:                  base + "/fan_mode/state",
		FanModeCommand:           base + "/fan_mode/cmd",
		SwingMode:                base + "/swing_mode/state",
		SwingModeCommand:         base + "/swing_mode/cmd",
		Preset:                   base + "/preset/state",
		PresetCommand:            base + "/preset/cmd",
		TargetTemperature:        base + "/target_temperature/state",
		TargetTemperatureCommand: base + "/target_temperature/cmd",
		CurrentTemperature:       base + "/current_temperature/state",
	}
}

type Client struct {
	mqtt mqtt.Client
}

func NewClient(mqtt mqtt.Client) *Client {
	return &Client{
		mqtt: mqtt,
	}
}

// RegisterClimate publishes the discovery document for a climate entity.
func (h *Client) RegisterClimate(id string, name string, model string, traits climate.Traits) error {
	topics := ClimateTopics(id)

	cfg := climateConfiguration{
		UniqueId:                id,
		Name:                    name,
		ModeCommandTopic:        topics.ModeCommand,
		ModeStateTopic:          topics.Mode,
		Modes:                   toStrings(traits.Modes),
		FanModeCommandTopic:     topics.FanModeCommand,
		FanModeStateTopic:       topics.FanMode,
		FanModes:                toStrings(traits.FanModes),
		SwingModeCommandTopic:   topics.SwingModeCommand,
		SwingModeStateTopic:     topics.SwingMode,
		SwingModes:              toStrings(traits.SwingModes),
		TemperatureCommandTopic: topics.TargetTemperatureCommand,
		TemperatureStateTopic:   topics.TargetTemperature,
		MinTemp:                 traits.MinTemperature,
		MaxTemp:                 traits.MaxTemperature,
		TempStep:                traits.TemperatureStep,
		TemperatureUnit:         "C",
		Precision:               0.1,
		Device: device{
			Identifiers: []string{id},
			Name:        name,
			Model:       model,
		},
	}

	// Home Assistant implies "none", listing it is an error.
	for _, p := range traits.Presets {
		if p != climate.PresetNone {
			cfg.PresetModes = append(cfg.PresetModes, string(p))
		}
	}
	if len(cfg.PresetModes) > 0 {
		cfg.PresetModeCommandTopic = topics.PresetCommand
		cfg.PresetModeStateTopic = topics.Preset
	}

	if traits.SupportsCurrentTemperature {
		cfg.CurrentTemperatureTopic = topics.CurrentTemperature
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	configTopic := fmt.Sprintf("%v/climate/%v/config", config.HomeAssistantPrefix, id)

	if t := h.mqtt.Publish(configTopic, 0, true, payload); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	return nil
}

func toStrings[T ~string](values []T) []string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return s
}
