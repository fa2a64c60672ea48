package homeassistant

type device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer,omitempty"`
}

type climateConfiguration struct {
	UniqueId                string   `json:"unique_id"`
	Name                    string   `json:"name"`
	ModeCommandTopic        string   `json:"mode_command_topic"`
	ModeStateTopic          string   `json:"mode_state_topic"`
	Modes                   []string `json:"modes"`
	FanModeCommandTopic     string   `json:"fan_mode_command_topic"`
	FanModeStateTopic       string   `json:"fan_mode_state_topic"`
	FanModes                []string `json:"fan_modes"`
	SwingModeCommandTopic   string   `json:"swing_mode_command_topic"`
	SwingModeStateTopic     string   `json:"swing_mode_state_topic"`
	SwingModes              []string `json:"swing_modes"`
	PresetModeCommandTopic  string   `json:"preset_mode_command_topic,omitempty"`
	PresetModeStateTopic    string   `json:"preset_mode_state_topic,omitempty"`
	PresetModes             []string `json:"preset_modes,omitempty"`
	TemperatureCommandTopic string   `json:"temperature_command_topic"`
	TemperatureStateTopic   string   `json:"temperature_state_topic"`
	CurrentTemperatureTopic string   `json:"current_temperature_topic,omitempty"`
	MinTemp                 float64  `json:"min_temp"`
	MaxTemp                 float64  `json:"max_temp"`
	TempStep                float64  `json:"temp_step"`
	TemperatureUnit         string   `json:"temperature_unit"`
	Precision               float64  `json:"precision"`
	Device                  device   `json:"device"`
}
