package climate

type Mode string

const (
	ModeOff     Mode = "off"
	ModeAuto    Mode = "auto"
	ModeCool    Mode = "cool"
	ModeHeat    Mode = "heat"
	ModeDry     Mode = "dry"
	ModeFanOnly Mode = "fan_only"
)

type FanMode string

const (
	FanAuto   FanMode = "auto"
	FanLow    FanMode = "low"
	FanMedium FanMode = "medium"
	FanHigh   FanMode = "high"
)

type SwingMode string

const (
	SwingOff      SwingMode = "off"
	SwingVertical SwingMode = "vertical"
)

type Preset string

const (
	PresetNone  Preset = "none"
	PresetSleep Preset = "sleep"
)

// Traits describe what a climate device supports.
type Traits struct {
	SupportsCurrentTemperature bool
	Modes                      []Mode
	FanModes                   []FanMode
	SwingModes                 []SwingMode
	Presets                    []Preset
	MinTemperature             float64
	MaxTemperature             float64
	TemperatureStep            float64
}

type State struct {
	Mode               Mode      `json:"mode"`
	FanMode            FanMode   `json:"fan_mode"`
	SwingMode          SwingMode `json:"swing_mode"`
	Preset             Preset    `json:"preset"`
	TargetTemperature  float64   `json:"target_temperature"`
	CurrentTemperature *float64  `json:"current_temperature,omitempty"`
}

// Call is a partial state update. Nil fields are left unchanged.
type Call struct {
	Mode              *Mode
	FanMode           *FanMode
	SwingMode         *SwingMode
	Preset            *Preset
	TargetTemperature *float64
}
