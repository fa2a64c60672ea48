package bridge

import (
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/homeassistant"
)

type commandDefinition struct {
	name  string
	topic func(topics homeassistant.Topics) string
	call  func(payload string) (climate.Call, error)
}

type stateDefinition struct {
	name  string
	topic func(topics homeassistant.Topics) string
	get   func(state climate.State) (string, bool)
}
