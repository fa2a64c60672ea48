package bridge

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/config"
	"github.com/victorjacobs/go-ykh531e/homeassistant"
	"github.com/victorjacobs/go-ykh531e/registry"
)

const commandTimeout = 5 * time.Second

type Bridge struct {
	cfg       *config.Configuration
	device    registry.Device
	model     string
	generated *codegen.Buffer
	topics    homeassistant.Topics

	mutex     sync.Mutex
	published map[string]string
}

func New(cfg *config.Configuration, device registry.Device, model string, generated *codegen.Buffer) *Bridge {
	return &Bridge{
		cfg:       cfg,
		device:    device,
		model:     model,
		generated: generated,
		topics:    homeassistant.ClimateTopics(device.Config().ID),
		published: map[string]string{},
	}
}

func (b *Bridge) RegisterClimate(mqttClient mqtt.Client) error {
	homeAssistantClient := homeassistant.NewClient(mqttClient)
	deviceConfig := b.device.Config()

	return homeAssistantClient.RegisterClimate(deviceConfig.ID, deviceConfig.DisplayName(), b.model, b.device.Traits())
}

func (b *Bridge) SubscribeToClimateCommands(mqttClient mqtt.Client) {
	for _, command := range commandDefinitions {
		command := command

		if t := mqttClient.Subscribe(command.topic(b.topics), 0, func(client mqtt.Client, msg mqtt.Message) {
			b.handleCommand(command, string(msg.Payload()))
		}); t.Wait() && t.Error() != nil {
			log.Printf("MQTT receive error: %v", t.Error())
		}
	}

	if sensor := b.device.Config().Sensor; sensor != "" {
		if t := mqttClient.Subscribe(sensor, 0, func(client mqtt.Client, msg mqtt.Message) {
			temp, err := parseTemperature(string(msg.Payload()))
			if err != nil {
				log.Printf("Ignoring sensor reading %q: %v", msg.Payload(), err)
				return
			}
			b.device.SetCurrentTemperature(temp)
		}); t.Wait() && t.Error() != nil {
			log.Printf("MQTT receive error: %v", t.Error())
		}
	}
}

func (b *Bridge) handleCommand(command *commandDefinition, payload string) {
	if b.cfg.Debug {
		log.Printf("Received %v command %q", command.name, payload)
	}

	call, err := command.call(strings.TrimSpace(payload))
	if err != nil {
		log.Printf("Invalid %v command: %v", command.name, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := b.device.Control(ctx, call); err != nil {
		log.Printf("Error setting %v: %v", command.name, err)
	}
}

// PublishState publishes every state topic whose value changed since the
// last publication.
func (b *Bridge) PublishState(mqttClient mqtt.Client, state climate.State) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, definition := range stateDefinitions {
		value, ok := definition.get(state)
		if !ok {
			continue
		}

		topic := definition.topic(b.topics)
		if last, ok := b.published[topic]; ok && last == value {
			continue
		}

		if t := mqttClient.Publish(topic, 0, true, value); t.Wait() && t.Error() != nil {
			log.Printf("MQTT publishing failed: %v", t.Error())
			continue
		}

		b.published[topic] = value
	}
}

// Republish forgets what was published so the next PublishState sends
// everything again, as needed after a reconnect.
func (b *Bridge) Republish(mqttClient mqtt.Client) {
	b.mutex.Lock()
	b.published = map[string]string{}
	b.mutex.Unlock()

	b.PublishState(mqttClient, b.device.State())
}

func (b *Bridge) State() climate.State {
	return b.device.State()
}

func (b *Bridge) Traits() climate.Traits {
	return b.device.Traits()
}

func (b *Bridge) Generated() []codegen.Statement {
	return b.generated.Statements()
}
