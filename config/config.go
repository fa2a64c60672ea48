package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"regexp"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/victorjacobs/go-ykh531e/schema"
	"gopkg.in/yaml.v3"
)

const HomeAssistantPrefix = "homeassistant"
const TopicPrefix = "ykh531e"

const platformKey = "platform"

type Configuration struct {
	SerialPort string         `yaml:"serial_port"`
	BaudRate   int            `yaml:"baud_rate"`
	Debug      bool           `yaml:"debug"`
	Http       Http           `yaml:"http"`
	Mqtt       Mqtt           `yaml:"mqtt"`
	Climate    map[string]any `yaml:"climate"`
}

type Http struct {
	Listen string `yaml:"listen"`
}

type Mqtt struct {
	IpAddress string `yaml:"ip_address"`
	Port      int    `yaml:"port"`
	ClientID  string `yaml:"client_id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

// LoadEnv loads variables from a .env file if it exists.
func LoadEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with the value of VAR. Any other $ is kept as
// is, so secrets like "pa$$word" survive.
func expandEnv(s string) string {
	return envReference.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// LoadConfiguration reads a YAML file, expanding ${VAR} references from the
// environment, and fills in defaults.
func LoadConfiguration(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	configuration := &Configuration{}
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), configuration); err != nil {
		return nil, fmt.Errorf("parsing %v: %w", filename, err)
	}

	if configuration.SerialPort == "" {
		return nil, errors.New("serial_port is required")
	}
	if configuration.BaudRate == 0 {
		configuration.BaudRate = 115200
	}
	if configuration.Http.Listen == "" {
		configuration.Http.Listen = ":8080"
	}
	if configuration.Mqtt.Port == 0 {
		configuration.Mqtt.Port = 1883
	}
	if configuration.Mqtt.ClientID == "" {
		configuration.Mqtt.ClientID = TopicPrefix
	}

	return configuration, nil
}

// Platform splits the climate section into the platform name and the record
// validated by that platform's schema.
func (c *Configuration) Platform() (string, schema.Values, error) {
	if c.Climate == nil {
		return "", nil, errors.New("climate section is missing")
	}

	name, ok := c.Climate[platformKey].(string)
	if !ok || name == "" {
		return "", nil, errors.New("climate: platform is required")
	}

	raw := make(schema.Values, len(c.Climate))
	for k, v := range c.Climate {
		if k != platformKey {
			raw[k] = v
		}
	}

	return name, raw, nil
}

func (m *Mqtt) ClientOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%v:%v", m.IpAddress, m.Port)).
		SetClientID(m.ClientID).
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
			log.Printf("MQTT reconnecting")
		})
}
