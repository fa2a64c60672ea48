package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-ykh531e/bridge"
	"github.com/victorjacobs/go-ykh531e/climate"
	"github.com/victorjacobs/go-ykh531e/codegen"
	"github.com/victorjacobs/go-ykh531e/config"
	"github.com/victorjacobs/go-ykh531e/ir"
	"github.com/victorjacobs/go-ykh531e/registry"
	"github.com/victorjacobs/go-ykh531e/routes"
)

func main() {
	configFile := flag.String("config", "ykh531e.yaml", "configuration file")
	envFile := flag.String("env", ".env", "optional file with environment variables")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		log.Fatalf("Error loading %v: %v", *envFile, err)
	}

	cfg, err := config.LoadConfiguration(*configFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	platformName, raw, err := cfg.Platform()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	platform, err := registry.Lookup(platformName)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	transceiver := ir.NewSerialTransceiver(cfg.SerialPort, cfg.BaudRate)

	generated := codegen.NewBuffer()
	device, err := registry.Setup(generated, platformName, raw, transceiver)
	if err != nil {
		log.Fatalf("Invalid climate configuration: %v", err)
	}
	device.SetDebug(cfg.Debug)

	if cfg.Debug {
		log.Printf("Generated:\n%v", generated)
	}
	log.Printf("Set up %v (%v) on %v", device.Config().DisplayName(), platform.Model, cfg.SerialPort)

	bridge := bridge.New(cfg, device, platform.Model, generated)

	mqttOpts := cfg.Mqtt.ClientOptions()
	// Configure MQTT subscriptions in the ConnectHandler to make sure they are set up after reconnect
	mqttOpts.SetOnConnectHandler(func(client mqtt.Client) {
		bridge.SubscribeToClimateCommands(client)
		bridge.Republish(client)
	})

	mqttClient := mqtt.NewClient(mqttOpts)
	if t := mqttClient.Connect(); t.Wait() && t.Error() != nil {
		log.Printf("MQTT connection error: %v", t.Error())
		return
	}

	if err := bridge.RegisterClimate(mqttClient); err != nil {
		log.Printf("Registering climate failed: %v", err)
	}
	device.AddListener(func(state climate.State) {
		bridge.PublishState(mqttClient, state)
	})

	// Frames sent by the handheld remote
	if device.Config().Receiver {
		go loopSafely("receive", func() {
			err := transceiver.Receive(context.Background(), func(p ir.Pulses) {
				if !device.OnReceive(p) && cfg.Debug {
					log.Printf("Ignored signal with %v durations", len(p.Durations))
				}
			})
			log.Printf("Receiving stopped: %v", err)

			time.Sleep(5 * time.Second)
		})
	}

	router := routes.NewRouter(bridge)

	go loopSafely("http", func() {
		if err := http.ListenAndServe(cfg.Http.Listen, router); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}

		time.Sleep(time.Second)
	})

	select {}
}
