//go:build !no_mqtt

package main

import (
	"fmt"

	mqttbridge "zigbee-ha-profile/internal/mqtt"
)

// startMQTT connects the bridge to the router and the event bus and adds it
// to the surfaces stopped on shutdown. The bridge publishes every registered
// device on connect and then follows the bus.
func (a *app) startMQTT(cfg *Config) error {
	if !cfg.MQTT.Enabled {
		return nil
	}
	bridge, err := mqttbridge.NewBridge(a.router, a.bus, mqttbridge.Config{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("mqtt bridge %s: %w", cfg.MQTT.Broker, err)
	}
	bridge.Start()
	a.addSurface("mqtt", bridge)
	return nil
}
