//go:build no_mqtt

package main

import "errors"

// startMQTT refuses an enabled bridge in a binary built without MQTT.
func (a *app) startMQTT(cfg *Config) error {
	if cfg.MQTT.Enabled {
		return errors.New("mqtt is enabled but the binary was built with no_mqtt")
	}
	return nil
}
