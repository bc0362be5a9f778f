//go:build !no_mqtt

package mqtt

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
)

// Config holds MQTT bridge configuration.
type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// Router is the side of the frame router the bridge uses.
type Router interface {
	Device(name string) (*profile.DeviceContext, error)
	Devices() []*profile.DeviceContext
	Handle(endpoint uint8, clusterID uint16, frame []byte) ([]byte, error)
}

// Bridge publishes local device descriptors and reports to MQTT and feeds
// ZCL frames received over MQTT to the router.
type Bridge struct {
	client pahomqtt.Client
	router Router
	bus    *events.Bus
	prefix string
	logger *slog.Logger
	unsub  func()
}

// NewBridge creates and connects an MQTT bridge.
func NewBridge(router Router, bus *events.Bus, cfg Config, logger *slog.Logger) (*Bridge, error) {
	b := &Bridge{
		router: router,
		bus:    bus,
		prefix: cfg.TopicPrefix,
		logger: logger.With("component", "mqtt"),
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "zigbee-ha"
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(cfg.TopicPrefix+"/bridge/state", "offline", 1, true).
		SetOnConnectHandler(func(_ pahomqtt.Client) {
			b.logger.Info("MQTT connected")
			b.publishBridgeState("online")
			b.publishAll()
			b.subscribeFrames()
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			b.logger.Warn("MQTT connection lost", "err", err)
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	b.client = client
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return b, nil
}

// Start subscribes to bus events.
func (b *Bridge) Start() {
	b.unsub = b.bus.OnAll(b.handleEvent)
	b.logger.Info("MQTT bridge started", "prefix", b.prefix)
}

// Stop publishes offline state, unsubscribes, and disconnects.
func (b *Bridge) Stop() {
	if b.unsub != nil {
		b.unsub()
	}
	b.publishBridgeState("offline")
	b.client.Disconnect(1000)
	b.logger.Info("MQTT bridge stopped")
}

func (b *Bridge) handleEvent(event events.Event) {
	switch event.Type {
	case events.EventDeviceRegistered:
		data, ok := event.Data.(events.DeviceRegistered)
		if !ok {
			return
		}
		d, err := b.router.Device(data.Device)
		if err != nil {
			b.logger.Warn("registered device not found", "device", data.Device, "err", err)
			return
		}
		b.publishDevice(d)
	case events.EventReportDue:
		if c, ok := event.Data.(events.AttributeChange); ok {
			b.send(reportMessage(b.prefix, c))
		}
	}
}

func (b *Bridge) publishBridgeState(state string) {
	b.publish(b.prefix+"/bridge/state", []byte(state), true)
}

// publishAll republishes every descriptor; retained messages may have been
// lost while disconnected.
func (b *Bridge) publishAll() {
	for _, d := range b.router.Devices() {
		b.publishDevice(d)
	}
}

func (b *Bridge) publishDevice(d *profile.DeviceContext) {
	msgs, err := deviceMessages(b.prefix, d)
	if err != nil {
		b.logger.Error("build device descriptor", "device", d.Name, "err", err)
		return
	}
	for _, m := range msgs {
		b.send(m)
	}
	b.logger.Info("published device descriptor", "device", d.Name, "endpoints", len(d.Endpoints))
}

func (b *Bridge) subscribeFrames() {
	topic := b.prefix + "/devices/+/+/zcl"
	b.client.Subscribe(topic, 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		if resp, ok := b.handleFrame(msg.Topic(), msg.Payload()); ok {
			b.send(resp)
		}
	})
}

// handleFrame serves one frame message and returns the reply to publish.
func (b *Bridge) handleFrame(topic string, payload []byte) (message, bool) {
	name, ep, ok := parseFrameTopic(b.prefix, topic)
	if !ok {
		return message{}, false
	}
	reply := func(fm frameMessage) (message, bool) {
		return message{Topic: topic + "/response", Payload: mustJSON(fm)}, true
	}

	var req frameMessage
	if err := json.Unmarshal(payload, &req); err != nil {
		b.logger.Warn("invalid frame JSON", "topic", topic, "err", err)
		return reply(frameMessage{Error: err.Error()})
	}
	frame, err := hex.DecodeString(req.Frame)
	if err != nil {
		return reply(frameMessage{Cluster: req.Cluster, Error: err.Error()})
	}
	d, err := b.router.Device(name)
	if err != nil || d.Endpoint(ep) == nil {
		return reply(frameMessage{Cluster: req.Cluster, Error: fmt.Sprintf("device %q has no endpoint %d", name, ep)})
	}
	resp, err := b.router.Handle(ep, req.Cluster, frame)
	if err != nil {
		return reply(frameMessage{Cluster: req.Cluster, Error: err.Error()})
	}
	if resp == nil {
		return message{}, false
	}
	return reply(frameMessage{Cluster: req.Cluster, Frame: hex.EncodeToString(resp)})
}

func (b *Bridge) send(m message) {
	b.publish(m.Topic, m.Payload, m.Retained)
}

func (b *Bridge) publish(topic string, payload []byte, retained bool) {
	token := b.client.Publish(topic, 1, retained, payload)
	go func() {
		if !token.WaitTimeout(5 * time.Second) {
			b.logger.Warn("MQTT publish timeout", "topic", topic)
		} else if err := token.Error(); err != nil {
			b.logger.Warn("MQTT publish error", "topic", topic, "err", err)
		}
	}()
}
