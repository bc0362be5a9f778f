// Package events is the in-process pub/sub bus between the frame router
// and the outer surfaces.
package events

import (
	"log/slog"
	"sync"

	"zigbee-ha-profile/internal/zcl"
)

// Event types
const (
	EventDeviceRegistered    = "device_registered"
	EventAttributeWritten    = "attribute_written"
	EventReportingConfigured = "reporting_configured"
	EventReportDue           = "report_due"
	EventTransition          = "transition"
)

// Event is one bus message.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// DeviceRegistered is the payload of EventDeviceRegistered.
type DeviceRegistered struct {
	Device      string  `json:"device"`
	Handle      string  `json:"handle"`
	Endpoints   []uint8 `json:"endpoints"`
	Fingerprint string  `json:"fingerprint,omitempty"`
}

// AttributeChange is the payload of EventAttributeWritten and EventReportDue.
type AttributeChange struct {
	Device    string   `json:"device"`
	Endpoint  uint8    `json:"endpoint"`
	ClusterID uint16   `json:"cluster_id"`
	Role      zcl.Role `json:"role"`
	AttrID    uint16   `json:"attr_id"`
	Type      uint8    `json:"type"`
	Value     []byte   `json:"value"`
}

// ReportingConfigured is the payload of EventReportingConfigured.
type ReportingConfigured struct {
	Device      string   `json:"device"`
	Endpoint    uint8    `json:"endpoint"`
	ClusterID   uint16   `json:"cluster_id"`
	Role        zcl.Role `json:"role"`
	AttrID      uint16   `json:"attr_id"`
	MinInterval uint16   `json:"min_interval"`
	MaxInterval uint16   `json:"max_interval"`
	Disabled    bool     `json:"disabled,omitempty"`
}

// Transition is the payload of EventTransition.
type Transition struct {
	Device    string `json:"device"`
	Endpoint  uint8  `json:"endpoint"`
	ClusterID uint16 `json:"cluster_id"`
	AttrID    uint16 `json:"attr_id"`
	Value     int64  `json:"value"`
	Done      bool   `json:"done"`
}

// EventHandler is a callback for events.
type EventHandler func(Event)

// Bus provides pub/sub for router events.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[string]map[uint64]EventHandler
	allHandlers map[uint64]EventHandler
	nextID      uint64
	logger      *slog.Logger
}

// NewBus creates a new event bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers:    make(map[string]map[uint64]EventHandler),
		allHandlers: make(map[uint64]EventHandler),
		logger:      logger,
	}
}

// On registers a handler for a specific event type.
// Returns an unsubscribe function.
func (b *Bus) On(eventType string, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]EventHandler)
	}
	b.handlers[eventType][id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// OnAll registers a handler that receives all events.
// Returns an unsubscribe function.
func (b *Bus) OnAll(handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.allHandlers[id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.allHandlers, id)
	}
}

// Emit sends an event to all matching handlers. A nil bus drops the event.
// Handlers are called synchronously; a panicking handler is recovered.
func (b *Bus) Emit(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]EventHandler, 0, len(b.handlers[event.Type])+len(b.allHandlers))
	for _, h := range b.handlers[event.Type] {
		handlers = append(handlers, h)
	}
	for _, h := range b.allHandlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic", "type", event.Type, "panic", r)
				}
			}()
			h(event)
		}()
	}
}
