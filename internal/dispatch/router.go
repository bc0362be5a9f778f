package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
)

// Router errors
var (
	ErrDeviceExists  = errors.New("dispatch: device already registered")
	ErrEndpointInUse = errors.New("dispatch: endpoint already served by another device")
	ErrNoDevice      = errors.New("dispatch: no such device")
)

type endpointEntry struct {
	device *profile.DeviceContext
	ep     *profile.EndpointDescriptor
}

// Router is the application framework local device contexts register with.
// It serves foundation commands and a small set of cluster commands against
// the attribute storage the descriptors reference.
type Router struct {
	mu        sync.RWMutex
	devices   map[string]*profile.DeviceContext
	endpoints map[uint8]endpointEntry

	// writeMu serializes attribute writes so undivided writes are atomic
	// with respect to each other.
	writeMu sync.Mutex

	registry *zcl.Registry
	bus      *events.Bus
	logger   *slog.Logger
}

// NewRouter creates a router. registry supplies cluster revisions and may
// be nil; bus may be nil.
func NewRouter(logger *slog.Logger, bus *events.Bus, registry *zcl.Registry) *Router {
	return &Router{
		devices:   make(map[string]*profile.DeviceContext),
		endpoints: make(map[uint8]endpointEntry),
		registry:  registry,
		bus:       bus,
		logger:    logger.With("component", "dispatch"),
	}
}

// RegisterDevice implements profile.Framework. Endpoint numbers are unique
// across all devices of one router.
func (r *Router) RegisterDevice(d *profile.DeviceContext) error {
	r.mu.Lock()
	if _, ok := r.devices[d.Name]; ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDeviceExists, d.Name)
	}
	for _, ep := range d.Endpoints {
		if other, ok := r.endpoints[ep.ID]; ok {
			r.mu.Unlock()
			return fmt.Errorf("%w: endpoint %d belongs to %q", ErrEndpointInUse, ep.ID, other.device.Name)
		}
	}
	r.devices[d.Name] = d
	ids := make([]uint8, 0, len(d.Endpoints))
	for _, ep := range d.Endpoints {
		r.endpoints[ep.ID] = endpointEntry{device: d, ep: ep}
		ids = append(ids, ep.ID)
	}
	r.mu.Unlock()

	r.logger.Info("device registered", "device", d.Name, "handle", d.Handle, "endpoints", ids)
	r.bus.Emit(events.Event{Type: events.EventDeviceRegistered, Data: events.DeviceRegistered{
		Device:    d.Name,
		Handle:    d.Handle.String(),
		Endpoints: ids,
	}})
	return nil
}

// Device returns a registered device by name.
func (r *Router) Device(name string) (*profile.DeviceContext, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDevice, name)
	}
	return d, nil
}

// Devices returns the registered devices ordered by name.
func (r *Router) Devices() []*profile.DeviceContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*profile.DeviceContext, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Router) lookup(endpoint uint8) (endpointEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.endpoints[endpoint]
	return e, ok
}

// Handle processes one ZCL frame received on endpoint for clusterID and
// returns the response frame, or nil when none is due. Frames for unknown
// endpoints are dropped with profile.ErrNoEndpoint.
func (r *Router) Handle(endpoint uint8, clusterID uint16, frame []byte) ([]byte, error) {
	entry, ok := r.lookup(endpoint)
	if !ok {
		return nil, fmt.Errorf("%w: %d", profile.ErrNoEndpoint, endpoint)
	}
	h, payload, err := ParseFrame(frame)
	if err != nil {
		return nil, err
	}

	t, err := entry.device.RouteCluster(endpoint, clusterID, h.TargetRole())
	if err != nil {
		r.logger.Debug("cluster not served", "endpoint", endpoint, "cluster", fmt.Sprintf("0x%04X", clusterID), "role", h.TargetRole())
		return r.defaultResponse(h, zcl.ZCLStatusUnsupCluster), nil
	}
	if !manufacturerMatches(h, t.Cluster) {
		r.logger.Debug("manufacturer code mismatch", "endpoint", endpoint, "cluster", fmt.Sprintf("0x%04X", clusterID),
			"frame", h.ManufacturerSpecific(), "code", fmt.Sprintf("0x%04X", h.ManufacturerCode),
			"cluster_code", fmt.Sprintf("0x%04X", t.Cluster.ManufacturerCode))
		return r.defaultResponse(h, zcl.ZCLStatusUnsupManufClusterCmd), nil
	}

	req := &request{router: r, device: entry.device, ep: entry.ep, cluster: t.Cluster, header: h}
	if h.Global() {
		return req.foundation(payload), nil
	}
	return req.clusterCommand(payload), nil
}

// manufacturerMatches reports whether the frame and the cluster instance
// agree: a manufacturer-specific frame needs a cluster with the same code,
// a standard frame a standard cluster.
func manufacturerMatches(h Header, c *profile.ClusterDescriptor) bool {
	if h.ManufacturerSpecific() {
		return c.ManufacturerSpecific() && c.ManufacturerCode == h.ManufacturerCode
	}
	return !c.ManufacturerSpecific()
}

// defaultResponse is suppressed for successful commands when the sender
// disabled it, and never sent in reply to a default response.
func (r *Router) defaultResponse(h Header, status uint8) []byte {
	if h.Global() && h.Command == zcl.FoundationDefaultResponse {
		return nil
	}
	if status == zcl.ZCLStatusSuccess && h.DisableDefaultResponse() {
		return nil
	}
	return defaultResponse(h, status)
}

// request carries the routing result of one frame.
type request struct {
	router  *Router
	device  *profile.DeviceContext
	ep      *profile.EndpointDescriptor
	cluster *profile.ClusterDescriptor
	header  Header
}

func (q *request) respond(command uint8, payload []byte) []byte {
	h := responseHeader(q.header, zcl.FrameTypeGlobal, command)
	return AppendHeader(h, payload)
}

// load reads the stored value of a; unset values read as FAILURE.
func (q *request) load(a *profile.Attribute) ([]byte, uint8) {
	v, err := a.Storage.Load()
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, zcl.ZCLStatusFailure
	case err != nil:
		q.router.logger.Warn("attribute load failed", "device", q.device.Name, "endpoint", q.ep.ID,
			"cluster", fmt.Sprintf("0x%04X", q.cluster.ClusterID), "attr", fmt.Sprintf("0x%04X", a.ID), "error", err)
		return nil, zcl.ZCLStatusFailure
	}
	return v, zcl.ZCLStatusSuccess
}

// store writes a value and feeds the reporting context.
func (q *request) store(a *profile.Attribute, value []byte) error {
	return q.router.setAttribute(q.device, q.ep, q.cluster, a, value)
}

func (r *Router) setAttribute(d *profile.DeviceContext, ep *profile.EndpointDescriptor, c *profile.ClusterDescriptor, a *profile.Attribute, value []byte) error {
	if err := a.Storage.Store(value); err != nil {
		return fmt.Errorf("store cluster 0x%04X attribute 0x%04X: %w", c.ClusterID, a.ID, err)
	}
	change := events.AttributeChange{
		Device:    d.Name,
		Endpoint:  ep.ID,
		ClusterID: c.ClusterID,
		Role:      c.Role,
		AttrID:    a.ID,
		Type:      a.Type,
		Value:     value,
	}
	r.bus.Emit(events.Event{Type: events.EventAttributeWritten, Data: change})

	if ep.Reporting.MarkChanged(c.ClusterID, c.Role, a.ID, value) {
		r.bus.Emit(events.Event{Type: events.EventReportDue, Data: change})
		// the bus is the report sink; the value counts as reported once emitted
		if err := ep.Reporting.Reported(c.ClusterID, c.Role, a.ID, value); err != nil {
			r.logger.Debug("report bookkeeping failed", "error", err)
		}
	}
	return nil
}
