package profile

import (
	"fmt"

	"github.com/google/uuid"

	"zigbee-ha-profile/internal/zcl"
)

// handleSpace is the UUID namespace device handles are derived in.
var handleSpace = uuid.MustParse("6f1f0c52-9d0e-4a5b-8d43-30a2c1f7e104")

// DeviceContext is the ordered set of endpoints exposed by one device.
// Descriptors are immutable once the context is built; only the reporting
// and CVC tables change at runtime.
type DeviceContext struct {
	Name      string
	Handle    uuid.UUID
	Endpoints []*EndpointDescriptor

	index map[uint8]*EndpointDescriptor
}

// NewDeviceContext collects endpoints into a device context. The handle is
// derived from the name so rebuilding the same image yields the same handle.
func NewDeviceContext(name string, endpoints ...*EndpointDescriptor) (*DeviceContext, error) {
	d := &DeviceContext{
		Name:      name,
		Handle:    uuid.NewSHA1(handleSpace, []byte(name)),
		Endpoints: make([]*EndpointDescriptor, 0, len(endpoints)),
		index:     make(map[uint8]*EndpointDescriptor, len(endpoints)),
	}
	for i, ep := range endpoints {
		if ep == nil {
			return nil, fatalError(ErrNilReference, "device %q endpoint %d", name, i)
		}
		if _, ok := d.index[ep.ID]; ok {
			return nil, configError(ErrDuplicateEndpoint, "device %q endpoint %d", name, ep.ID)
		}
		d.index[ep.ID] = ep
		d.Endpoints = append(d.Endpoints, ep)
	}
	return d, nil
}

// Endpoint returns the endpoint descriptor with the given ID, or nil.
func (d *DeviceContext) Endpoint(id uint8) *EndpointDescriptor {
	if d.index == nil {
		for _, ep := range d.Endpoints {
			if ep.ID == id {
				return ep
			}
		}
		return nil
	}
	return d.index[id]
}

// Target is the result of routing an attribute address.
type Target struct {
	Endpoint  *EndpointDescriptor
	Cluster   *ClusterDescriptor
	Attribute *Attribute
}

// Route resolves endpoint, then (cluster, role), then attribute.
func (d *DeviceContext) Route(endpoint uint8, clusterID uint16, role zcl.Role, attrID uint16) (Target, error) {
	t, err := d.RouteCluster(endpoint, clusterID, role)
	if err != nil {
		return t, err
	}
	t.Attribute = t.Cluster.Attribute(attrID)
	if t.Attribute == nil {
		return t, fmt.Errorf("%w: endpoint %d cluster 0x%04X/%s attribute 0x%04X", ErrNoAttribute, endpoint, clusterID, role, attrID)
	}
	return t, nil
}

// RouteCluster resolves endpoint and (cluster, role).
func (d *DeviceContext) RouteCluster(endpoint uint8, clusterID uint16, role zcl.Role) (Target, error) {
	var t Target
	t.Endpoint = d.Endpoint(endpoint)
	if t.Endpoint == nil {
		return t, fmt.Errorf("%w: %d", ErrNoEndpoint, endpoint)
	}
	t.Cluster = t.Endpoint.Cluster(clusterID, role)
	if t.Cluster == nil {
		return t, fmt.Errorf("%w: endpoint %d cluster 0x%04X/%s", ErrNoCluster, endpoint, clusterID, role)
	}
	return t, nil
}

// Framework is the application layer a device context is handed to.
type Framework interface {
	RegisterDevice(d *DeviceContext) error
}

// Register validates d and exposes it to fw.
func Register(fw Framework, d *DeviceContext) error {
	if fw == nil {
		return fatalError(ErrNilReference, "framework")
	}
	if d == nil {
		return fatalError(ErrNilReference, "device context")
	}
	if err := ValidateDevice(d); err != nil {
		return err
	}
	return fw.RegisterDevice(d)
}
