package devicedb

import (
	"fmt"
	"slices"

	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
)

// DeviceSpec is the image of one local device: its name and endpoints.
type DeviceSpec struct {
	Name      string         `yaml:"name" json:"name"`
	Endpoints []EndpointSpec `yaml:"endpoints" json:"endpoints"`
}

// EndpointSpec instantiates a template on an endpoint number.
type EndpointSpec struct {
	Endpoint uint8         `yaml:"endpoint" json:"endpoint"`
	Template string        `yaml:"template" json:"template"`
	Clusters []ClusterSpec `yaml:"clusters,omitempty" json:"clusters,omitempty"`
}

// ClusterSpec adjusts one manifest slot of the endpoint's template.
// Attributes selects a subset of the catalogue attributes; when empty all of
// them are declared. Values are written on every build, before defaults are
// seeded.
type ClusterSpec struct {
	Cluster          uint16          `yaml:"cluster" json:"cluster"`
	Role             zcl.Role        `yaml:"role,omitempty" json:"role,omitempty"`
	Attributes       []uint16        `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	ManufacturerCode *uint16         `yaml:"manufacturer_code,omitempty" json:"manufacturer_code,omitempty"`
	Values           map[uint16]any  `yaml:"values,omitempty" json:"values,omitempty"`
	Reporting        []ReportingSpec `yaml:"reporting,omitempty" json:"reporting,omitempty"`
}

func (c ClusterSpec) key() profile.ClusterKey {
	role := c.Role
	if role == 0 {
		role = zcl.RoleServer
	}
	return profile.ClusterKey{ID: c.Cluster, Role: role}
}

// ReportingSpec is an initial reporting configuration. Change is ignored
// for discrete attribute types.
type ReportingSpec struct {
	Attribute uint16 `yaml:"attribute" json:"attribute"`
	Min       uint16 `yaml:"min" json:"min"`
	Max       uint16 `yaml:"max" json:"max"`
	Change    any    `yaml:"change,omitempty" json:"change,omitempty"`
}

func configErr(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", profile.ErrConfig, cause, fmt.Sprintf(format, args...))
}

// BuildDevice turns a device image into a validated device context whose
// attributes live in s. Unset attributes are seeded with catalogue
// defaults.
func (l *Library) BuildDevice(spec DeviceSpec, registry *zcl.Registry, s store.Store) (*profile.DeviceContext, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %w: attribute store", profile.ErrFatal, profile.ErrNilReference)
	}
	if registry == nil {
		return nil, fmt.Errorf("%w: %w: cluster registry", profile.ErrFatal, profile.ErrNilReference)
	}
	if spec.Name == "" {
		return nil, configErr(profile.ErrManifest, "device has no name")
	}

	eps := make([]*profile.EndpointDescriptor, 0, len(spec.Endpoints))
	for _, es := range spec.Endpoints {
		ep, err := l.buildEndpoint(spec.Name, es, registry, s)
		if err != nil {
			return nil, fmt.Errorf("device %q endpoint %d: %w", spec.Name, es.Endpoint, err)
		}
		eps = append(eps, ep)
	}
	d, err := profile.NewDeviceContext(spec.Name, eps...)
	if err != nil {
		return nil, err
	}
	if err := profile.ValidateDevice(d); err != nil {
		return nil, err
	}

	seeded := 0
	for _, ep := range d.Endpoints {
		n, err := store.SeedDefaults(s, d.Name, ep, registry)
		if err != nil {
			return nil, fmt.Errorf("seed device %q endpoint %d: %w", d.Name, ep.ID, err)
		}
		seeded += n
	}
	l.logger.Info("device built", "device", d.Name, "endpoints", len(d.Endpoints), "seeded", seeded)
	return d, nil
}

func (l *Library) buildEndpoint(device string, es EndpointSpec, reg *zcl.Registry, s store.Store) (*profile.EndpointDescriptor, error) {
	t, ok := l.Lookup(es.Template)
	if !ok {
		return nil, configErr(ErrUnknownTemplate, "%q", es.Template)
	}

	overrides := make(map[profile.ClusterKey]ClusterSpec, len(es.Clusters))
	for _, cs := range es.Clusters {
		key := cs.key()
		slot, ok := t.Slot(key)
		if !ok {
			return nil, configErr(profile.ErrManifest, "template %q has no cluster %s", t.Name, key)
		}
		if _, dup := overrides[key]; dup {
			return nil, configErr(profile.ErrDuplicateCluster, "cluster %s configured twice", key)
		}
		if !slot.Storage && (len(cs.Attributes) > 0 || len(cs.Values) > 0 || len(cs.Reporting) > 0) {
			return nil, configErr(profile.ErrAttributeList, "cluster %s has no attribute storage", key)
		}
		overrides[key] = cs
	}
	t = withManufacturerCodes(t, overrides)

	lists := make(profile.AttributeLists)
	for _, slot := range t.Manifest {
		if !slot.Storage {
			continue
		}
		def := reg.Get(slot.ClusterID)
		if def == nil {
			return nil, configErr(ErrUnknownCluster, "cluster 0x%04X", slot.ClusterID)
		}
		list, err := profile.DeclareAttributes(def, store.Binder(s, device, es.Endpoint, slot.ClusterID, slot.Role), overrides[slot.Key()].Attributes...)
		if err != nil {
			return nil, err
		}
		lists[slot.Key()] = list
	}

	ep, err := profile.Build(t, es.Endpoint, lists, t.NewReportTable(), t.NewCVCTable())
	if err != nil {
		return nil, err
	}
	for _, cs := range es.Clusters {
		c := ep.Cluster(cs.key().ID, cs.key().Role)
		if err := applyValues(c, cs.Values); err != nil {
			return nil, err
		}
		if err := applyReporting(ep, c, cs.Reporting); err != nil {
			return nil, err
		}
	}
	return ep, nil
}

// withManufacturerCodes returns t, or a copy of it with the overridden
// manufacturer codes.
func withManufacturerCodes(t *profile.Template, overrides map[profile.ClusterKey]ClusterSpec) *profile.Template {
	var cp *profile.Template
	for i, slot := range t.Manifest {
		o, ok := overrides[slot.Key()]
		if !ok || o.ManufacturerCode == nil {
			continue
		}
		if cp == nil {
			c := *t
			c.Manifest = slices.Clone(t.Manifest)
			cp = &c
		}
		cp.Manifest[i].ManufacturerCode = *o.ManufacturerCode
	}
	if cp == nil {
		return t
	}
	return cp
}

func applyValues(c *profile.ClusterDescriptor, values map[uint16]any) error {
	ids := make([]uint16, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		a := c.Attribute(id)
		if a == nil {
			return configErr(profile.ErrUnknownAttribute, "cluster %s attribute 0x%04X", c.Key(), id)
		}
		v, err := zcl.EncodeValue(a.Type, values[id])
		if err != nil {
			return configErr(profile.ErrManifest, "cluster %s attribute 0x%04X: %v", c.Key(), id, err)
		}
		if err := a.Storage.Store(v); err != nil {
			return fmt.Errorf("store cluster %s attribute 0x%04X: %w", c.Key(), id, err)
		}
	}
	return nil
}

func applyReporting(ep *profile.EndpointDescriptor, c *profile.ClusterDescriptor, specs []ReportingSpec) error {
	for _, r := range specs {
		a := c.Attribute(r.Attribute)
		if a == nil {
			return configErr(profile.ErrUnknownAttribute, "cluster %s attribute 0x%04X", c.Key(), r.Attribute)
		}
		if !a.Reportable() {
			return configErr(profile.ErrManifest, "cluster %s attribute 0x%04X is not reportable", c.Key(), r.Attribute)
		}
		slot := profile.ReportSlot{
			ClusterID:   c.ClusterID,
			Role:        c.Role,
			AttrID:      a.ID,
			AttrType:    a.Type,
			MinInterval: r.Min,
			MaxInterval: r.Max,
		}
		if zcl.IsAnalog(a.Type) && r.Change != nil {
			change, err := zcl.EncodeValue(a.Type, r.Change)
			if err != nil {
				return configErr(profile.ErrManifest, "cluster %s attribute 0x%04X change: %v", c.Key(), r.Attribute, err)
			}
			slot.ReportableChange = change
		}
		if err := ep.Reporting.Configure(slot); err != nil {
			return configErr(err, "endpoint %d cluster %s attribute 0x%04X", ep.ID, c.Key(), r.Attribute)
		}
	}
	return nil
}
