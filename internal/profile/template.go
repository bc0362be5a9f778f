package profile

import (
	"errors"
	"fmt"

	"zigbee-ha-profile/internal/zcl"
)

// ClusterSlot is one (cluster ID, role) entry of a device type manifest.
type ClusterSlot struct {
	ClusterID        uint16
	Role             zcl.Role
	ManufacturerCode uint16
	// Storage is set when the slot carries a local attribute list.
	Storage  bool
	Required []uint16
}

func (s ClusterSlot) Key() ClusterKey {
	return ClusterKey{ID: s.ClusterID, Role: s.Role}
}

// Server is a server slot that declares attributes.
func Server(id uint16, required ...uint16) ClusterSlot {
	return ClusterSlot{ClusterID: id, Role: zcl.RoleServer, ManufacturerCode: zcl.ManufCodeInvalid, Storage: true, Required: required}
}

// Client is a client slot without local attributes.
func Client(id uint16) ClusterSlot {
	return ClusterSlot{ClusterID: id, Role: zcl.RoleClient, ManufacturerCode: zcl.ManufCodeInvalid}
}

// ClientWithAttributes is a client slot that keeps attributes, as the OTA
// Upgrade client does.
func ClientWithAttributes(id uint16, required ...uint16) ClusterSlot {
	return ClusterSlot{ClusterID: id, Role: zcl.RoleClient, ManufacturerCode: zcl.ManufCodeInvalid, Storage: true, Required: required}
}

// Placeholder is a server slot advertised without local storage.
func Placeholder(id uint16) ClusterSlot {
	return ClusterSlot{ClusterID: id, Role: zcl.RoleServer, ManufacturerCode: zcl.ManufCodeInvalid}
}

// Template is a device type: its identity, its ordered cluster manifest and
// the capacities of its reporting and CVC contexts. The manifest is the
// single source for both the cluster array and the simple descriptor.
type Template struct {
	Name            string
	ProfileID       uint16
	DeviceID        uint16
	DeviceVersion   uint8
	InClusterNum    int
	OutClusterNum   int
	Manifest        []ClusterSlot
	ReportAttrCount int
	CVCAttrCount    int
}

// Validate checks the manifest against the declared IN/OUT constants.
func (t *Template) Validate() error {
	if t == nil {
		return fatalError(ErrNilReference, "template")
	}
	var errs []error
	if t.Name == "" {
		errs = append(errs, configError(ErrManifest, "template has no name"))
	}
	if t.DeviceVersion > 0x0F {
		errs = append(errs, configError(ErrManifest, "template %q device version %d exceeds 4 bits", t.Name, t.DeviceVersion))
	}
	if t.InClusterNum < 0 || t.OutClusterNum < 0 || t.InClusterNum > 0xFF || t.OutClusterNum > 0xFF {
		errs = append(errs, configError(ErrClusterCount, "template %q in/out %d/%d", t.Name, t.InClusterNum, t.OutClusterNum))
	}
	if len(t.Manifest) != t.InClusterNum+t.OutClusterNum {
		errs = append(errs, configError(ErrClusterCount, "template %q manifest has %d clusters, declares %d+%d",
			t.Name, len(t.Manifest), t.InClusterNum, t.OutClusterNum))
	}
	if t.ReportAttrCount < 0 || t.CVCAttrCount < 0 {
		errs = append(errs, configError(ErrCapacity, "template %q report/cvc %d/%d", t.Name, t.ReportAttrCount, t.CVCAttrCount))
	}

	servers, clients := 0, 0
	seen := make(map[ClusterKey]bool, len(t.Manifest))
	for _, s := range t.Manifest {
		key := s.Key()
		switch s.Role {
		case zcl.RoleServer:
			servers++
		case zcl.RoleClient:
			clients++
		default:
			errs = append(errs, configError(ErrInvalidRole, "template %q cluster 0x%04X", t.Name, s.ClusterID))
			continue
		}
		if seen[key] {
			errs = append(errs, configError(ErrDuplicateCluster, "template %q cluster %s", t.Name, key))
		}
		seen[key] = true
		if !s.Storage && len(s.Required) > 0 {
			errs = append(errs, configError(ErrManifest, "template %q cluster %s requires attributes but has no storage", t.Name, key))
		}
	}
	if servers != t.InClusterNum || clients != t.OutClusterNum {
		errs = append(errs, configError(ErrClusterCount, "template %q manifest has %d server/%d client clusters, declares %d/%d",
			t.Name, servers, clients, t.InClusterNum, t.OutClusterNum))
	}
	return errors.Join(errs...)
}

// Slot returns the manifest entry for key.
func (t *Template) Slot(key ClusterKey) (ClusterSlot, bool) {
	for _, s := range t.Manifest {
		if s.Key() == key {
			return s, true
		}
	}
	return ClusterSlot{}, false
}

// InputClusters returns the server cluster IDs in manifest order.
func (t *Template) InputClusters() []uint16 {
	return t.clusterIDs(zcl.RoleServer)
}

// OutputClusters returns the client cluster IDs in manifest order.
func (t *Template) OutputClusters() []uint16 {
	return t.clusterIDs(zcl.RoleClient)
}

func (t *Template) clusterIDs(role zcl.Role) []uint16 {
	var ids []uint16
	for _, s := range t.Manifest {
		if s.Role == role {
			ids = append(ids, s.ClusterID)
		}
	}
	return ids
}

// StorageKeys returns the keys of the slots that need an attribute list.
func (t *Template) StorageKeys() []ClusterKey {
	var keys []ClusterKey
	for _, s := range t.Manifest {
		if s.Storage {
			keys = append(keys, s.Key())
		}
	}
	return keys
}

// NewReportTable allocates a reporting table of the declared capacity.
// It returns nil when the device type reports nothing.
func (t *Template) NewReportTable() []ReportSlot {
	if t.ReportAttrCount == 0 {
		return nil
	}
	return make([]ReportSlot, t.ReportAttrCount)
}

// NewCVCTable allocates a CVC table of the declared capacity, or nil.
func (t *Template) NewCVCTable() []CVCSlot {
	if t.CVCAttrCount == 0 {
		return nil
	}
	return make([]CVCSlot, t.CVCAttrCount)
}

func (t *Template) String() string {
	return fmt.Sprintf("%s(device 0x%04X v%d, %d in, %d out)", t.Name, t.DeviceID, t.DeviceVersion, t.InClusterNum, t.OutClusterNum)
}
