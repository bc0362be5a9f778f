package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"zigbee-ha-profile/internal/zcl"
)

// snapshotEncMode encodes snapshots deterministically so that equal
// descriptor structures always produce equal bytes.
var snapshotEncMode cbor.EncMode

var snapshotDecMode cbor.DecMode

func init() {
	var err error
	encOpts := cbor.CoreDetEncOptions()
	encOpts.IndefLength = cbor.IndefLengthForbidden
	snapshotEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	snapshotDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// AttributeSnapshot is the static part of an attribute record.
type AttributeSnapshot struct {
	ID     uint16 `cbor:"1,keyasint" json:"id"`
	Type   uint8  `cbor:"2,keyasint" json:"type"`
	Access uint8  `cbor:"3,keyasint" json:"access"`
}

// ClusterSnapshot mirrors a ClusterDescriptor without storage references.
type ClusterSnapshot struct {
	ClusterID        uint16              `cbor:"1,keyasint" json:"cluster_id"`
	Role             zcl.Role            `cbor:"2,keyasint" json:"role"`
	ManufacturerCode uint16              `cbor:"3,keyasint" json:"manufacturer_code"`
	AttributeCount   int                 `cbor:"4,keyasint" json:"attribute_count"`
	Attributes       []AttributeSnapshot `cbor:"5,keyasint,omitempty" json:"attributes,omitempty"`
}

// EndpointSnapshot mirrors an EndpointDescriptor. Context tables are
// represented by their capacity only.
type EndpointSnapshot struct {
	Endpoint        uint8             `cbor:"1,keyasint" json:"endpoint"`
	ProfileID       uint16            `cbor:"2,keyasint" json:"profile_id"`
	DeviceID        uint16            `cbor:"3,keyasint" json:"device_id"`
	DeviceVersion   uint8             `cbor:"4,keyasint" json:"device_version"`
	InClusters      []uint16          `cbor:"5,keyasint,omitempty" json:"in_clusters,omitempty"`
	OutClusters     []uint16          `cbor:"6,keyasint,omitempty" json:"out_clusters,omitempty"`
	Clusters        []ClusterSnapshot `cbor:"7,keyasint" json:"clusters"`
	ReportAttrCount int               `cbor:"8,keyasint" json:"reportable_attr_count"`
	CVCAttrCount    int               `cbor:"9,keyasint" json:"cvc_attr_count"`
}

// Snapshot is the persisted and published form of a device context.
type Snapshot struct {
	Name      string             `cbor:"1,keyasint" json:"name"`
	Handle    string             `cbor:"2,keyasint" json:"handle"`
	Endpoints []EndpointSnapshot `cbor:"3,keyasint" json:"endpoints"`
}

// SnapshotEndpoint captures the static shape of one endpoint.
func SnapshotEndpoint(ep *EndpointDescriptor) EndpointSnapshot {
	es := EndpointSnapshot{
		Endpoint:        ep.ID,
		ProfileID:       ep.ProfileID,
		ReportAttrCount: ep.ReportAttrCount,
		CVCAttrCount:    ep.CVCAttrCount,
		Clusters:        make([]ClusterSnapshot, 0, len(ep.Clusters)),
	}
	if s := ep.Simple; s != nil {
		es.DeviceID = s.DeviceID
		es.DeviceVersion = s.DeviceVersion
		es.InClusters = s.InClusters
		es.OutClusters = s.OutClusters
	}
	for _, c := range ep.Clusters {
		cs := ClusterSnapshot{
			ClusterID:        c.ClusterID,
			Role:             c.Role,
			ManufacturerCode: c.ManufacturerCode,
			AttributeCount:   c.AttributeCount,
		}
		for _, a := range c.Attributes {
			cs.Attributes = append(cs.Attributes, AttributeSnapshot{ID: a.ID, Type: a.Type, Access: a.Access})
		}
		es.Clusters = append(es.Clusters, cs)
	}
	return es
}

// TakeSnapshot captures the static shape of a device context.
func TakeSnapshot(d *DeviceContext) Snapshot {
	s := Snapshot{
		Name:      d.Name,
		Handle:    d.Handle.String(),
		Endpoints: make([]EndpointSnapshot, 0, len(d.Endpoints)),
	}
	for _, ep := range d.Endpoints {
		s.Endpoints = append(s.Endpoints, SnapshotEndpoint(ep))
	}
	return s
}

// EncodeSnapshot returns the deterministic CBOR encoding of d.
func EncodeSnapshot(d *DeviceContext) ([]byte, error) {
	return snapshotEncMode.Marshal(TakeSnapshot(d))
}

// EncodeEndpoint returns the deterministic CBOR encoding of one endpoint.
func EncodeEndpoint(ep *EndpointDescriptor) ([]byte, error) {
	return snapshotEncMode.Marshal(SnapshotEndpoint(ep))
}

// DecodeSnapshot parses bytes produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := snapshotDecMode.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// Fingerprint is the hex SHA-256 of an encoded snapshot.
func Fingerprint(encoded []byte) string {
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
