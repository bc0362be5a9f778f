package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"zigbee-ha-profile/internal/zcl"
)

// ErrNotFound is returned when a requested entity does not exist in the store.
var ErrNotFound = errors.New("not found")

// Key addresses one attribute value of one device.
type Key struct {
	Device    string
	Endpoint  uint8
	ClusterID uint16
	Role      zcl.Role
	AttrID    uint16
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/0x%04X/%s/0x%04X", k.Device, k.Endpoint, k.ClusterID, k.Role, k.AttrID)
}

// bytes encodes the key so that all values of one device share a prefix.
func (k Key) bytes() []byte {
	b := append(devicePrefix(k.Device), k.Endpoint)
	b = binary.BigEndian.AppendUint16(b, k.ClusterID)
	b = append(b, byte(k.Role))
	b = binary.BigEndian.AppendUint16(b, k.AttrID)
	return b
}

func devicePrefix(device string) []byte {
	b := make([]byte, 0, len(device)+8)
	b = append(b, device...)
	return append(b, 0x00)
}

// Store defines the persistence interface.
type Store interface {
	// Attribute values, kept in ZCL wire encoding
	GetAttribute(k Key) ([]byte, error)
	PutAttribute(k Key, value []byte) error

	// UpdateAttribute atomically reads, modifies, and saves one value. fn
	// receives nil when the value is unset; returning nil leaves it unchanged.
	UpdateAttribute(k Key, fn func(old []byte) ([]byte, error)) error

	// DeleteDevice removes every value and the snapshot of a device.
	DeleteDevice(name string) error

	// Descriptor snapshots
	SaveSnapshot(rec *SnapshotRecord) error
	GetSnapshot(name string) (*SnapshotRecord, error)
	ListSnapshots() ([]*SnapshotRecord, error)

	// Close the store
	Close() error
}
