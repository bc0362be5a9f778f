package store

import (
	"fmt"

	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

// Cell is the storage of one attribute, bound to a key of a Store.
type Cell struct {
	store Store
	key   Key
}

func NewCell(s Store, k Key) *Cell {
	return &Cell{store: s, key: k}
}

func (c *Cell) Key() Key { return c.key }

func (c *Cell) Load() ([]byte, error) {
	return c.store.GetAttribute(c.key)
}

func (c *Cell) Store(value []byte) error {
	return c.store.PutAttribute(c.key, value)
}

// Binder returns a profile.Binder that backs the attributes of one cluster
// instance with cells of s.
func Binder(s Store, device string, endpoint uint8, clusterID uint16, role zcl.Role) profile.Binder {
	return func(attrID uint16) profile.Storage {
		return NewCell(s, Key{Device: device, Endpoint: endpoint, ClusterID: clusterID, Role: role, AttrID: attrID})
	}
}

// SeedDefaults writes the catalogue default of every attribute of ep that
// has no stored value yet. Attributes without a default get the zero value
// of their type where one exists.
func SeedDefaults(s Store, device string, ep *profile.EndpointDescriptor, reg *zcl.Registry) (int, error) {
	seeded := 0
	for _, c := range ep.Clusters {
		for _, a := range c.Attributes {
			var def interface{}
			if ad, ok := reg.Attribute(c.ClusterID, a.ID); ok {
				def = ad.Default
			}
			value, err := initialValue(a.Type, def)
			if err != nil {
				return seeded, fmt.Errorf("seed cluster 0x%04X attribute 0x%04X: %w", c.ClusterID, a.ID, err)
			}
			if value == nil {
				continue
			}
			k := Key{Device: device, Endpoint: ep.ID, ClusterID: c.ClusterID, Role: c.Role, AttrID: a.ID}
			err = s.UpdateAttribute(k, func(old []byte) ([]byte, error) {
				if old != nil {
					return nil, nil
				}
				seeded++
				return value, nil
			})
			if err != nil {
				return seeded, fmt.Errorf("seed %s: %w", k, err)
			}
		}
	}
	return seeded, nil
}

func initialValue(typeID uint8, def interface{}) ([]byte, error) {
	if def != nil {
		return zcl.EncodeValue(typeID, def)
	}
	switch typeID {
	case zcl.TypeCharStr, zcl.TypeCharStr16:
		return zcl.EncodeValue(typeID, "")
	case zcl.TypeOctetStr, zcl.TypeOctetStr16:
		return zcl.EncodeValue(typeID, []byte{})
	}
	// all-zero bytes are the zero value of every fixed-size type
	if n := zcl.TypeSize(typeID); n > 0 {
		return make([]byte, n), nil
	}
	return nil, nil
}
