package profile

import (
	"fmt"

	"zigbee-ha-profile/internal/zcl"
)

// ClusterKey identifies a cluster instance on an endpoint. The same cluster
// ID may be present once per role.
type ClusterKey struct {
	ID   uint16
	Role zcl.Role
}

func (k ClusterKey) String() string {
	return fmt.Sprintf("0x%04X/%s", k.ID, k.Role)
}

// ServerKey and ClientKey are shorthands for map literals.
func ServerKey(id uint16) ClusterKey { return ClusterKey{ID: id, Role: zcl.RoleServer} }
func ClientKey(id uint16) ClusterKey { return ClusterKey{ID: id, Role: zcl.RoleClient} }

// ClusterDescriptor is one cluster instance of an endpoint.
type ClusterDescriptor struct {
	ClusterID        uint16
	Role             zcl.Role
	ManufacturerCode uint16
	AttributeCount   int
	Attributes       AttributeList
}

// NewClusterDescriptor returns a descriptor whose count matches attrs.
func NewClusterDescriptor(id uint16, role zcl.Role, manufCode uint16, attrs AttributeList) ClusterDescriptor {
	return ClusterDescriptor{
		ClusterID:        id,
		Role:             role,
		ManufacturerCode: manufCode,
		AttributeCount:   len(attrs),
		Attributes:       attrs,
	}
}

func (c *ClusterDescriptor) Key() ClusterKey {
	return ClusterKey{ID: c.ClusterID, Role: c.Role}
}

// Attribute returns the attribute record with the given ID, or nil.
func (c *ClusterDescriptor) Attribute(id uint16) *Attribute {
	return c.Attributes.Find(id)
}

// IsPlaceholder reports whether the cluster has no local attribute storage.
func (c *ClusterDescriptor) IsPlaceholder() bool {
	return c.AttributeCount == 0 && c.Attributes == nil
}

// ManufacturerSpecific reports whether the cluster carries a manufacturer code.
func (c *ClusterDescriptor) ManufacturerSpecific() bool {
	return c.ManufacturerCode != zcl.ManufCodeInvalid
}

// Validate checks the descriptor against its own attribute table.
func (c *ClusterDescriptor) Validate() error {
	key := c.Key()
	if !c.Role.Valid() {
		return configError(ErrInvalidRole, "cluster %s", key)
	}
	if c.AttributeCount > 0 && c.Attributes == nil {
		return fatalError(ErrNilReference, "cluster %s declares %d attributes with nil list", key, c.AttributeCount)
	}
	if c.AttributeCount != len(c.Attributes) {
		return configError(ErrAttributeCount, "cluster %s declares %d, list has %d", key, c.AttributeCount, len(c.Attributes))
	}
	if dup, ok := c.Attributes.duplicate(); ok {
		return configError(ErrDuplicateAttribute, "cluster %s attribute 0x%04X", key, dup)
	}
	for _, a := range c.Attributes {
		if a.Storage == nil {
			return fatalError(ErrNilReference, "cluster %s attribute 0x%04X has no storage", key, a.ID)
		}
	}
	return nil
}
