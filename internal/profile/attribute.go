package profile

import (
	"fmt"
	"slices"

	"zigbee-ha-profile/internal/zcl"
)

// Storage is the application-owned backing of one attribute value, kept in
// ZCL wire encoding. The descriptor only references it.
type Storage interface {
	Load() ([]byte, error)
	Store(value []byte) error
}

// Attribute is one record of an attribute list.
type Attribute struct {
	ID      uint16
	Type    uint8
	Access  uint8
	Storage Storage
}

func (a *Attribute) Readable() bool   { return a.Access&zcl.AccessRead != 0 }
func (a *Attribute) Writable() bool   { return a.Access&zcl.AccessWrite != 0 }
func (a *Attribute) Reportable() bool { return a.Access&zcl.AccessReport != 0 }
func (a *Attribute) Scene() bool      { return a.Access&zcl.AccessScene != 0 }

// AttributeList is the ordered attribute table of one cluster instance.
type AttributeList []Attribute

// Find returns the record with the given ID, or nil.
func (l AttributeList) Find(id uint16) *Attribute {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// IDs returns the attribute IDs in list order.
func (l AttributeList) IDs() []uint16 {
	if l == nil {
		return nil
	}
	ids := make([]uint16, len(l))
	for i, a := range l {
		ids[i] = a.ID
	}
	return ids
}

// ReportableCount returns the number of reportable records.
func (l AttributeList) ReportableCount() int {
	n := 0
	for i := range l {
		if l[i].Reportable() {
			n++
		}
	}
	return n
}

func (l AttributeList) duplicate() (uint16, bool) {
	seen := make(map[uint16]struct{}, len(l))
	for _, a := range l {
		if _, ok := seen[a.ID]; ok {
			return a.ID, true
		}
		seen[a.ID] = struct{}{}
	}
	return 0, false
}

// Binder returns the storage for one attribute of a cluster instance.
type Binder func(attrID uint16) Storage

// DeclareAttributes builds an attribute list from a catalogue definition.
// With no ids every attribute of the definition is declared, in catalogue
// order; otherwise the given ids are declared in the given order.
func DeclareAttributes(def *zcl.ClusterDef, bind Binder, ids ...uint16) (AttributeList, error) {
	if def == nil {
		return nil, fatalError(ErrNilReference, "cluster definition")
	}
	if len(ids) == 0 {
		ids = make([]uint16, len(def.Attributes))
		for i, a := range def.Attributes {
			ids[i] = a.ID
		}
	}
	list := make(AttributeList, 0, len(ids))
	for _, id := range ids {
		a := def.FindAttribute(id)
		if a == nil {
			return nil, configError(ErrUnknownAttribute, "cluster 0x%04X attribute 0x%04X", def.ID, id)
		}
		var s Storage
		if bind != nil {
			s = bind(id)
		}
		list = append(list, Attribute{ID: a.ID, Type: a.Type, Access: a.Access, Storage: s})
	}
	if dup, ok := list.duplicate(); ok {
		return nil, configError(ErrDuplicateAttribute, "cluster 0x%04X attribute 0x%04X", def.ID, dup)
	}
	return list, nil
}

func (l AttributeList) clone() AttributeList {
	return slices.Clone(l)
}

func (a Attribute) String() string {
	return fmt.Sprintf("0x%04X(%s)", a.ID, zcl.TypeName(a.Type))
}
