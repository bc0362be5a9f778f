package profile

import (
	"zigbee-ha-profile/internal/zcl"
)

type memCell struct{ v []byte }

func (c *memCell) Load() ([]byte, error) { return c.v, nil }
func (c *memCell) Store(v []byte) error  { c.v = v; return nil }

func cellBinder(uint16) Storage { return &memCell{} }

var (
	testOnOff = zcl.ClusterDef{
		ID: zcl.ClusterOnOff,
		Attributes: []zcl.AttributeDef{
			{ID: 0x0000, Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessReport},
			{ID: 0x4001, Type: zcl.TypeUint16, Access: zcl.AccessReadWrite},
		},
	}
	testIdentify = zcl.ClusterDef{
		ID:         zcl.ClusterIdentify,
		Attributes: []zcl.AttributeDef{{ID: 0x0000, Type: zcl.TypeUint16, Access: zcl.AccessReadWrite}},
	}
	testBasic = zcl.ClusterDef{
		ID: zcl.ClusterBasic,
		Attributes: []zcl.AttributeDef{
			{ID: 0x0000, Type: zcl.TypeUint8, Access: zcl.AccessRead},
			{ID: 0x0007, Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		},
	}
)

// lightTemplate is a small device type with one server-and-client pair.
func lightTemplate() *Template {
	return &Template{
		Name:          "test_light",
		ProfileID:     zcl.ProfileHomeAutomation,
		DeviceID:      0x0100,
		DeviceVersion: 1,
		InClusterNum:  3,
		OutClusterNum: 1,
		Manifest: []ClusterSlot{
			Server(zcl.ClusterIdentify, 0x0000),
			Server(zcl.ClusterBasic, 0x0000, 0x0007),
			Server(zcl.ClusterOnOff, 0x0000),
			Client(zcl.ClusterIdentify),
		},
		ReportAttrCount: 1,
	}
}

func mustDeclare(def zcl.ClusterDef, ids ...uint16) AttributeList {
	l, err := DeclareAttributes(&def, cellBinder, ids...)
	if err != nil {
		panic(err)
	}
	return l
}

func lightLists() AttributeLists {
	return AttributeLists{
		ServerKey(zcl.ClusterIdentify): mustDeclare(testIdentify),
		ServerKey(zcl.ClusterBasic):    mustDeclare(testBasic),
		ServerKey(zcl.ClusterOnOff):    mustDeclare(testOnOff),
	}
}
