package clusters

import "zigbee-ha-profile/internal/zcl"

// Basic power source values.
const (
	PowerSourceUnknown = 0x00
	PowerSourceMains   = 0x01
	PowerSourceBattery = 0x03
	PowerSourceDC      = 0x04
)

var Basic = zcl.ClusterDef{
	ID:       zcl.ClusterBasic,
	Name:     "Basic",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "ZCLVersion", Type: zcl.TypeUint8, Access: zcl.AccessRead, Default: 0x08},
		{ID: 0x0001, Name: "ApplicationVersion", Type: zcl.TypeUint8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0002, Name: "StackVersion", Type: zcl.TypeUint8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0003, Name: "HWVersion", Type: zcl.TypeUint8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0004, Name: "ManufacturerName", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
		{ID: 0x0005, Name: "ModelIdentifier", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
		{ID: 0x0006, Name: "DateCode", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
		{ID: 0x0007, Name: "PowerSource", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: PowerSourceUnknown},
		{ID: 0x0010, Name: "LocationDescription", Type: zcl.TypeCharStr, Access: zcl.AccessReadWrite, Default: ""},
		{ID: 0x0011, Name: "PhysicalEnvironment", Type: zcl.TypeEnum8, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0012, Name: "DeviceEnabled", Type: zcl.TypeBool, Access: zcl.AccessReadWrite, Default: true},
		{ID: 0x4000, Name: "SWBuildID", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "ResetToFactoryDefaults", Direction: zcl.DirectionToServer},
	},
}

// BasicMandatory are the attributes every Basic server must declare.
var BasicMandatory = []uint16{0x0000, 0x0007}
