package clusters

import "zigbee-ha-profile/internal/zcl"

var ColorControl = zcl.ClusterDef{
	ID:       zcl.ClusterColorControl,
	Name:     "Color Control",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "CurrentHue", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0},
		{ID: 0x0001, Name: "CurrentSaturation", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0},
		{ID: 0x0002, Name: "RemainingTime", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0003, Name: "CurrentX", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0x616B},
		{ID: 0x0004, Name: "CurrentY", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0x607D},
		{ID: 0x0007, Name: "ColorTemperatureMireds", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0x00FA},
		{ID: 0x0008, Name: "ColorMode", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0x01},
		{ID: 0x000F, Name: "Options", Type: zcl.TypeBitmap8, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x4001, Name: "EnhancedCurrentHue", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessScene, Default: 0},
		{ID: 0x4002, Name: "EnhancedColorMode", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0x01},
		{ID: 0x400A, Name: "ColorCapabilities", Type: zcl.TypeBitmap16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x400B, Name: "ColorTempPhysicalMinMireds", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x400C, Name: "ColorTempPhysicalMaxMireds", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0xFEFF},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "MoveToHue", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "MoveHue", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "StepHue", Direction: zcl.DirectionToServer},
		{ID: 0x03, Name: "MoveToSaturation", Direction: zcl.DirectionToServer},
		{ID: 0x06, Name: "MoveToHueAndSaturation", Direction: zcl.DirectionToServer},
		{ID: 0x07, Name: "MoveToColor", Direction: zcl.DirectionToServer},
		{ID: 0x0A, Name: "MoveToColorTemperature", Direction: zcl.DirectionToServer},
		{ID: 0x47, Name: "StopMoveStep", Direction: zcl.DirectionToServer},
	},
}

var ColorControlMandatory = []uint16{0x0003, 0x0004, 0x0008, 0x000F, 0x4002, 0x400A}
