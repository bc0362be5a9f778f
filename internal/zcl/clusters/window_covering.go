package clusters

import "zigbee-ha-profile/internal/zcl"

var WindowCovering = zcl.ClusterDef{
	ID:       zcl.ClusterWindowCovering,
	Name:     "Window Covering",
	Revision: 5,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "WindowCoveringType", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0007, Name: "ConfigStatus", Type: zcl.TypeBitmap8, Access: zcl.AccessRead, Default: 0x03},
		{ID: 0x0008, Name: "CurrentPositionLiftPercentage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0},
		{ID: 0x0009, Name: "CurrentPositionTiltPercentage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0},
		{ID: 0x0010, Name: "InstalledOpenLimitLift", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0011, Name: "InstalledClosedLimitLift", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0xFFFF},
		{ID: 0x0017, Name: "Mode", Type: zcl.TypeBitmap8, Access: zcl.AccessReadWrite, Default: 0x04},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "UpOpen", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "DownClose", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "Stop", Direction: zcl.DirectionToServer},
		{ID: 0x05, Name: "GoToLiftPercentage", Direction: zcl.DirectionToServer},
		{ID: 0x08, Name: "GoToTiltPercentage", Direction: zcl.DirectionToServer},
	},
}

var WindowCoveringMandatory = []uint16{0x0000, 0x0007, 0x0017}
