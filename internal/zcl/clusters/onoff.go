package clusters

import "zigbee-ha-profile/internal/zcl"

var OnOff = zcl.ClusterDef{
	ID:       zcl.ClusterOnOff,
	Name:     "On/Off",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "OnOff", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: false},
		{ID: 0x4000, Name: "GlobalSceneControl", Type: zcl.TypeBool, Access: zcl.AccessRead, Default: true},
		{ID: 0x4001, Name: "OnTime", Type: zcl.TypeUint16, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x4002, Name: "OffWaitTime", Type: zcl.TypeUint16, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x4003, Name: "StartUpOnOff", Type: zcl.TypeEnum8, Access: zcl.AccessReadWrite},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "Off", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "On", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "Toggle", Direction: zcl.DirectionToServer},
		{ID: 0x40, Name: "OffWithEffect", Direction: zcl.DirectionToServer},
		{ID: 0x41, Name: "OnWithRecallGlobalScene", Direction: zcl.DirectionToServer},
		{ID: 0x42, Name: "OnWithTimedOff", Direction: zcl.DirectionToServer},
	},
}

var OnOffMandatory = []uint16{0x0000}
