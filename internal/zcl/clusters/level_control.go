package clusters

import "zigbee-ha-profile/internal/zcl"

var LevelControl = zcl.ClusterDef{
	ID:       zcl.ClusterLevelControl,
	Name:     "Level Control",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "CurrentLevel", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: 0xFF},
		{ID: 0x0001, Name: "RemainingTime", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x000F, Name: "Options", Type: zcl.TypeBitmap8, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0010, Name: "OnOffTransitionTime", Type: zcl.TypeUint16, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0011, Name: "OnLevel", Type: zcl.TypeUint8, Access: zcl.AccessReadWrite, Default: 0xFF},
		{ID: 0x4000, Name: "StartUpCurrentLevel", Type: zcl.TypeUint8, Access: zcl.AccessReadWrite},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "MoveToLevel", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "Move", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "Step", Direction: zcl.DirectionToServer},
		{ID: 0x03, Name: "Stop", Direction: zcl.DirectionToServer},
		{ID: 0x04, Name: "MoveToLevelWithOnOff", Direction: zcl.DirectionToServer},
		{ID: 0x05, Name: "MoveWithOnOff", Direction: zcl.DirectionToServer},
		{ID: 0x06, Name: "StepWithOnOff", Direction: zcl.DirectionToServer},
		{ID: 0x07, Name: "StopWithOnOff", Direction: zcl.DirectionToServer},
	},
}

var LevelControlMandatory = []uint16{0x0000}
