package clusters

import "zigbee-ha-profile/internal/zcl"

// Lock states
const (
	LockStateNotFullyLocked = 0x00
	LockStateLocked         = 0x01
	LockStateUnlocked       = 0x02
)

var DoorLock = zcl.ClusterDef{
	ID:       zcl.ClusterDoorLock,
	Name:     "Door Lock",
	Revision: 3,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "LockState", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessReport | zcl.AccessScene, Default: LockStateNotFullyLocked},
		{ID: 0x0001, Name: "LockType", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0002, Name: "ActuatorEnabled", Type: zcl.TypeBool, Access: zcl.AccessRead, Default: true},
		{ID: 0x0003, Name: "DoorState", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0024, Name: "SoundVolume", Type: zcl.TypeUint8, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0025, Name: "OperatingMode", Type: zcl.TypeEnum8, Access: zcl.AccessReadWrite, Default: 0},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "LockDoor", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "UnlockDoor", Direction: zcl.DirectionToServer},
		{ID: 0x02, Name: "Toggle", Direction: zcl.DirectionToServer},
		{ID: 0x00, Name: "LockDoorResponse", Direction: zcl.DirectionToClient},
		{ID: 0x01, Name: "UnlockDoorResponse", Direction: zcl.DirectionToClient},
	},
}

var DoorLockMandatory = []uint16{0x0000, 0x0001, 0x0002}
