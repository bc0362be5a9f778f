package clusters

import "zigbee-ha-profile/internal/zcl"

var Identify = zcl.ClusterDef{
	ID:       zcl.ClusterIdentify,
	Name:     "Identify",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "IdentifyTime", Type: zcl.TypeUint16, Access: zcl.AccessReadWrite, Default: 0},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x00, Name: "Identify", Direction: zcl.DirectionToServer},
		{ID: 0x01, Name: "IdentifyQuery", Direction: zcl.DirectionToServer},
		{ID: 0x40, Name: "TriggerEffect", Direction: zcl.DirectionToServer},
		{ID: 0x00, Name: "IdentifyQueryResponse", Direction: zcl.DirectionToClient},
	},
}

var IdentifyMandatory = []uint16{0x0000}
