package clusters

import "zigbee-ha-profile/internal/zcl"

var Metering = zcl.ClusterDef{
	ID:       zcl.ClusterMetering,
	Name:     "Metering",
	Revision: 4,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "CurrentSummationDelivered", Type: zcl.TypeUint48, Access: zcl.AccessRead | zcl.AccessReport, Default: 0},
		{ID: 0x0200, Name: "Status", Type: zcl.TypeBitmap8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0300, Name: "UnitOfMeasure", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0301, Name: "Multiplier", Type: zcl.TypeUint24, Access: zcl.AccessRead, Default: 1},
		{ID: 0x0302, Name: "Divisor", Type: zcl.TypeUint24, Access: zcl.AccessRead, Default: 1},
		{ID: 0x0303, Name: "SummationFormatting", Type: zcl.TypeBitmap8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0306, Name: "MeteringDeviceType", Type: zcl.TypeBitmap8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0400, Name: "InstantaneousDemand", Type: zcl.TypeInt24, Access: zcl.AccessRead | zcl.AccessReport},
	},
}
