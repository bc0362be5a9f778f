package clusters

import "zigbee-ha-profile/internal/zcl"

var Time = zcl.ClusterDef{
	ID:       zcl.ClusterTime,
	Name:     "Time",
	Revision: 2,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "Time", Type: zcl.TypeUTC, Access: zcl.AccessReadWrite, Default: 0xFFFFFFFF},
		{ID: 0x0001, Name: "TimeStatus", Type: zcl.TypeBitmap8, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0002, Name: "TimeZone", Type: zcl.TypeInt32, Access: zcl.AccessReadWrite, Default: 0},
		{ID: 0x0007, Name: "LocalTime", Type: zcl.TypeUint32, Access: zcl.AccessRead},
	},
}

var TimeMandatory = []uint16{0x0000, 0x0001}
