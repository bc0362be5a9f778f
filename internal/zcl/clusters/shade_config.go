package clusters

import "zigbee-ha-profile/internal/zcl"

var ShadeConfiguration = zcl.ClusterDef{
	ID:       zcl.ClusterShadeConfig,
	Name:     "Shade Configuration",
	Revision: 1,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "PhysicalClosedLimit", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "MotorStepSize", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "Status", Type: zcl.TypeBitmap8, Access: zcl.AccessReadWrite | zcl.AccessReport, Default: 0},
		{ID: 0x0010, Name: "ClosedLimit", Type: zcl.TypeUint16, Access: zcl.AccessReadWrite, Default: 0x0001},
		{ID: 0x0011, Name: "Mode", Type: zcl.TypeEnum8, Access: zcl.AccessReadWrite, Default: 0},
	},
}

var ShadeConfigurationMandatory = []uint16{0x0002, 0x0010, 0x0011}
