package clusters

import "zigbee-ha-profile/internal/zcl"

var Diagnostics = zcl.ClusterDef{
	ID:       zcl.ClusterDiagnostics,
	Name:     "Diagnostics",
	Revision: 1,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "NumberOfResets", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0001, Name: "PersistentMemoryWrites", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0104, Name: "MacTxUcastRetry", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0105, Name: "MacTxUcastFail", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x011B, Name: "AverageMACRetryPerAPSMessageSent", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x011C, Name: "LastMessageLQI", Type: zcl.TypeUint8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x011D, Name: "LastMessageRSSI", Type: zcl.TypeInt8, Access: zcl.AccessRead, Default: 0},
	},
}
