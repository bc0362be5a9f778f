package clusters

import "zigbee-ha-profile/internal/zcl"

// OTA upgrade attributes live on the client side of the cluster.
var OTAUpgrade = zcl.ClusterDef{
	ID:       zcl.ClusterOTAUpgrade,
	Name:     "OTA Upgrade",
	Revision: 3,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "UpgradeServerID", Type: zcl.TypeEUI64, Access: zcl.AccessRead, Default: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{ID: 0x0001, Name: "FileOffset", Type: zcl.TypeUint32, Access: zcl.AccessRead, Default: 0xFFFFFFFF},
		{ID: 0x0002, Name: "CurrentFileVersion", Type: zcl.TypeUint32, Access: zcl.AccessRead, Default: 0xFFFFFFFF},
		{ID: 0x0003, Name: "CurrentZigbeeStackVersion", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0x0002},
		{ID: 0x0004, Name: "DownloadedFileVersion", Type: zcl.TypeUint32, Access: zcl.AccessRead, Default: 0xFFFFFFFF},
		{ID: 0x0005, Name: "DownloadedZigbeeStackVersion", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0xFFFF},
		{ID: 0x0006, Name: "ImageUpgradeStatus", Type: zcl.TypeEnum8, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0007, Name: "ManufacturerID", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0008, Name: "ImageTypeID", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0009, Name: "MinimumBlockReqDelay", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
	},
	Commands: []zcl.CommandDef{
		{ID: 0x01, Name: "QueryNextImageRequest", Direction: zcl.DirectionToServer},
		{ID: 0x03, Name: "ImageBlockRequest", Direction: zcl.DirectionToServer},
		{ID: 0x06, Name: "UpgradeEndRequest", Direction: zcl.DirectionToServer},
		{ID: 0x00, Name: "ImageNotify", Direction: zcl.DirectionToClient},
		{ID: 0x02, Name: "QueryNextImageResponse", Direction: zcl.DirectionToClient},
		{ID: 0x05, Name: "ImageBlockResponse", Direction: zcl.DirectionToClient},
		{ID: 0x07, Name: "UpgradeEndResponse", Direction: zcl.DirectionToClient},
	},
}

// OTAUpgradeClientMandatory are the client attributes an OTA-capable endpoint keeps.
var OTAUpgradeClientMandatory = []uint16{0x0000, 0x0002, 0x0006}
