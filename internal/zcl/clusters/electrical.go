package clusters

import "zigbee-ha-profile/internal/zcl"

var ElectricalMeasurement = zcl.ClusterDef{
	ID:       zcl.ClusterElectricalMeasurement,
	Name:     "Electrical Measurement",
	Revision: 3,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "MeasurementType", Type: zcl.TypeBitmap32, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0505, Name: "RMSVoltage", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0508, Name: "RMSCurrent", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x050B, Name: "ActivePower", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0600, Name: "ACVoltageMultiplier", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 1},
		{ID: 0x0601, Name: "ACVoltageDivisor", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 1},
	},
}

var MeterIdentification = zcl.ClusterDef{
	ID:       zcl.ClusterMeterIdentification,
	Name:     "Meter Identification",
	Revision: 1,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "CompanyName", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
		{ID: 0x0001, Name: "MeterTypeID", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x0004, Name: "DataQualityID", Type: zcl.TypeUint16, Access: zcl.AccessRead, Default: 0},
		{ID: 0x000D, Name: "POD", Type: zcl.TypeCharStr, Access: zcl.AccessRead, Default: ""},
		{ID: 0x000E, Name: "AvailablePower", Type: zcl.TypeInt24, Access: zcl.AccessRead, Default: 0},
		{ID: 0x000F, Name: "PowerThreshold", Type: zcl.TypeInt24, Access: zcl.AccessRead, Default: 0},
	},
}
