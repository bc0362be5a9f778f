package clusters

import "zigbee-ha-profile/internal/zcl"

// MeasuredValue is in hundredths of a degree Celsius; 0x8000 means unknown.
var TemperatureMeasurement = zcl.ClusterDef{
	ID:       zcl.ClusterTemperatureMeasurement,
	Name:     "Temperature Measurement",
	Revision: 3,
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "MeasuredValue", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport, Default: -32768},
		{ID: 0x0001, Name: "MinMeasuredValue", Type: zcl.TypeInt16, Access: zcl.AccessRead, Default: -32768},
		{ID: 0x0002, Name: "MaxMeasuredValue", Type: zcl.TypeInt16, Access: zcl.AccessRead, Default: -32768},
		{ID: 0x0003, Name: "Tolerance", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
	},
}

var TemperatureMeasurementMandatory = []uint16{0x0000, 0x0001, 0x0002}
