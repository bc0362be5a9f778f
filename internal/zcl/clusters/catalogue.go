// Package clusters holds the standard ZCL cluster definitions used by the
// Home Automation device types.
package clusters

import "zigbee-ha-profile/internal/zcl"

// Standard returns every catalogue definition in cluster ID order.
func Standard() []zcl.ClusterDef {
	return []zcl.ClusterDef{
		Basic,                    // 0x0000
		Identify,                 // 0x0003
		Groups,                   // 0x0004
		Scenes,                   // 0x0005
		OnOff,                    // 0x0006
		OnOffSwitchConfiguration, // 0x0007
		LevelControl,             // 0x0008
		Alarms,                   // 0x0009
		Time,                     // 0x000A
		OTAUpgrade,               // 0x0019
		ShadeConfiguration,       // 0x0100
		DoorLock,                 // 0x0101
		WindowCovering,           // 0x0102
		ColorControl,             // 0x0300
		TemperatureMeasurement,   // 0x0402
		Metering,                 // 0x0702
		MeterIdentification,      // 0x0B01
		ElectricalMeasurement,    // 0x0B04
		Diagnostics,              // 0x0B05
	}
}

// RegisterStandard loads the catalogue into r.
func RegisterStandard(r *zcl.Registry) {
	for _, c := range Standard() {
		r.Register(c)
	}
}
