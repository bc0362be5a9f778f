// Package ha defines the Home Automation device types and a typed endpoint
// constructor for each of them.
package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
)

// HA device IDs
const (
	DeviceIDOnOffSwitch       uint16 = 0x0000
	DeviceIDOnOffOutput       uint16 = 0x0002
	DeviceIDDoorLock          uint16 = 0x000A
	DeviceIDDimmableLight     uint16 = 0x0101
	DeviceIDShade             uint16 = 0x0200
	DeviceIDWindowCovering    uint16 = 0x0202
	DeviceIDTemperatureSensor uint16 = 0x0302
	DeviceIDERLGateway        uint16 = 0x0000
)

// reportable sums the reportable attributes of the given catalogue clusters.
func reportable(defs ...*zcl.ClusterDef) int {
	n := 0
	for _, d := range defs {
		n += d.ReportableCount()
	}
	return n
}

// Templates returns the built-in device types in a fixed order.
func Templates() []*profile.Template {
	return []*profile.Template{
		DoorLock,
		OnOffSwitch,
		OnOffSwitchOTA,
		OnOffOutput,
		DimmableLight,
		CustomDimmableLight,
		Shade,
		WindowCovering,
		TemperatureSensor,
		ERLGateway,
	}
}

// Lookup returns the built-in template with the given name.
func Lookup(name string) (*profile.Template, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
