package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// TemperatureSensor is the HA Temperature Sensor device.
var TemperatureSensor = &profile.Template{
	Name:          "temperature_sensor",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDTemperatureSensor,
	DeviceVersion: 0,
	InClusterNum:  3,
	OutClusterNum: 1,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterTemperatureMeasurement, clusters.TemperatureMeasurementMandatory...),
		profile.Client(zcl.ClusterIdentify),
	},
	ReportAttrCount: reportable(&clusters.TemperatureMeasurement),
}

// TemperatureSensorAttributes holds the server attribute lists of TemperatureSensor.
type TemperatureSensorAttributes struct {
	Basic       profile.AttributeList
	Identify    profile.AttributeList
	Temperature profile.AttributeList
}

func (a TemperatureSensorAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterBasic):                  a.Basic,
		profile.ServerKey(zcl.ClusterIdentify):               a.Identify,
		profile.ServerKey(zcl.ClusterTemperatureMeasurement): a.Temperature,
	}
}

// TemperatureSensorEndpoint builds a Temperature Sensor endpoint.
func TemperatureSensorEndpoint(ep uint8, attrs TemperatureSensorAttributes, reporting []profile.ReportSlot) (*profile.EndpointDescriptor, error) {
	return profile.Build(TemperatureSensor, ep, attrs.lists(), reporting, nil)
}
