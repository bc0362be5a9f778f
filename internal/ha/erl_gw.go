package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// ERLGateway is the energy reporting gateway: it serves Time and consumes
// the metering side of a meter.
var ERLGateway = &profile.Template{
	Name:          "erl_gw",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDERLGateway,
	DeviceVersion: 0,
	InClusterNum:  3,
	OutClusterNum: 7,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterTime, clusters.TimeMandatory...),
		profile.Client(zcl.ClusterIdentify),
		profile.Client(zcl.ClusterMeterIdentification),
		profile.Client(zcl.ClusterElectricalMeasurement),
		profile.Client(zcl.ClusterDiagnostics),
		profile.Client(zcl.ClusterMetering),
		profile.Client(zcl.ClusterMessaging),
		profile.Client(zcl.ClusterDailySchedule),
	},
}

// ERLGatewayAttributes holds the server attribute lists of ERLGateway.
type ERLGatewayAttributes struct {
	Basic    profile.AttributeList
	Identify profile.AttributeList
	Time     profile.AttributeList
}

func (a ERLGatewayAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterBasic):    a.Basic,
		profile.ServerKey(zcl.ClusterIdentify): a.Identify,
		profile.ServerKey(zcl.ClusterTime):     a.Time,
	}
}

// ERLGatewayEndpoint builds an ERL gateway endpoint; it reports nothing.
func ERLGatewayEndpoint(ep uint8, attrs ERLGatewayAttributes) (*profile.EndpointDescriptor, error) {
	return profile.Build(ERLGateway, ep, attrs.lists(), nil, nil)
}
