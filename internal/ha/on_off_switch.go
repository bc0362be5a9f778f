package ha

import (
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// OnOffSwitch is the HA On/Off Switch. Identify is present twice: as a
// server with attributes and as a client without.
var OnOffSwitch = &profile.Template{
	Name:          "on_off_switch",
	ProfileID:     zcl.ProfileHomeAutomation,
	DeviceID:      DeviceIDOnOffSwitch,
	DeviceVersion: 0,
	InClusterNum:  3,
	OutClusterNum: 4,
	Manifest: []profile.ClusterSlot{
		profile.Server(zcl.ClusterOnOffSwitchConfig, clusters.OnOffSwitchConfigurationMandatory...),
		profile.Server(zcl.ClusterIdentify, clusters.IdentifyMandatory...),
		profile.Server(zcl.ClusterBasic, clusters.BasicMandatory...),
		profile.Client(zcl.ClusterOnOff),
		profile.Client(zcl.ClusterScenes),
		profile.Client(zcl.ClusterIdentify),
		profile.Client(zcl.ClusterGroups),
	},
}

// OnOffSwitchAttributes holds the server attribute lists of OnOffSwitch.
type OnOffSwitchAttributes struct {
	SwitchConfig profile.AttributeList
	Identify     profile.AttributeList
	Basic        profile.AttributeList
}

func (a OnOffSwitchAttributes) lists() profile.AttributeLists {
	return profile.AttributeLists{
		profile.ServerKey(zcl.ClusterOnOffSwitchConfig): a.SwitchConfig,
		profile.ServerKey(zcl.ClusterIdentify):          a.Identify,
		profile.ServerKey(zcl.ClusterBasic):             a.Basic,
	}
}

// OnOffSwitchEndpoint builds an On/Off Switch endpoint. The device type
// reports nothing, so it has no context tables.
func OnOffSwitchEndpoint(ep uint8, attrs OnOffSwitchAttributes) (*profile.EndpointDescriptor, error) {
	return profile.Build(OnOffSwitch, ep, attrs.lists(), nil, nil)
}
